package utils

import (
	"slices"

	"github.com/kazumaiq/cxner-music-bot/config"
)

// CheckAdmin reports whether the user may run administrative commands.
func CheckAdmin(userID string) bool {
	return slices.Contains(config.Cfg.Admins, userID)
}
