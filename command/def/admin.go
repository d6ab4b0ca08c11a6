package def

import "github.com/bwmarrin/discordgo"

// AdminCommand shows base statistics and maintenance controls.
var AdminCommand = &discordgo.ApplicationCommand{
	Name:        "admin",
	Description: "Release base statistics and maintenance (admins only)",
}
