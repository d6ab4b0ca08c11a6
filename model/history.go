package model

import "fmt"

// HistoryEntry records one status transition. History is append-only: every
// button press and reply-driven transition adds exactly one entry, nothing
// ever rewrites or removes one.
type HistoryEntry struct {
	Timestamp     string `json:"timestamp"`
	OldStatus     Status `json:"old_status"`
	NewStatus     Status `json:"new_status"`
	ModeratorID   string `json:"moderator_id"`
	ModeratorName string `json:"moderator_name"`
	Reason        string `json:"reason,omitempty"`
}

// HistoryKey is the collection key for one release's transition log.
func HistoryKey(userID string, idx int) string {
	return fmt.Sprintf("%s_%d", userID, idx)
}
