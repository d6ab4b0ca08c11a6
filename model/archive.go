package model

// ArchiveEntry is the denormalized copy of a release kept in the moderation
// archive, one per posted moderation card. Entries are matched for patching
// by (user id, submission time), the only pair that stays unique across
// message id reuse and soft deletes.
type ArchiveEntry struct {
	Release

	UserID    string `json:"user_id"`
	MessageID string `json:"message_id"`
}

// Archive is the top-level document of the moderation archive collection.
type Archive struct {
	ModerationMessages []*ArchiveEntry `json:"moderation_messages"`
}
