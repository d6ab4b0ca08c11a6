package model

// Release categories.
const (
	TypeSingle = "single"
	TypeAlbum  = "album"
)

// Instruction kinds, stored alongside the pending instruction message id.
const (
	InstructionReject = "reject"
	InstructionCode   = "code"
)

// Release is one submitted release record. Records are stored per user and
// addressed positionally: the pair (user id, index) is a release's stable
// identity for its entire life, entries are never removed or reordered.
type Release struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	HasLyrics string `json:"has_lyrics"`
	Performer string `json:"performer"`
	LegalName string `json:"legal_name"`
	Date      string `json:"date"`
	Version   string `json:"version"`
	Genre     string `json:"genre"`
	FileLink  string `json:"file_link"`
	PlatLink  string `json:"platform_link"`
	Explicit  bool   `json:"explicit"`
	Promo     string `json:"promo"`
	Comment   string `json:"comment"`
	Tracklist string `json:"tracklist,omitempty"`
	Contact   string `json:"contact"`
	Username  string `json:"username"`

	Status           Status `json:"status"`
	Moderator        string `json:"moderator,omitempty"`
	ModerationTime   string `json:"moderation_time,omitempty"`
	RejectReason     string `json:"reject_reason,omitempty"`
	ModeratorComment string `json:"moderator_comment,omitempty"`
	ProductCode      string `json:"product_code,omitempty"`
	SubmissionTime   string `json:"submission_time"`
	ReminderSent     bool   `json:"reminder_sent"`
	UserDeleted      bool   `json:"user_deleted,omitempty"`
	DeletedAt        string `json:"deleted_at,omitempty"`

	// CardText is rendered once at submission and never re-rendered;
	// status headers are prepended around it on every card update.
	CardText string `json:"card_text,omitempty"`

	// Chat correlation state. Both ids also live in the in-memory index,
	// which is rebuilt from these fields after a restart.
	CardMessageID        string `json:"card_message_id,omitempty"`
	InstructionMessageID string `json:"instruction_message_id,omitempty"`
	InstructionKind      string `json:"instruction_kind,omitempty"`
}

// Clone returns a copy safe to hand outside the store's lock.
func (r *Release) Clone() *Release {
	c := *r
	return &c
}
