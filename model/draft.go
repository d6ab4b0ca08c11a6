package model

// Draft holds the answers collected so far from one requester's dialogue.
// It is checkpointed to disk after every answered field; a crash loses the
// in-memory dialogue position but never the collected fields.
type Draft struct {
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
	SavedAt   string `json:"saved_at"`
}

// Release builds a fresh release record from the confirmed draft. Workflow
// fields (id, status, timestamps) are filled in by the moderation engine.
func (d *Draft) Release() *Release {
	return &Release{
		Type:      d.Type,
		Title:     d.Title,
		Subtitle:  d.Subtitle,
		HasLyrics: d.HasLyrics,
		Performer: d.Performer,
		LegalName: d.LegalName,
		Date:      d.Date,
		Version:   d.Version,
		Genre:     d.Genre,
		FileLink:  d.FileLink,
		PlatLink:  d.PlatLink,
		Explicit:  d.Explicit,
		Promo:     d.Promo,
		Comment:   d.Comment,
		Tracklist: d.Tracklist,
		Contact:   d.Contact,
	}
}

// Clone returns a copy safe to mutate without touching the stored draft.
func (d *Draft) Clone() *Draft {
	c := *d
	return &c
}
