package db

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// publicRelease is the sanitized projection served to the public web page.
// Links, contacts, legal names and chat ids never leave the data dir.
type publicRelease struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	Performer string `json:"performer"`
	Date      string `json:"date"`
	Version   string `json:"version"`
	Genre     string `json:"genre"`
	Status    string `json:"status"`
	Deleted   bool   `json:"deleted,omitempty"`
}

type publicExport struct {
	UpdatedAt string          `json:"updated_at"`
	Releases  []publicRelease `json:"releases"`
}

// exportWebappLocked regenerates the public export next to the data files.
// It is a best-effort side effect of every release save; failures are
// logged and never propagate into the save itself.
func (s *Store) exportWebappLocked() {
	if !s.webappExport {
		return
	}
	doc := publicExport{
		UpdatedAt: time.Now().Format(time.RFC3339),
		Releases:  []publicRelease{},
	}
	for _, list := range s.releases {
		for _, r := range list {
			doc.Releases = append(doc.Releases, publicRelease{
				ID:        r.ID,
				Type:      r.Type,
				Title:     r.Title,
				Subtitle:  r.Subtitle,
				Performer: r.Performer,
				Date:      r.Date,
				Version:   r.Version,
				Genre:     r.Genre,
				Status:    string(r.Status),
				Deleted:   r.UserDeleted,
			})
		}
	}
	dir := filepath.Join(s.dir, "webapp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("webapp export dir: %v", err)
		return
	}
	if err := atomicWriteJSON(filepath.Join(dir, "releases-public.json"), doc); err != nil {
		log.Printf("webapp export: %v", err)
	}
}
