package db

import (
	"time"

	"github.com/kazumaiq/cxner-music-bot/model"
)

// UpsertDraft checkpoints userID's in-progress dialogue answers.
func (s *Store) UpsertDraft(userID string, d *model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := d.Clone()
	c.SavedAt = time.Now().Format(time.RFC3339)
	s.drafts[userID] = c
	return atomicWriteJSON(s.path(draftsFile), s.drafts)
}

// Draft returns a copy of userID's checkpointed draft, if any.
func (s *Store) Draft(userID string) (*model.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// DeleteDraft removes userID's checkpoint, normally after a cancel.
func (s *Store) DeleteDraft(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return atomicWriteJSON(s.path(draftsFile), s.drafts)
}
