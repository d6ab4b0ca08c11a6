package db

import "github.com/kazumaiq/cxner-music-bot/model"

// AppendArchive adds one entry to the moderation archive.
func (s *Store) AppendArchive(e *model.ArchiveEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	s.archive.ModerationMessages = append(s.archive.ModerationMessages, &c)
	return atomicWriteJSON(s.path(archiveFile), s.archive)
}

// PatchArchive applies fn to the single entry matching (userID,
// submissionTime). That pair is the only identity that survives message id
// reuse and list growth. A missing match is not an error: the archive is an
// advisory audit trail, not the source of truth.
func (s *Store) PatchArchive(userID, submissionTime string, fn func(*model.ArchiveEntry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.archive.ModerationMessages {
		if e.UserID == userID && e.SubmissionTime == submissionTime {
			fn(e)
			return atomicWriteJSON(s.path(archiveFile), s.archive)
		}
	}
	return nil
}

// ArchiveEntries returns a copy of the archive in append order.
func (s *Store) ArchiveEntries() []*model.ArchiveEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.ArchiveEntry, len(s.archive.ModerationMessages))
	for i, e := range s.archive.ModerationMessages {
		c := *e
		out[i] = &c
	}
	return out
}
