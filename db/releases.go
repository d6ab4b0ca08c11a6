package db

import (
	"fmt"

	"github.com/kazumaiq/cxner-music-bot/model"
)

// AppendRelease adds r to userID's list and persists. The returned index is
// the record's permanent position; positions are never reused or compacted.
func (s *Store) AppendRelease(userID string, r *model.Release) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases[userID] = append(s.releases[userID], r.Clone())
	return len(s.releases[userID]) - 1, s.saveReleasesLocked()
}

// Release returns a copy of the record at (userID, idx).
func (s *Store) Release(userID string, idx int) (*model.Release, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.releases[userID]
	if idx < 0 || idx >= len(list) {
		return nil, false
	}
	return list[idx].Clone(), true
}

// UpdateRelease applies fn to the stored record under the write lock and
// persists the collection.
func (s *Store) UpdateRelease(userID string, idx int, fn func(*model.Release)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.releases[userID]
	if idx < 0 || idx >= len(list) {
		return fmt.Errorf("release %s/%d not found", userID, idx)
	}
	fn(list[idx])
	return s.saveReleasesLocked()
}

// UserReleases returns copies of userID's records in submission order.
func (s *Store) UserReleases(userID string) []*model.Release {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Release, 0, len(s.releases[userID]))
	for _, r := range s.releases[userID] {
		out = append(out, r.Clone())
	}
	return out
}

// EachRelease calls fn with a copy of every stored record.
func (s *Store) EachRelease(fn func(userID string, idx int, r *model.Release)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for uid, list := range s.releases {
		for i, r := range list {
			fn(uid, i, r.Clone())
		}
	}
}

// CountByStatus tallies every stored release per status.
func (s *Store) CountByStatus() map[model.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[model.Status]int{}
	for _, list := range s.releases {
		for _, r := range list {
			out[r.Status]++
		}
	}
	return out
}

// WipeReleases drops every release record. Admin-triggered only; the
// archive and history collections are deliberately left intact.
func (s *Store) WipeReleases() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases = map[string][]*model.Release{}
	return s.saveReleasesLocked()
}

func (s *Store) saveReleasesLocked() error {
	if err := atomicWriteJSON(s.path(releasesFile), s.releases); err != nil {
		return err
	}
	s.exportWebappLocked()
	return nil
}
