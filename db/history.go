package db

import "github.com/kazumaiq/cxner-music-bot/model"

// AppendHistory appends one transition record for (userID, idx).
func (s *Store) AppendHistory(userID string, idx int, e *model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := model.HistoryKey(userID, idx)
	s.history[key] = append(s.history[key], e)
	return atomicWriteJSON(s.path(historyFile), s.history)
}

// History returns the transition records for (userID, idx) in append order.
func (s *Store) History(userID string, idx int) []*model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.history[model.HistoryKey(userID, idx)]
	out := make([]*model.HistoryEntry, len(list))
	for i, e := range list {
		c := *e
		out[i] = &c
	}
	return out
}
