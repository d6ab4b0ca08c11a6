package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/kazumaiq/cxner-music-bot/model"
)

const (
	releasesFile = "releases.json"
	archiveFile  = "moderation_releases.json"
	historyFile  = "history.json"
	draftsFile   = "drafts.json"
	lockFile     = "bot.lock"
)

// Store owns the four JSON collections and their in-memory views. Every
// mutation persists synchronously through an atomic temp-and-rename write,
// so a crash at any point leaves either the old or the new file on disk,
// never a truncated one.
type Store struct {
	dir          string
	lock         *flock.Flock
	webappExport bool

	mu       sync.RWMutex
	releases map[string][]*model.Release
	archive  *model.Archive
	history  map[string][]*model.HistoryEntry
	drafts   map[string]*model.Draft
}

// Open loads the collections from dir, creating it if needed, and takes the
// single-instance lock so two processes can never interleave writes to the
// same data directory.
func Open(dir string, webappExport bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	lock := flock.New(filepath.Join(dir, lockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("data dir %s is locked by another instance", dir)
	}

	s := &Store{
		dir:          dir,
		lock:         lock,
		webappExport: webappExport,
		releases:     map[string][]*model.Release{},
		archive:      &model.Archive{},
		history:      map[string][]*model.HistoryEntry{},
		drafts:       map[string]*model.Draft{},
	}
	s.loadAll()
	return s, nil
}

// Close releases the single-instance lock.
func (s *Store) Close() error {
	return s.lock.Unlock()
}

// Reload re-reads every collection from disk. A file that is missing or
// fails to parse keeps its current in-memory view.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadAll()
}

func (s *Store) loadAll() {
	loadInto(s.path(releasesFile), &s.releases)
	loadInto(s.path(archiveFile), &s.archive)
	loadInto(s.path(historyFile), &s.history)
	loadInto(s.path(draftsFile), &s.drafts)
	if s.archive == nil {
		s.archive = &model.Archive{}
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// loadInto decodes path into a fresh value and assigns it to dst only on
// success. Missing files are normal cold starts; corrupt files are logged
// and left on disk untouched until the next successful save.
func loadInto[T any](path string, dst *T) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		log.Printf("read %s: %v (keeping current view)", path, err)
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("parse %s: %v (keeping current view)", path, err)
		return
	}
	*dst = v
}

// atomicWriteJSON serializes v and replaces path in one step: write to a
// temp file in the same directory, fsync, close, rename. Readers never see
// a partial document.
func atomicWriteJSON(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	name := tmp.Name()
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
