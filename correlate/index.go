// Package correlate resolves chat message ids back to release records.
package correlate

import (
	"sync"

	"github.com/kazumaiq/cxner-music-bot/model"
)

// Kind distinguishes which tracked message a reply targets.
type Kind int

const (
	// KindCard is the primary moderation card.
	KindCard Kind = iota
	// KindInstruction is a side instruction awaiting a moderator reply.
	KindInstruction
)

// Ref points at one release record.
type Ref struct {
	UserID string
	Index  int
	Kind   Kind
}

// Index maps message ids to releases. It is a derived view: every id it
// holds is also stored on the release record itself, so Rebuild can always
// reconstruct it from the store after a restart.
type Index struct {
	mu   sync.RWMutex
	refs map[string]Ref
}

func New() *Index {
	return &Index{refs: map[string]Ref{}}
}

// Track registers messageID as belonging to ref.
func (x *Index) Track(messageID string, ref Ref) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.refs[messageID] = ref
}

// Untrack forgets messageID.
func (x *Index) Untrack(messageID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.refs, messageID)
}

// Resolve looks messageID up.
func (x *Index) Resolve(messageID string) (Ref, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	ref, ok := x.refs[messageID]
	return ref, ok
}

// Len returns the number of tracked messages.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.refs)
}

// Rebuild repopulates the index from the message ids persisted on release
// records. each is expected to be the store's release iterator.
func (x *Index) Rebuild(each func(fn func(userID string, idx int, r *model.Release))) {
	refs := map[string]Ref{}
	each(func(userID string, idx int, r *model.Release) {
		if r.CardMessageID != "" {
			refs[r.CardMessageID] = Ref{UserID: userID, Index: idx, Kind: KindCard}
		}
		if r.InstructionMessageID != "" {
			refs[r.InstructionMessageID] = Ref{UserID: userID, Index: idx, Kind: KindInstruction}
		}
	})
	x.mu.Lock()
	defer x.mu.Unlock()
	x.refs = refs
}
