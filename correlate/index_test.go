package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazumaiq/cxner-music-bot/model"
)

func TestTrackResolveUntrack(t *testing.T) {
	x := New()
	x.Track("m1", Ref{UserID: "u1", Index: 0, Kind: KindCard})

	ref, ok := x.Resolve("m1")
	require.True(t, ok)
	assert.Equal(t, "u1", ref.UserID)
	assert.Equal(t, KindCard, ref.Kind)

	_, ok = x.Resolve("m2")
	assert.False(t, ok)

	x.Untrack("m1")
	_, ok = x.Resolve("m1")
	assert.False(t, ok)
}

func TestRebuildFromReleases(t *testing.T) {
	releases := map[string][]*model.Release{
		"u1": {
			{CardMessageID: "card1"},
			{CardMessageID: "card2", InstructionMessageID: "instr2"},
		},
		"u2": {
			{}, // never posted, nothing to track
		},
	}
	each := func(fn func(userID string, idx int, r *model.Release)) {
		for uid, list := range releases {
			for i, r := range list {
				fn(uid, i, r)
			}
		}
	}

	x := New()
	x.Track("stale", Ref{UserID: "gone", Index: 9, Kind: KindCard})
	x.Rebuild(each)

	assert.Equal(t, 3, x.Len())
	_, ok := x.Resolve("stale")
	assert.False(t, ok)

	ref, ok := x.Resolve("card2")
	require.True(t, ok)
	assert.Equal(t, Ref{UserID: "u1", Index: 1, Kind: KindCard}, ref)

	ref, ok = x.Resolve("instr2")
	require.True(t, ok)
	assert.Equal(t, KindInstruction, ref.Kind)
}
