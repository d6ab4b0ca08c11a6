package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazumaiq/cxner-music-bot/model"
)

func TestSweepRemindersOneShot(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)

	base := len(tr.channelSends())

	// not old enough yet
	e.SweepReminders()
	assert.Len(t, tr.channelSends(), base)

	// jump past the 48h threshold
	e.now = func() time.Time { return time.Date(2026, 9, 2, 13, 0, 0, 0, time.UTC) }
	e.SweepReminders()
	sends := tr.channelSends()
	require.Len(t, sends, base+1)
	assert.Contains(t, sends[base].content, "REMINDER")
	assert.Contains(t, sends[base].content, "Lost in the Void")
	assert.Equal(t, "m1", sends[base].replyToID)

	rel, _ := store.Release("u1", 0)
	assert.True(t, rel.ReminderSent)
	assert.Equal(t, model.StatusOnUpload, rel.Status)

	// one-shot: the next sweep stays quiet
	e.SweepReminders()
	assert.Len(t, tr.channelSends(), base+1)
}

func TestSweepSkipsHandledAndDeleted(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	_, err = e.Submit("u2", "other", sampleDraft())
	require.NoError(t, err)
	_, err = e.Submit("u3", "third", sampleDraft())
	require.NoError(t, err)

	mod := Moderator{ID: "mod1", Name: "mira"}
	require.NoError(t, e.Transition("u2", 0, model.StatusModeration, mod, ""))
	require.NoError(t, e.SoftDelete("u3", 0))

	base := len(tr.channelSends())
	e.now = func() time.Time { return time.Date(2026, 9, 2, 13, 0, 0, 0, time.UTC) }
	e.SweepReminders()

	sends := tr.channelSends()
	require.Len(t, sends, base+1)
	assert.Contains(t, sends[base].content, "REMINDER")
	assert.Equal(t, "m1", sends[base].replyToID)

	rel, _ := store.Release("u2", 0)
	assert.False(t, rel.ReminderSent)
}
