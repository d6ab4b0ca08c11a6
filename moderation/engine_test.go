package moderation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazumaiq/cxner-music-bot/correlate"
	"github.com/kazumaiq/cxner-music-bot/db"
	"github.com/kazumaiq/cxner-music-bot/delivery"
	"github.com/kazumaiq/cxner-music-bot/model"
)

const testChannel = "mod-chan"

type sentMsg struct {
	channelID  string
	content    string
	components []discordgo.MessageComponent
	replyToID  string
}

type editMsg struct {
	messageID  string
	content    string
	components []discordgo.MessageComponent
}

type fakeTransport struct {
	mu    sync.Mutex
	sends []sentMsg
	edits []editMsg
	n     int
}

func (f *fakeTransport) Send(channelID, content string, components []discordgo.MessageComponent, replyToID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentMsg{channelID: channelID, content: content, components: components, replyToID: replyToID})
	f.n++
	return fmt.Sprintf("m%d", f.n), nil
}

func (f *fakeTransport) Edit(_, messageID, content string, components []discordgo.MessageComponent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, editMsg{messageID: messageID, content: content, components: components})
	return nil
}

func (f *fakeTransport) OpenDM(userID string) (string, error) { return "dm-" + userID, nil }

func (f *fakeTransport) channelSends() []sentMsg {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMsg
	for _, s := range f.sends {
		if s.channelID == testChannel {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeTransport) dmSends(userID string) []sentMsg {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMsg
	for _, s := range f.sends {
		if s.channelID == "dm-"+userID {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeTransport) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

func (f *fakeTransport) lastEdit(t *testing.T) editMsg {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.edits)
	return f.edits[len(f.edits)-1]
}

func newTestEngine(t *testing.T) (*Engine, *fakeTransport, *db.Store) {
	t.Helper()
	store, err := db.Open(t.TempDir(), false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tr := &fakeTransport{}
	e := NewEngine(store, delivery.New(tr), correlate.New(), testChannel, 48*time.Hour)
	e.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return e, tr, store
}

func sampleDraft() *model.Draft {
	return &model.Draft{
		Type:      model.TypeSingle,
		Title:     "Lost in the Void",
		Subtitle:  ".",
		HasLyrics: "yes",
		Performer: "MAKIZM",
		LegalName: "Ivan Ivanov",
		Date:      "15.12.2026",
		Version:   "Original",
		Genre:     "Phonk",
		FileLink:  "https://drive.example.com/folder",
		PlatLink:  ".",
		Promo:     ".",
		Comment:   ".",
		Contact:   "@makizm",
	}
}

func TestSubmitPostsCardAndArchives(t *testing.T) {
	e, tr, store := newTestEngine(t)

	idx, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	rel, ok := store.Release("u1", 0)
	require.True(t, ok)
	assert.Equal(t, model.StatusOnUpload, rel.Status)
	assert.NotEmpty(t, rel.ID)
	assert.NotEmpty(t, rel.SubmissionTime)
	assert.Equal(t, "m1", rel.CardMessageID)
	assert.NotEmpty(t, rel.CardText)

	// the card plus the standing product-code invitation
	sends := tr.channelSends()
	require.Len(t, sends, 2)
	assert.Contains(t, sends[0].content, "Lost in the Void")
	assert.Contains(t, sends[0].content, "On upload")
	assert.Len(t, sends[0].components, 2)
	assert.Contains(t, sends[1].content, "product code")
	assert.Equal(t, "m1", sends[1].replyToID)
	assert.Equal(t, "m2", rel.InstructionMessageID)
	assert.Equal(t, model.InstructionCode, rel.InstructionKind)

	ref, ok := e.index.Resolve("m1")
	require.True(t, ok)
	assert.Equal(t, correlate.Ref{UserID: "u1", Index: 0, Kind: correlate.KindCard}, ref)
	ref, ok = e.index.Resolve("m2")
	require.True(t, ok)
	assert.Equal(t, correlate.KindInstruction, ref.Kind)

	entries := store.ArchiveEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, "m1", entries[0].MessageID)
}

func TestRejectButtonOnlyPostsInstruction(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)

	require.NoError(t, e.RequestRejectReason("u1", 0))

	// no transition yet; the reject instruction supersedes the standing
	// code invitation
	rel, _ := store.Release("u1", 0)
	assert.Equal(t, model.StatusOnUpload, rel.Status)
	assert.Equal(t, "m3", rel.InstructionMessageID)
	assert.Equal(t, model.InstructionReject, rel.InstructionKind)
	_, ok := e.index.Resolve("m2")
	assert.False(t, ok)

	sends := tr.channelSends()
	require.Len(t, sends, 3)
	assert.Contains(t, sends[2].content, "reason")
	assert.Equal(t, "m1", sends[2].replyToID)
	assert.Empty(t, store.History("u1", 0))
}

func TestRejectViaReply(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	mod := Moderator{ID: "mod1", Name: "mira"}
	require.NoError(t, e.RequestRejectReason("u1", 0))

	e.HandleReply("m3", "Low audio quality", mod)

	rel, _ := store.Release("u1", 0)
	assert.Equal(t, model.StatusRejected, rel.Status)
	assert.Equal(t, "Low audio quality", rel.RejectReason)
	assert.Equal(t, "mira", rel.Moderator)
	assert.NotEmpty(t, rel.ModerationTime)
	assert.Empty(t, rel.InstructionMessageID)
	assert.Empty(t, rel.InstructionKind)

	_, ok := e.index.Resolve("m3")
	assert.False(t, ok)

	h := store.History("u1", 0)
	require.Len(t, h, 1)
	assert.Equal(t, model.StatusOnUpload, h[0].OldStatus)
	assert.Equal(t, model.StatusRejected, h[0].NewStatus)
	assert.Equal(t, "Low audio quality", h[0].Reason)

	// card collapsed to the single re-open control
	edit := tr.lastEdit(t)
	assert.Equal(t, "m1", edit.messageID)
	assert.Contains(t, edit.content, "Rejected")
	assert.Contains(t, edit.content, "Low audio quality")
	require.Len(t, edit.components, 1)

	dms := tr.dmSends("u1")
	require.NotEmpty(t, dms)
	assert.Contains(t, dms[len(dms)-1].content, "Low audio quality")

	entries := store.ArchiveEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.StatusRejected, entries[0].Status)
}

func TestReplyToUntrackedMessageIgnored(t *testing.T) {
	e, _, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)

	e.HandleReply("unrelated", "just chatting", Moderator{ID: "mod1", Name: "mira"})

	rel, _ := store.Release("u1", 0)
	assert.Equal(t, model.StatusOnUpload, rel.Status)
	assert.Empty(t, store.History("u1", 0))
}

func TestReopenRestoresFullControls(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	mod := Moderator{ID: "mod1", Name: "mira"}
	require.NoError(t, e.Transition("u1", 0, model.StatusRejected, mod, "Low audio quality"))

	require.NoError(t, e.Transition("u1", 0, model.StatusOnUpload, mod, ""))

	rel, _ := store.Release("u1", 0)
	assert.Equal(t, model.StatusOnUpload, rel.Status)
	edit := tr.lastEdit(t)
	assert.Len(t, edit.components, 2)

	h := store.History("u1", 0)
	require.Len(t, h, 2)
	assert.Equal(t, model.StatusRejected, h[1].OldStatus)
	assert.Equal(t, model.StatusOnUpload, h[1].NewStatus)
}

func TestProductCodeReplyKeepsStatus(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	mod := Moderator{ID: "mod1", Name: "mira"}
	require.NoError(t, e.Transition("u1", 0, model.StatusApproved, mod, ""))
	require.NoError(t, e.RequestProductCode("u1", 0))

	rel, _ := store.Release("u1", 0)
	instrID := rel.InstructionMessageID
	require.NotEmpty(t, instrID)

	before := len(store.History("u1", 0))
	e.HandleReply(instrID, "5099994682101", mod)

	rel, _ = store.Release("u1", 0)
	assert.Equal(t, "5099994682101", rel.ProductCode)
	assert.Equal(t, model.StatusApproved, rel.Status)
	assert.Empty(t, rel.InstructionMessageID)
	assert.Len(t, store.History("u1", 0), before)

	edit := tr.lastEdit(t)
	assert.Contains(t, edit.content, "5099994682101")

	entries := store.ArchiveEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "5099994682101", entries[0].ProductCode)
}

func TestProductCodeHeuristic(t *testing.T) {
	assert.True(t, isProductCode("1234567890"))
	assert.True(t, isProductCode("50999946821014"))
	// one digit outside the 10-14 window on either side
	assert.False(t, isProductCode("123456789"))
	assert.False(t, isProductCode("123456789012345"))
	assert.False(t, isProductCode("12345 67890"))
	assert.False(t, isProductCode("12345678a0"))
	assert.False(t, isProductCode("Low audio quality"))
}

func TestDigitShapedReplyOnCardAssignsCode(t *testing.T) {
	// a code-length digit reply never becomes a rejection reason, even
	// when aimed at the card itself
	e, _, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)

	e.HandleReply("m1", "12345678901", Moderator{ID: "mod1", Name: "mira"})

	rel, _ := store.Release("u1", 0)
	assert.Equal(t, "12345678901", rel.ProductCode)
	assert.Equal(t, model.StatusOnUpload, rel.Status)
}

func TestCardMessageIDNeverChanges(t *testing.T) {
	e, _, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	mod := Moderator{ID: "mod1", Name: "mira"}

	for _, st := range []model.Status{
		model.StatusModeration, model.StatusRejected, model.StatusOnUpload,
		model.StatusApproved, model.StatusNeedsFix, model.StatusDeleted,
	} {
		require.NoError(t, e.Transition("u1", 0, st, mod, ""))
		rel, _ := store.Release("u1", 0)
		assert.Equal(t, "m1", rel.CardMessageID)
	}
	assert.Len(t, store.History("u1", 0), 6)
}

func TestCardBodyStaysImmutable(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	rel, _ := store.Release("u1", 0)
	body := rel.CardText

	mod := Moderator{ID: "mod1", Name: "mira"}
	require.NoError(t, e.Transition("u1", 0, model.StatusApproved, mod, ""))

	rel, _ = store.Release("u1", 0)
	assert.Equal(t, body, rel.CardText)
	edit := tr.lastEdit(t)
	assert.Contains(t, edit.content, body)
}

func TestSoftDelete(t *testing.T) {
	e, tr, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)

	require.NoError(t, e.SoftDelete("u1", 0))

	rel, _ := store.Release("u1", 0)
	assert.True(t, rel.UserDeleted)
	assert.NotEmpty(t, rel.DeletedAt)
	assert.Equal(t, model.StatusOnUpload, rel.Status) // status untouched

	sends := tr.channelSends()
	assert.Contains(t, sends[len(sends)-1].content, "deleted")

	// repeated delete is a no-op
	n := tr.sendCount()
	require.NoError(t, e.SoftDelete("u1", 0))
	assert.Equal(t, n, tr.sendCount())
}

func TestConcurrentTransitionsRecordConsistentHistory(t *testing.T) {
	e, _, store := newTestEngine(t)
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	mod := Moderator{ID: "mod1", Name: "mira"}

	var wg sync.WaitGroup
	for _, st := range []model.Status{model.StatusModeration, model.StatusNeedsFix} {
		wg.Add(1)
		go func(st model.Status) {
			defer wg.Done()
			assert.NoError(t, e.Transition("u1", 0, st, mod, ""))
		}(st)
	}
	wg.Wait()

	// whichever transition lands second must see the first one's status,
	// never the original one
	h := store.History("u1", 0)
	require.Len(t, h, 2)
	first, second := h[0], h[1]
	if second.OldStatus == model.StatusOnUpload {
		first, second = second, first
	}
	assert.Equal(t, model.StatusOnUpload, first.OldStatus)
	assert.Equal(t, first.NewStatus, second.OldStatus)
}

func TestTransitionValidation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	mod := Moderator{ID: "mod1", Name: "mira"}
	assert.Error(t, e.Transition("nobody", 0, model.StatusApproved, mod, ""))
	_, err := e.Submit("u1", "makizm", sampleDraft())
	require.NoError(t, err)
	assert.Error(t, e.Transition("u1", 0, model.Status("limbo"), mod, ""))
}
