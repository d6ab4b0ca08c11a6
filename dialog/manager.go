// Package dialog runs the field-by-field submission dialogue with a
// requester, checkpointing every answer so a restart never loses typed-in
// data.
package dialog

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/kazumaiq/cxner-music-bot/db"
	"github.com/kazumaiq/cxner-music-bot/delivery"
	"github.com/kazumaiq/cxner-music-bot/model"
	"github.com/kazumaiq/cxner-music-bot/utils"
)

type state int

const (
	stateType state = iota
	stateTitle
	stateSubtitle
	stateLyrics
	statePerformer
	stateLegalName
	stateDate
	stateVersion
	stateGenre
	stateFileLink
	statePlatLink
	stateExplicit
	statePromo
	stateComment
	stateTracklist
	stateContact
	stateConfirm
)

type undoStep struct {
	st      state
	restore func(*model.Draft)
}

// session is one requester's live dialogue. The undo stack is in-memory
// only: a restart keeps the checkpointed answers but forgets undo depth.
// mu serializes handling per requester; the gateway dispatches every event
// on its own goroutine.
type session struct {
	mu        sync.Mutex
	userID    string
	username  string
	channelID string
	state     state
	draft     *model.Draft
	undo      []undoStep
}

// Submitter hands a confirmed draft over to moderation.
type Submitter interface {
	Submit(userID, username string, d *model.Draft) (int, error)
}

// Manager owns the live dialogues, one per requester.
type Manager struct {
	store  *db.Store
	bot    *delivery.Client
	submit Submitter
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager(store *db.Store, bot *delivery.Client, submit Submitter) *Manager {
	return &Manager{
		store:    store,
		bot:      bot,
		submit:   submit,
		now:      time.Now,
		sessions: map[string]*session{},
	}
}

// Start begins a fresh dialogue for userID in channelID, replacing any
// dialogue already in progress.
func (m *Manager) Start(userID, username, channelID string) {
	sess := &session{
		userID:    userID,
		username:  username,
		channelID: channelID,
		state:     stateType,
		draft:     &model.Draft{},
	}
	m.mu.Lock()
	m.sessions[userID] = sess
	m.mu.Unlock()
	m.sendPrompt(sess)
}

// Active reports whether userID has a dialogue in progress.
func (m *Manager) Active(userID string) bool {
	_, ok := m.lookup(userID)
	return ok
}

func (m *Manager) lookup(userID string) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	return sess, ok
}

// Cancel drops userID's dialogue and checkpoint.
func (m *Manager) Cancel(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	if err := m.store.DeleteDraft(userID); err != nil {
		log.Printf("dialog: drop draft for %s: %v", userID, err)
	}
}

// HandleText consumes one requester message. It returns false when userID
// has no dialogue in progress or wrote from another channel, in which case
// the message is not part of any dialogue.
func (m *Manager) HandleText(userID, username, channelID, text string) bool {
	sess, ok := m.lookup(userID)
	if !ok {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.channelID != channelID {
		return false
	}
	sess.username = username

	if strings.EqualFold(strings.TrimSpace(text), "undo") {
		m.undoLast(sess)
		return true
	}
	m.applyText(sess, text)
	return true
}

// HandleButton consumes one dialogue button press. token is the custom id
// with the "dlg:" prefix already stripped.
func (m *Manager) HandleButton(userID, username, channelID, token string) {
	sess, ok := m.lookup(userID)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.username = username

	switch token {
	case "confirm":
		if sess.state != stateConfirm {
			return
		}
		m.finish(sess)
		return
	case "cancel":
		m.Cancel(userID)
		m.say(sess, "🚫 Submission cancelled. Use /submit to start over.")
		return
	case "undo":
		m.undoLast(sess)
		return
	}

	action, value, _ := strings.Cut(token, ":")
	switch {
	case action == "type" && sess.state == stateType:
		m.accept(sess, func(d *model.Draft) { d.Type = value }, func(d *model.Draft) { d.Type = "" })
	case action == "subtitle" && sess.state == stateSubtitle:
		m.accept(sess, func(d *model.Draft) { d.Subtitle = "." }, func(d *model.Draft) { d.Subtitle = "" })
	case action == "lyrics" && sess.state == stateLyrics:
		m.accept(sess, func(d *model.Draft) { d.HasLyrics = value }, func(d *model.Draft) { d.HasLyrics = "" })
	case action == "explicit" && sess.state == stateExplicit:
		m.accept(sess, func(d *model.Draft) { d.Explicit = value == "yes" }, func(d *model.Draft) { d.Explicit = false })
	}
}

// applyText validates the answer for the current field and either advances
// the dialogue or re-prompts.
func (m *Manager) applyText(sess *session, text string) {
	text = utils.Clean(text)
	d := sess.draft

	var apply, restore func(*model.Draft)
	var err error

	switch sess.state {
	case stateType:
		var cat string
		if cat, err = NormalizeCategory(text); err == nil {
			apply = func(d *model.Draft) { d.Type = cat }
			restore = func(d *model.Draft) { d.Type = "" }
		}
	case stateTitle:
		apply, restore, err = requiredField(text, func(d *model.Draft, v string) { d.Title = v }, d.Title)
	case stateSubtitle:
		v := text
		if v == "" {
			v = "."
		}
		prev := d.Subtitle
		apply = func(d *model.Draft) { d.Subtitle = v }
		restore = func(d *model.Draft) { d.Subtitle = prev }
	case stateLyrics:
		var yes bool
		if yes, err = NormalizeYesNo(text); err == nil {
			v := "no"
			if yes {
				v = "yes"
			}
			apply = func(d *model.Draft) { d.HasLyrics = v }
			restore = func(d *model.Draft) { d.HasLyrics = "" }
		}
	case statePerformer:
		apply, restore, err = requiredField(text, func(d *model.Draft, v string) { d.Performer = v }, d.Performer)
	case stateLegalName:
		apply, restore, err = requiredField(text, func(d *model.Draft, v string) { d.LegalName = v }, d.LegalName)
	case stateDate:
		var date string
		if date, err = ValidateDate(text, MinAdvanceDays(d.Type), m.now()); err == nil {
			apply = func(d *model.Draft) { d.Date = date }
			restore = func(d *model.Draft) { d.Date = "" }
		}
	case stateVersion:
		v := text
		if v == "" || v == "-" {
			v = "Original"
		}
		prev := d.Version
		apply = func(d *model.Draft) { d.Version = v }
		restore = func(d *model.Draft) { d.Version = prev }
	case stateGenre:
		apply, restore, err = requiredField(text, func(d *model.Draft, v string) { d.Genre = v }, d.Genre)
	case stateFileLink:
		var link string
		if link, err = ValidateURL(text); err == nil {
			apply = func(d *model.Draft) { d.FileLink = link }
			restore = func(d *model.Draft) { d.FileLink = "" }
		}
	case statePlatLink:
		var link string
		if link, err = ValidateURL(text); err == nil {
			apply = func(d *model.Draft) { d.PlatLink = link }
			restore = func(d *model.Draft) { d.PlatLink = "" }
		}
	case stateExplicit:
		var yes bool
		if yes, err = NormalizeYesNo(text); err == nil {
			apply = func(d *model.Draft) { d.Explicit = yes }
			restore = func(d *model.Draft) { d.Explicit = false }
		}
	case statePromo:
		v := text
		if v == "" {
			v = "."
		}
		prev := d.Promo
		apply = func(d *model.Draft) { d.Promo = v }
		restore = func(d *model.Draft) { d.Promo = prev }
	case stateComment:
		v := text
		if v == "" {
			v = "."
		}
		prev := d.Comment
		apply = func(d *model.Draft) { d.Comment = v }
		restore = func(d *model.Draft) { d.Comment = prev }
	case stateTracklist:
		apply, restore, err = requiredField(text, func(d *model.Draft, v string) { d.Tracklist = v }, d.Tracklist)
	case stateContact:
		var contact string
		if contact, err = ValidateContact(text); err == nil {
			apply = func(d *model.Draft) { d.Contact = contact }
			restore = func(d *model.Draft) { d.Contact = "" }
		}
	case stateConfirm:
		m.say(sess, "Use the buttons above to send or cancel, or type `undo`.")
		return
	}

	if err != nil {
		m.say(sess, validationMessage(err, d))
		return
	}
	m.accept(sess, apply, restore)
}

func requiredField(text string, set func(*model.Draft, string), prev string) (func(*model.Draft), func(*model.Draft), error) {
	if text == "" {
		return nil, nil, ErrEmpty
	}
	return func(d *model.Draft) { set(d, text) },
		func(d *model.Draft) { set(d, prev) },
		nil
}

// accept commits a validated answer: record undo, checkpoint, advance.
func (m *Manager) accept(sess *session, apply, restore func(*model.Draft)) {
	sess.undo = append(sess.undo, undoStep{st: sess.state, restore: restore})
	apply(sess.draft)
	if err := m.store.UpsertDraft(sess.userID, sess.draft); err != nil {
		log.Printf("dialog: checkpoint draft for %s: %v", sess.userID, err)
	}
	sess.state = nextState(sess.state, sess.draft.Type)
	m.sendPrompt(sess)
}

// undoLast pops the most recent answer and returns to its question.
func (m *Manager) undoLast(sess *session) {
	if len(sess.undo) == 0 {
		m.say(sess, "Nothing to undo yet.")
		return
	}
	step := sess.undo[len(sess.undo)-1]
	sess.undo = sess.undo[:len(sess.undo)-1]
	step.restore(sess.draft)
	sess.state = step.st
	if err := m.store.UpsertDraft(sess.userID, sess.draft); err != nil {
		log.Printf("dialog: checkpoint draft for %s: %v", sess.userID, err)
	}
	m.sendPrompt(sess)
}

// finish hands the confirmed draft to moderation and ends the dialogue.
// The checkpointed draft is left in place as the superseded snapshot.
func (m *Manager) finish(sess *session) {
	m.mu.Lock()
	delete(m.sessions, sess.userID)
	m.mu.Unlock()

	if _, err := m.submit.Submit(sess.userID, sess.username, sess.draft); err != nil {
		log.Printf("dialog: submit for %s: %v", sess.userID, err)
		m.say(sess, "❌ Something went wrong while sending your release. Please try again with /submit.")
		return
	}
	m.say(sess, "✅ **Your release was sent for review!**\n\nExpect an answer within 12-72 hours.")
}

func nextState(st state, releaseType string) state {
	if st == stateComment && releaseType != model.TypeAlbum {
		return stateContact
	}
	return st + 1
}

func (m *Manager) sendPrompt(sess *session) {
	text, components := prompt(sess.state, sess.draft)
	if _, err := m.bot.Send(sess.channelID, text, components, ""); err != nil {
		log.Printf("dialog: prompt %s: %v", sess.userID, err)
	}
}

func (m *Manager) say(sess *session, text string) {
	if _, err := m.bot.Send(sess.channelID, text, nil, ""); err != nil {
		log.Printf("dialog: message %s: %v", sess.userID, err)
	}
}
