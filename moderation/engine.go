// Package moderation drives release status transitions and everything they
// entail: history, the archive, card updates and requester notifications.
package moderation

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kazumaiq/cxner-music-bot/correlate"
	"github.com/kazumaiq/cxner-music-bot/db"
	"github.com/kazumaiq/cxner-music-bot/delivery"
	"github.com/kazumaiq/cxner-music-bot/model"
)

// Moderator identifies the acting reviewer on a transition.
type Moderator struct {
	ID   string
	Name string
}

// Engine is the moderation state machine. Store writes happen before any
// outbound delivery, so a failed send can never leave the store behind what
// the chat shows.
type Engine struct {
	store       *db.Store
	bot         *delivery.Client
	index       *correlate.Index
	channel     string
	remindAfter time.Duration
	now         func() time.Time
}

func NewEngine(store *db.Store, bot *delivery.Client, index *correlate.Index, channelID string, remindAfter time.Duration) *Engine {
	return &Engine{
		store:       store,
		bot:         bot,
		index:       index,
		channel:     channelID,
		remindAfter: remindAfter,
		now:         time.Now,
	}
}

// Submit turns a confirmed draft into a release record, posts the
// moderation card and archives it. The record is persisted before the card
// goes out: a delivery failure loses the card, never the submission.
func (e *Engine) Submit(userID, username string, d *model.Draft) (int, error) {
	rel := d.Release()
	rel.ID = uuid.New().String()
	rel.Username = username
	rel.Status = model.StatusOnUpload
	rel.SubmissionTime = e.now().Format(time.RFC3339)
	rel.CardText = CardText(userID, rel)

	idx, err := e.store.AppendRelease(userID, rel)
	if err != nil {
		return 0, err
	}

	msgID, err := e.bot.Send(e.channel, statusHeader(rel)+rel.CardText, StatusButtons(userID, idx, rel.Status), "")
	if err != nil {
		log.Printf("moderation: card for %s/%d not posted: %v", userID, idx, err)
		return idx, nil
	}
	if err := e.store.UpdateRelease(userID, idx, func(r *model.Release) {
		r.CardMessageID = msgID
	}); err != nil {
		log.Printf("moderation: record card id for %s/%d: %v", userID, idx, err)
	}
	e.index.Track(msgID, correlate.Ref{UserID: userID, Index: idx, Kind: correlate.KindCard})

	rel.CardMessageID = msgID
	if err := e.store.AppendArchive(&model.ArchiveEntry{
		Release:   *rel,
		UserID:    userID,
		MessageID: msgID,
	}); err != nil {
		log.Printf("moderation: archive %s/%d: %v", userID, idx, err)
	}
	// the code can arrive any time, so the invitation goes up right away
	if err := e.postInstruction(userID, idx, model.InstructionCode, codeInstructionText(rel.Title)); err != nil {
		log.Printf("moderation: code instruction %s/%d: %v", userID, idx, err)
	}
	return idx, nil
}

// Transition moves (userID, idx) to newStatus. Any moderator may trigger
// any transition at any time; the review flow is deliberately non-linear.
func (e *Engine) Transition(userID string, idx int, newStatus model.Status, mod Moderator, reason string) error {
	if !newStatus.Valid() {
		return fmt.Errorf("unknown status %q", newStatus)
	}
	when := e.now().Format(time.RFC3339)

	// the replaced status is captured inside the locked update, so
	// concurrent transitions never record a stale old_status
	var (
		oldStatus          model.Status
		droppedInstruction string
	)
	err := e.store.UpdateRelease(userID, idx, func(r *model.Release) {
		oldStatus = r.Status
		r.Status = newStatus
		r.Moderator = mod.Name
		r.ModerationTime = when
		if newStatus == model.StatusRejected && reason != "" {
			r.RejectReason = reason
		}
		// a pending reject instruction is finished by any transition
		if r.InstructionKind == model.InstructionReject && r.InstructionMessageID != "" {
			droppedInstruction = r.InstructionMessageID
			r.InstructionMessageID = ""
			r.InstructionKind = ""
		}
	})
	if err != nil {
		return err
	}
	if droppedInstruction != "" {
		e.index.Untrack(droppedInstruction)
	}

	if err := e.store.AppendHistory(userID, idx, &model.HistoryEntry{
		Timestamp:     when,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		ModeratorID:   mod.ID,
		ModeratorName: mod.Name,
		Reason:        reason,
	}); err != nil {
		log.Printf("moderation: history %s/%d: %v", userID, idx, err)
	}

	e.patchArchive(userID, idx)
	e.refreshCard(userID, idx)
	e.notifyRequester(userID, idx)
	return nil
}

// SoftDelete flags a release as withdrawn by its owner. Nothing is removed
// from the store; the moderation channel is told so a platform takedown can
// follow.
func (e *Engine) SoftDelete(userID string, idx int) error {
	rel, ok := e.store.Release(userID, idx)
	if !ok {
		return fmt.Errorf("release %s/%d not found", userID, idx)
	}
	if rel.UserDeleted {
		return nil
	}
	if err := e.store.UpdateRelease(userID, idx, func(r *model.Release) {
		r.UserDeleted = true
		r.DeletedAt = e.now().Format(time.RFC3339)
	}); err != nil {
		return err
	}
	e.patchArchive(userID, idx)
	e.refreshCard(userID, idx)
	text := fmt.Sprintf("🗑 **The artist deleted their release**\n\n• **Title:** %s\n• **Artist:** %s\n\nTake it down from the platforms if it was already delivered.",
		rel.Title, rel.Performer)
	if _, err := e.bot.Send(e.channel, text, nil, rel.CardMessageID); err != nil {
		log.Printf("moderation: deletion notice %s/%d: %v", userID, idx, err)
	}
	return nil
}

// patchArchive mirrors the release's workflow fields into its archive
// entry. Best effort: the archive is advisory.
func (e *Engine) patchArchive(userID string, idx int) {
	rel, ok := e.store.Release(userID, idx)
	if !ok {
		return
	}
	err := e.store.PatchArchive(userID, rel.SubmissionTime, func(a *model.ArchiveEntry) {
		a.Status = rel.Status
		a.Moderator = rel.Moderator
		a.ModerationTime = rel.ModerationTime
		a.RejectReason = rel.RejectReason
		a.ModeratorComment = rel.ModeratorComment
		a.ProductCode = rel.ProductCode
		a.UserDeleted = rel.UserDeleted
		a.DeletedAt = rel.DeletedAt
	})
	if err != nil {
		log.Printf("moderation: archive patch %s/%d: %v", userID, idx, err)
	}
}

// refreshCard re-renders the status header and control buttons around the
// immutable card body.
func (e *Engine) refreshCard(userID string, idx int) {
	rel, ok := e.store.Release(userID, idx)
	if !ok || rel.CardMessageID == "" {
		return
	}
	text := statusHeader(rel) + rel.CardText
	if err := e.bot.Edit(e.channel, rel.CardMessageID, text, StatusButtons(userID, idx, rel.Status)); err != nil {
		log.Printf("moderation: card refresh %s/%d: %v", userID, idx, err)
	}
}
