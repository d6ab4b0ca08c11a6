package moderation

import (
	"fmt"
	"log"

	"github.com/kazumaiq/cxner-music-bot/correlate"
	"github.com/kazumaiq/cxner-music-bot/model"
	"github.com/kazumaiq/cxner-music-bot/utils"
)

// RequestRejectReason posts the side instruction asking the moderator to
// reply with a reason. No status changes here: the actual rejection happens
// when the reply arrives at HandleReply.
func (e *Engine) RequestRejectReason(userID string, idx int) error {
	return e.postInstruction(userID, idx, model.InstructionReject, fmt.Sprintf(
		"❌ **Rejection: reason needed**\n\nReply to this message (or to the card) with the full reason.\nIt will be sent to the artist word for word.\n\nRelease: `%s`",
		utils.Truncate(mustTitle(e, userID, idx), 40)))
}

// RequestProductCode posts the side instruction inviting a reply with the
// assigned product code.
func (e *Engine) RequestProductCode(userID string, idx int) error {
	return e.postInstruction(userID, idx, model.InstructionCode,
		codeInstructionText(mustTitle(e, userID, idx)))
}

func codeInstructionText(title string) string {
	return fmt.Sprintf(
		"📦 **Assign the product code**\n\nReply to this message (or to the card) with the UPC: 10-14 digits, nothing else.\n\nRelease: `%s`",
		utils.Truncate(title, 40))
}

func mustTitle(e *Engine, userID string, idx int) string {
	if rel, ok := e.store.Release(userID, idx); ok {
		return rel.Title
	}
	return ""
}

// postInstruction sends the side message, records its id on the release and
// tracks it. Only one instruction per release is live at a time; a newer
// one supersedes the old.
func (e *Engine) postInstruction(userID string, idx int, kind, text string) error {
	rel, ok := e.store.Release(userID, idx)
	if !ok {
		return fmt.Errorf("release %s/%d not found", userID, idx)
	}
	msgID, err := e.bot.Send(e.channel, text, nil, rel.CardMessageID)
	if err != nil {
		return err
	}
	prev := rel.InstructionMessageID
	if err := e.store.UpdateRelease(userID, idx, func(r *model.Release) {
		r.InstructionMessageID = msgID
		r.InstructionKind = kind
	}); err != nil {
		return err
	}
	if prev != "" {
		e.index.Untrack(prev)
	}
	e.index.Track(msgID, correlate.Ref{UserID: userID, Index: idx, Kind: correlate.KindInstruction})
	return nil
}

// HandleReply routes a moderator's free-text reply in the moderation
// channel. A pure digit string of 10-14 characters is a product code;
// anything else that resolves to a tracked message is a rejection reason.
// Replies to untracked messages are ignored, the channel carries plenty of
// unrelated conversation.
func (e *Engine) HandleReply(replyToID, text string, mod Moderator) {
	text = utils.Clean(text)
	if text == "" {
		return
	}
	ref, ok := e.index.Resolve(replyToID)
	if !ok {
		return
	}
	if isProductCode(text) {
		e.assignProductCode(ref, text)
		return
	}
	e.rejectWithReason(ref, text, mod)
}

// isProductCode matches a UPC-shaped answer: digits only, 10 to 14 of them.
func isProductCode(s string) bool {
	if len(s) < 10 || len(s) > 14 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// assignProductCode stores the code without touching the status: a code can
// land on a release in any state.
func (e *Engine) assignProductCode(ref correlate.Ref, code string) {
	var droppedInstruction string
	err := e.store.UpdateRelease(ref.UserID, ref.Index, func(r *model.Release) {
		r.ProductCode = code
		if r.InstructionKind == model.InstructionCode && r.InstructionMessageID != "" {
			droppedInstruction = r.InstructionMessageID
			r.InstructionMessageID = ""
			r.InstructionKind = ""
		}
	})
	if err != nil {
		log.Printf("moderation: product code %s/%d: %v", ref.UserID, ref.Index, err)
		return
	}
	if droppedInstruction != "" {
		e.index.Untrack(droppedInstruction)
	}
	e.patchArchive(ref.UserID, ref.Index)
	e.refreshCard(ref.UserID, ref.Index)

	rel, ok := e.store.Release(ref.UserID, ref.Index)
	if !ok {
		return
	}
	if _, err := e.bot.Send(e.channel,
		fmt.Sprintf("📦 Product code `%s` saved for **%s**.", code, rel.Title),
		nil, rel.CardMessageID); err != nil {
		log.Printf("moderation: code confirmation %s/%d: %v", ref.UserID, ref.Index, err)
	}
	e.bot.Notify(ref.UserID, fmt.Sprintf(
		"📦 **PRODUCT CODE ASSIGNED**\n\n• **Title:** %s\n• **Code:** `%s`\n\nYou will need it to register the release with the rights societies.",
		rel.Title, code))
}

func (e *Engine) rejectWithReason(ref correlate.Ref, reason string, mod Moderator) {
	if err := e.Transition(ref.UserID, ref.Index, model.StatusRejected, mod, reason); err != nil {
		log.Printf("moderation: reject %s/%d: %v", ref.UserID, ref.Index, err)
		return
	}
	rel, ok := e.store.Release(ref.UserID, ref.Index)
	if !ok {
		return
	}
	if _, err := e.bot.Send(e.channel,
		fmt.Sprintf("❌ **%s** rejected, the artist has been notified.", rel.Title),
		nil, rel.CardMessageID); err != nil {
		log.Printf("moderation: reject confirmation %s/%d: %v", ref.UserID, ref.Index, err)
	}
}
