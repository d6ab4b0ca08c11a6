package moderation

import (
	"fmt"

	"github.com/kazumaiq/cxner-music-bot/model"
)

// notifyRequester DMs the release owner about the new status. Best effort.
func (e *Engine) notifyRequester(userID string, idx int) {
	rel, ok := e.store.Release(userID, idx)
	if !ok {
		return
	}
	text := requesterText(rel)
	if text == "" {
		return
	}
	e.bot.Notify(userID, text)
}

func requesterText(r *model.Release) string {
	head := fmt.Sprintf("• **Title:** %s\n• **Artist:** %s\n• **Date:** %s", r.Title, r.Performer, r.Date)
	switch r.Status {
	case model.StatusOnUpload:
		return "🕓 **RELEASE QUEUED FOR DELIVERY**\n\n" + head +
			"\n\nWe will get to it shortly."
	case model.StatusModeration:
		return "🧠 **RELEASE IN MODERATION**\n\n" + head +
			"\n\nA moderator is reviewing your submission."
	case model.StatusApproved:
		return "✅ **RELEASE APPROVED!**\n\n" + head +
			"\n\nIt will appear on the platforms on the release date."
	case model.StatusRejected:
		msg := "❌ **RELEASE REJECTED**\n\n" + head
		if r.RejectReason != "" {
			msg += "\n\n📄 **Reason:** " + r.RejectReason
		}
		return msg + "\n\nFix the issues and submit again with /submit."
	case model.StatusNeedsFix:
		return "⚠️ **RELEASE NEEDS FIXES**\n\n" + head +
			"\n\nA moderator will contact you with the details."
	case model.StatusDeleted:
		return "🗑 **RELEASE DELETED**\n\n" + head
	}
	return ""
}
