package moderation

import (
	"fmt"
	"strings"

	"github.com/kazumaiq/cxner-music-bot/model"
)

var statusLines = map[model.Status]string{
	model.StatusOnUpload:   "🕓 **STATUS: On upload**",
	model.StatusModeration: "🧠 **STATUS: In moderation**",
	model.StatusApproved:   "✅ **STATUS: Approved**",
	model.StatusRejected:   "❌ **STATUS: Rejected**",
	model.StatusNeedsFix:   "⚠️ **STATUS: Needs fixes**",
	model.StatusDeleted:    "🗑 **STATUS: Deleted**",
}

// CardText renders the moderation card body once, at submission time. It is
// never re-rendered afterwards: status changes only swap the header above
// it, the submitted data stays exactly as the requester confirmed it.
func CardText(userID string, r *model.Release) string {
	var b strings.Builder
	b.WriteString("🎵 **NEW SUBMISSION**\n")
	if r.Username != "" {
		fmt.Fprintf(&b, "From: @%s\n", r.Username)
	}
	fmt.Fprintf(&b, "ID: `%s`\n\n", userID)
	fmt.Fprintf(&b, "• **Category:** %s\n", r.Type)
	fmt.Fprintf(&b, "• **Title:** %s\n", r.Title)
	if r.Subtitle != "" && r.Subtitle != "." {
		fmt.Fprintf(&b, "• **Subtitle:** %s\n", r.Subtitle)
	}
	fmt.Fprintf(&b, "• **Lyrics:** %s\n", r.HasLyrics)
	fmt.Fprintf(&b, "• **Artist:** %s\n", r.Performer)
	fmt.Fprintf(&b, "• **Legal name:** %s\n", r.LegalName)
	fmt.Fprintf(&b, "• **Date:** %s\n", r.Date)
	fmt.Fprintf(&b, "• **Version:** %s\n", r.Version)
	fmt.Fprintf(&b, "• **Genre:** %s\n", r.Genre)
	fmt.Fprintf(&b, "• **Files:** %s\n", r.FileLink)
	fmt.Fprintf(&b, "• **Platform page:** %s\n", r.PlatLink)
	fmt.Fprintf(&b, "• **Explicit:** %v\n", r.Explicit)
	if r.Promo != "" && r.Promo != "." {
		fmt.Fprintf(&b, "• **Promo:** %s\n", r.Promo)
	}
	if r.Comment != "" && r.Comment != "." {
		fmt.Fprintf(&b, "• **Comment:** %s\n", r.Comment)
	}
	if r.Type == model.TypeAlbum && r.Tracklist != "" {
		fmt.Fprintf(&b, "• **Tracklist:** %s\n", r.Tracklist)
	}
	fmt.Fprintf(&b, "• **Contact:** %s\n", r.Contact)
	return b.String()
}

// statusHeader is the short block prepended to the immutable card body on
// every card update.
func statusHeader(r *model.Release) string {
	lines := []string{statusLines[r.Status]}
	if r.Status == model.StatusRejected && r.RejectReason != "" {
		lines = append(lines, "📄 Reason: "+r.RejectReason)
	}
	if r.ProductCode != "" {
		lines = append(lines, "📦 Product code: `"+r.ProductCode+"`")
	}
	if r.UserDeleted {
		lines = append(lines, "🗑 Deleted by the artist")
	}
	if r.Moderator != "" {
		lines = append(lines, "👤 Moderator: "+r.Moderator)
	}
	return strings.Join(lines, "\n") + "\n\n"
}
