package dialog

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/model"
)

func buttonRow(buttons ...discordgo.Button) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		row.Components = append(row.Components, b)
	}
	return []discordgo.MessageComponent{row}
}

// prompt builds the message and buttons for a dialogue step.
func prompt(st state, d *model.Draft) (string, []discordgo.MessageComponent) {
	switch st {
	case stateType:
		return "🎵 **New release**\n\nChoose the release category:", buttonRow(
			discordgo.Button{Label: "Single", Style: discordgo.PrimaryButton, CustomID: "dlg:type:single"},
			discordgo.Button{Label: "Album", Style: discordgo.PrimaryButton, CustomID: "dlg:type:album"},
		)
	case stateTitle:
		return "🎶 **Release title**\nExample: Lost in the Void", nil
	case stateSubtitle:
		return "⭐️ **Subtitle** (slowed, sped up, prod. ...)\nSend `.` or press Skip if there is none.", buttonRow(
			discordgo.Button{Label: "Skip", Style: discordgo.SecondaryButton, CustomID: "dlg:subtitle:skip"},
		)
	case stateLyrics:
		return "⚠️ **Does the release have lyrics?**", buttonRow(
			discordgo.Button{Label: "Yes", Style: discordgo.PrimaryButton, CustomID: "dlg:lyrics:yes"},
			discordgo.Button{Label: "No, it's an instrumental", Style: discordgo.SecondaryButton, CustomID: "dlg:lyrics:no"},
		)
	case statePerformer:
		return "⭐️ **Artist name(s)**\nExample: MAKIZM", nil
	case stateLegalName:
		return "⭐️ **Artist full legal name(s)**\nExample: Ivan Ivanov, Petr Petrov", nil
	case stateDate:
		return fmt.Sprintf("📅 **Release date**\nAt least %d days from today.\nFormat: `DD.MM.YYYY`", MinAdvanceDays(d.Type)), nil
	case stateVersion:
		return "🎵 **Release version** (Slowed, Sped Up ...)\nSend `-` if this is the original.", nil
	case stateGenre:
		return "🎵 **Genre**\nExample: Phonk, Trap", nil
	case stateFileLink:
		return "🎁 **Link to the files** (cloud drive)\n\nThe archive must contain:\n• WAV 16/24 bit, 44100 Hz\n• 3000x3000 JPG cover\n• project screenshot", nil
	case statePlatLink:
		return "🎵 **Your artist page on the secondary platform**\nSend `.` if there is none.", nil
	case stateExplicit:
		return "⚠️ **Any explicit lyrics?**", buttonRow(
			discordgo.Button{Label: "Yes", Style: discordgo.DangerButton, CustomID: "dlg:explicit:yes"},
			discordgo.Button{Label: "No", Style: discordgo.SecondaryButton, CustomID: "dlg:explicit:no"},
		)
	case statePromo:
		return "✨ **Promo text** (optional)\nSend `.` to skip.", nil
	case stateComment:
		return "💬 **Comment for the moderator** (optional)\nSend `.` to skip.", nil
	case stateTracklist:
		return "📋 **Tracklist**\nList the album tracks in one message, in order.", nil
	case stateContact:
		return "📱 **Contact for questions**\n@username, several allowed.", nil
	case stateConfirm:
		return summary(d), buttonRow(
			discordgo.Button{Label: "Send for review", Style: discordgo.SuccessButton, CustomID: "dlg:confirm"},
			discordgo.Button{Label: "Undo last answer", Style: discordgo.SecondaryButton, CustomID: "dlg:undo"},
			discordgo.Button{Label: "Cancel", Style: discordgo.DangerButton, CustomID: "dlg:cancel"},
		)
	}
	return "", nil
}

// validationMessage turns a validator error into the requester-facing
// re-prompt text.
func validationMessage(err error, d *model.Draft) string {
	switch err {
	case ErrBadDate:
		return "❌ Wrong date format. Use `DD.MM.YYYY`, for example `31.12.2026`."
	case ErrDateSoon:
		return fmt.Sprintf("❌ The date must be more than %d days out. Pick a later date.", MinAdvanceDays(d.Type))
	case ErrBadURL:
		return "❌ That does not look like a link. Send a full `http(s)://` URL, or `.` if there is none."
	case ErrBadYesNo:
		return "❌ Please answer yes or no, or use the buttons."
	case ErrBadType:
		return "❌ Unknown category. Answer `single` or `album`, or use the buttons."
	case ErrBadContact:
		return "❌ Send a contact like `@username`."
	case ErrEmpty:
		return "❌ This field is required, please send an answer."
	}
	return "❌ " + err.Error()
}

func summary(d *model.Draft) string {
	var b strings.Builder
	b.WriteString("🎵 **CHECK YOUR SUBMISSION**\n\n")
	fmt.Fprintf(&b, "• **Category:** %s\n", d.Type)
	fmt.Fprintf(&b, "• **Title:** %s\n", d.Title)
	if d.Subtitle != "." && d.Subtitle != "" {
		fmt.Fprintf(&b, "• **Subtitle:** %s\n", d.Subtitle)
	}
	fmt.Fprintf(&b, "• **Lyrics:** %s\n", d.HasLyrics)
	fmt.Fprintf(&b, "• **Artist:** %s\n", d.Performer)
	fmt.Fprintf(&b, "• **Legal name:** %s\n", d.LegalName)
	fmt.Fprintf(&b, "• **Date:** %s\n", d.Date)
	fmt.Fprintf(&b, "• **Version:** %s\n", d.Version)
	fmt.Fprintf(&b, "• **Genre:** %s\n", d.Genre)
	fmt.Fprintf(&b, "• **Files:** %s\n", d.FileLink)
	fmt.Fprintf(&b, "• **Platform page:** %s\n", d.PlatLink)
	fmt.Fprintf(&b, "• **Explicit:** %v\n", d.Explicit)
	if d.Promo != "." && d.Promo != "" {
		fmt.Fprintf(&b, "• **Promo:** %s\n", d.Promo)
	}
	if d.Comment != "." && d.Comment != "" {
		fmt.Fprintf(&b, "• **Comment:** %s\n", d.Comment)
	}
	if d.Type == model.TypeAlbum {
		fmt.Fprintf(&b, "• **Tracklist:** %s\n", d.Tracklist)
	}
	fmt.Fprintf(&b, "• **Contact:** %s\n", d.Contact)
	b.WriteString("\nEverything correct?")
	return b.String()
}
