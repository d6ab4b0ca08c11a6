// Package release handles the requester-facing surface: starting a
// submission dialogue and the personal release cabinet.
package release

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/db"
	"github.com/kazumaiq/cxner-music-bot/dialog"
	"github.com/kazumaiq/cxner-music-bot/handler"
	"github.com/kazumaiq/cxner-music-bot/model"
	"github.com/kazumaiq/cxner-music-bot/moderation"
)

var (
	dialogs *dialog.Manager
	engine  *moderation.Engine
	store   *db.Store
)

// RegisterHandlers wires the dialogue and cabinet handlers into the router.
func RegisterHandlers(m *dialog.Manager, e *moderation.Engine, st *db.Store) {
	dialogs = m
	engine = e
	store = st
	handler.AddCommandHandler("submit", SubmitCommandHandler)
	handler.AddCommandHandler("my", MyReleasesCommandHandler)
	handler.AddComponentHandler("dlg", DialogButtonHandler)
	handler.AddComponentHandler("my", MyReleasesButtonHandler)
}

// SubmitCommandHandler starts (or restarts) the submission dialogue in the
// channel the command was used in.
func SubmitCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ev := handler.FromInteraction(s, i)
	if err := ev.Reply("🎵 Starting a new submission. Answer the questions below; type `undo` to step back.", nil); err != nil {
		log.Printf("submit: ack: %v", err)
	}
	dialogs.Start(ev.SenderID(), ev.SenderName(), ev.ChannelID())
}

// DialogButtonHandler forwards dialogue button presses to the manager.
func DialogButtonHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	u := handler.InteractionUser(i)
	handler.AckUpdate(s, i)
	token := strings.TrimPrefix(i.MessageComponentData().CustomID, "dlg:")
	dialogs.HandleButton(u.ID, u.Username, i.ChannelID, token)
}

var statusLabels = map[model.Status]string{
	model.StatusOnUpload:   "🕓 on upload",
	model.StatusModeration: "🧠 in moderation",
	model.StatusApproved:   "✅ approved",
	model.StatusRejected:   "❌ rejected",
	model.StatusNeedsFix:   "⚠️ needs fixes",
	model.StatusDeleted:    "🗑 deleted",
}

// MyReleasesCommandHandler shows the sender's submissions with per-release
// delete controls.
func MyReleasesCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ev := handler.FromInteraction(s, i)
	list := store.UserReleases(ev.SenderID())
	if len(list) == 0 {
		if err := ev.Reply("You have no submissions yet. Start one with /submit.", nil); err != nil {
			log.Printf("my: reply: %v", err)
		}
		return
	}

	var b strings.Builder
	b.WriteString("🎵 **Your releases:**\n\n")
	var row discordgo.ActionsRow
	for idx, r := range list {
		fmt.Fprintf(&b, "%d. **%s** — %s", idx+1, r.Title, statusLabels[r.Status])
		if r.ProductCode != "" {
			fmt.Fprintf(&b, " · `%s`", r.ProductCode)
		}
		if r.UserDeleted {
			b.WriteString(" · deleted by you")
		}
		b.WriteString("\n")
		if !r.UserDeleted && len(row.Components) < 5 {
			row.Components = append(row.Components, discordgo.Button{
				Label:    fmt.Sprintf("Delete #%d", idx+1),
				Style:    discordgo.DangerButton,
				CustomID: fmt.Sprintf("my:delete:%d", idx),
			})
		}
	}
	var components []discordgo.MessageComponent
	if len(row.Components) > 0 {
		components = []discordgo.MessageComponent{row}
	}
	if err := ev.Reply(b.String(), components); err != nil {
		log.Printf("my: reply: %v", err)
	}
}

// MyReleasesButtonHandler soft deletes one of the sender's own releases.
func MyReleasesButtonHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ev := handler.FromInteraction(s, i)
	parts := strings.Split(i.MessageComponentData().CustomID, ":")
	if len(parts) != 3 || parts[1] != "delete" {
		return
	}
	idx, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}
	if err := engine.SoftDelete(ev.SenderID(), idx); err != nil {
		log.Printf("my: delete %s/%d: %v", ev.SenderID(), idx, err)
		if rerr := ev.Reply("❌ Could not delete that release.", nil); rerr != nil {
			log.Printf("my: reply: %v", rerr)
		}
		return
	}
	if err := ev.Reply("🗑 Release marked as deleted. The label has been notified.", nil); err != nil {
		log.Printf("my: reply: %v", err)
	}
}
