// Package review handles the moderator-facing surface: card buttons and
// the admin command.
package review

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/db"
	"github.com/kazumaiq/cxner-music-bot/handler"
	"github.com/kazumaiq/cxner-music-bot/model"
	"github.com/kazumaiq/cxner-music-bot/moderation"
	"github.com/kazumaiq/cxner-music-bot/utils"
)

var (
	engine *moderation.Engine
	store  *db.Store
)

// RegisterHandlers wires the moderation handlers into the router.
func RegisterHandlers(e *moderation.Engine, st *db.Store) {
	engine = e
	store = st
	handler.AddComponentHandler("mod", ModerationButtonHandler)
	handler.AddCommandHandler("admin", AdminCommandHandler)
	handler.AddComponentHandler("admin", AdminButtonHandler)
}

const actionFailedMsg = "❌ Something went wrong, the action was not applied."

// parseCardToken splits a card control custom id of the form
// "mod:<action>:<user id>:<index>".
func parseCardToken(customID string) (action, userID string, idx int, err error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 {
		return "", "", 0, fmt.Errorf("malformed custom id %q", customID)
	}
	idx, err = strconv.Atoi(parts[3])
	if err != nil {
		return "", "", 0, fmt.Errorf("malformed index in %q", customID)
	}
	return parts[1], parts[2], idx, nil
}

func runCardAction(action, userID string, idx int, mod moderation.Moderator) error {
	switch action {
	case "upload", "reopen":
		return engine.Transition(userID, idx, model.StatusOnUpload, mod, "")
	case "moderate":
		return engine.Transition(userID, idx, model.StatusModeration, mod, "")
	case "approve":
		if err := engine.Transition(userID, idx, model.StatusApproved, mod, ""); err != nil {
			return err
		}
		return engine.RequestProductCode(userID, idx)
	case "reject":
		// no transition yet; the reply with the reason performs it
		return engine.RequestRejectReason(userID, idx)
	case "needfix":
		return engine.Transition(userID, idx, model.StatusNeedsFix, mod, "")
	case "delete":
		return engine.Transition(userID, idx, model.StatusDeleted, mod, "")
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

// ModerationButtonHandler reacts to the card control buttons. Custom ids
// look like "mod:<action>:<user id>:<index>". The moderator always gets
// an acknowledgment: the card refresh on success, an ephemeral notice on
// failure.
func ModerationButtonHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	u := handler.InteractionUser(i)
	mod := moderation.Moderator{ID: u.ID, Name: u.Username}

	action, userID, idx, err := parseCardToken(i.MessageComponentData().CustomID)
	if err != nil {
		log.Printf("review: %v", err)
		if rerr := handler.FromInteraction(s, i).Reply(actionFailedMsg, nil); rerr != nil {
			log.Printf("review: reply: %v", rerr)
		}
		return
	}
	handler.AckUpdate(s, i)

	if err := runCardAction(action, userID, idx, mod); err != nil {
		log.Printf("review: %s %s/%d by %s: %v", action, userID, idx, u.Username, err)
		followupError(s, i)
	}
}

// followupError tells the moderator the action failed. The interaction is
// already acked with a deferred update, so only a followup reaches them.
func followupError(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: actionFailedMsg,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("review: followup: %v", err)
	}
}

// AdminCommandHandler shows base statistics and the wipe control.
func AdminCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ev := handler.FromInteraction(s, i)
	if !utils.CheckAdmin(ev.SenderID()) {
		log.Printf("review: admin command denied for %s", ev.SenderID())
		if err := ev.Reply("⛔ You are not allowed to use this command.", nil); err != nil {
			log.Printf("review: reply: %v", err)
		}
		return
	}

	counts := store.CountByStatus()
	total := 0
	for _, n := range counts {
		total += n
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Release base: %d record(s)**\n\n", total)
	for _, st := range []model.Status{
		model.StatusOnUpload, model.StatusModeration, model.StatusApproved,
		model.StatusRejected, model.StatusNeedsFix, model.StatusDeleted,
	} {
		fmt.Fprintf(&b, "• %s: %d\n", st, counts[st])
	}
	err := ev.Reply(b.String(), []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Wipe release base", Style: discordgo.DangerButton, CustomID: "admin:wipe"},
		}},
	})
	if err != nil {
		log.Printf("review: reply: %v", err)
	}
}

// AdminButtonHandler confirms and executes the base wipe.
func AdminButtonHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ev := handler.FromInteraction(s, i)
	if !utils.CheckAdmin(ev.SenderID()) {
		log.Printf("review: admin button denied for %s", ev.SenderID())
		if err := ev.Reply("⛔ You are not allowed to do that.", nil); err != nil {
			log.Printf("review: reply: %v", err)
		}
		return
	}

	switch i.MessageComponentData().CustomID {
	case "admin:wipe":
		err := ev.Reply("⚠️ This removes **every** release record. The archive and history files stay. Are you sure?",
			[]discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Yes, wipe it", Style: discordgo.DangerButton, CustomID: "admin:wipe_confirm"},
				}},
			})
		if err != nil {
			log.Printf("review: reply: %v", err)
		}
	case "admin:wipe_confirm":
		if err := store.WipeReleases(); err != nil {
			log.Printf("review: wipe: %v", err)
			if rerr := ev.Reply("❌ Wipe failed, check the logs.", nil); rerr != nil {
				log.Printf("review: reply: %v", rerr)
			}
			return
		}
		log.Printf("review: release base wiped by %s", ev.SenderID())
		if err := ev.Reply("🧹 Release base wiped.", nil); err != nil {
			log.Printf("review: reply: %v", err)
		}
	}
}
