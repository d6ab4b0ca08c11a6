package moderation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/model"
)

func token(action, userID string, idx int) string {
	return fmt.Sprintf("mod:%s:%s:%d", action, userID, idx)
}

// StatusButtons is the moderator control block for a card: the full status
// row pair while the release is in flight, a single re-open control once it
// has settled.
func StatusButtons(userID string, idx int, st model.Status) []discordgo.MessageComponent {
	if st.Settled() {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Re-open", Style: discordgo.SecondaryButton, CustomID: token("reopen", userID, idx)},
			}},
		}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "On upload", Style: discordgo.SecondaryButton, CustomID: token("upload", userID, idx)},
			discordgo.Button{Label: "Moderation", Style: discordgo.PrimaryButton, CustomID: token("moderate", userID, idx)},
			discordgo.Button{Label: "Approve", Style: discordgo.SuccessButton, CustomID: token("approve", userID, idx)},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Reject", Style: discordgo.DangerButton, CustomID: token("reject", userID, idx)},
			discordgo.Button{Label: "Needs fix", Style: discordgo.SecondaryButton, CustomID: token("needfix", userID, idx)},
			discordgo.Button{Label: "Delete", Style: discordgo.DangerButton, CustomID: token("delete", userID, idx)},
		}},
	}
}
