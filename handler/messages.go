package handler

import (
	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/dialog"
	"github.com/kazumaiq/cxner-music-bot/moderation"
)

var (
	dialogs           *dialog.Manager
	engine            *moderation.Engine
	moderationChannel string
)

// InitMessageRouting wires the free-text message router. Messages in the
// moderation channel are reply-correlated moderator input; everything else
// may belong to a submission dialogue.
func InitMessageRouting(m *dialog.Manager, e *moderation.Engine, channelID string) {
	dialogs = m
	engine = e
	moderationChannel = channelID
}

// OnMessageCreate routes every inbound message.
func OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.ChannelID == moderationChannel {
		if m.MessageReference != nil && m.MessageReference.MessageID != "" {
			engine.HandleReply(m.MessageReference.MessageID, m.Content, moderation.Moderator{
				ID:   m.Author.ID,
				Name: m.Author.Username,
			})
		}
		return
	}
	dialogs.HandleText(m.Author.ID, m.Author.Username, m.ChannelID, m.Content)
}
