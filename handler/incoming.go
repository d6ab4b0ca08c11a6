package handler

import "github.com/bwmarrin/discordgo"

// Incoming is one inbound chat event, a plain message or an interaction,
// with a uniform way to identify the sender and answer them. Handlers that
// work the same for both shapes take an Incoming instead of the raw event.
type Incoming interface {
	ChannelID() string
	SenderID() string
	SenderName() string
	Reply(content string, components []discordgo.MessageComponent) error
}

type messageEvent struct {
	s *discordgo.Session
	m *discordgo.MessageCreate
}

// FromMessage wraps a plain chat message.
func FromMessage(s *discordgo.Session, m *discordgo.MessageCreate) Incoming {
	return messageEvent{s: s, m: m}
}

func (e messageEvent) ChannelID() string  { return e.m.ChannelID }
func (e messageEvent) SenderID() string   { return e.m.Author.ID }
func (e messageEvent) SenderName() string { return e.m.Author.Username }

func (e messageEvent) Reply(content string, components []discordgo.MessageComponent) error {
	_, err := e.s.ChannelMessageSendComplex(e.m.ChannelID, &discordgo.MessageSend{
		Content:    content,
		Components: components,
		Reference: &discordgo.MessageReference{
			MessageID: e.m.ID,
			ChannelID: e.m.ChannelID,
		},
	})
	return err
}

type interactionEvent struct {
	s *discordgo.Session
	i *discordgo.InteractionCreate
}

// FromInteraction wraps a slash command or a button press. Reply answers
// the interaction with an ephemeral message, visible only to the sender.
func FromInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) Incoming {
	return interactionEvent{s: s, i: i}
}

func (e interactionEvent) ChannelID() string { return e.i.ChannelID }

func (e interactionEvent) SenderID() string {
	return InteractionUser(e.i).ID
}

func (e interactionEvent) SenderName() string {
	return InteractionUser(e.i).Username
}

func (e interactionEvent) Reply(content string, components []discordgo.MessageComponent) error {
	return e.s.InteractionRespond(e.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}
