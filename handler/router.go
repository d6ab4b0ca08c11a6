package handler

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc handles one interaction.
type HandlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate)

var (
	commandHandlers   = map[string]HandlerFunc{}
	componentHandlers = map[string]HandlerFunc{}
)

// AddCommandHandler registers a slash command handler by command name.
func AddCommandHandler(name string, h HandlerFunc) {
	commandHandlers[name] = h
}

// AddComponentHandler registers a component handler by custom id prefix,
// the part before the first ":".
func AddComponentHandler(prefix string, h HandlerFunc) {
	componentHandlers[prefix] = h
}

// OnInteractionCreate dispatches interactions to the registered handlers.
func OnInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := commandHandlers[name]; ok {
			h(s, i)
			return
		}
		log.Printf("no handler for command %q", name)
	case discordgo.InteractionMessageComponent:
		id := i.MessageComponentData().CustomID
		prefix, _, _ := strings.Cut(id, ":")
		if h, ok := componentHandlers[prefix]; ok {
			h(s, i)
			return
		}
		log.Printf("no handler for component %q", id)
	}
}

// InteractionUser returns the acting user for guild and DM interactions.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// AckUpdate acknowledges a component press without a visible reply, for
// handlers whose effect is an edit of the pressed message.
func AckUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("ack interaction: %v", err)
	}
}
