package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/command/def"
)

// AllCommands lists every slash command the bot registers on startup.
var AllCommands = []*discordgo.ApplicationCommand{
	def.SubmitCommand,
	def.MyCommand,
	def.AdminCommand,
}
