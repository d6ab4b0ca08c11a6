package def

import "github.com/bwmarrin/discordgo"

// SubmitCommand starts the release submission dialogue.
var SubmitCommand = &discordgo.ApplicationCommand{
	Name:        "submit",
	Description: "Submit a new release for review",
}
