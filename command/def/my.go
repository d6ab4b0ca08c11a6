package def

import "github.com/bwmarrin/discordgo"

// MyCommand shows the sender's submissions and their statuses.
var MyCommand = &discordgo.ApplicationCommand{
	Name:        "my",
	Description: "List your submitted releases",
}
