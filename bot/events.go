package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/handler"
)

func registerEventHandlers(dg *discordgo.Session) {
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("logged in as %s#%s", r.User.Username, r.User.Discriminator)
	})
	dg.AddHandler(handler.OnInteractionCreate)
	dg.AddHandler(handler.OnMessageCreate)
}
