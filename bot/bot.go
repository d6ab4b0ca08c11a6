package bot

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kazumaiq/cxner-music-bot/command"
	"github.com/kazumaiq/cxner-music-bot/config"
	"github.com/kazumaiq/cxner-music-bot/correlate"
	"github.com/kazumaiq/cxner-music-bot/db"
	"github.com/kazumaiq/cxner-music-bot/delivery"
	"github.com/kazumaiq/cxner-music-bot/dialog"
	"github.com/kazumaiq/cxner-music-bot/handler"
	"github.com/kazumaiq/cxner-music-bot/handler/release"
	"github.com/kazumaiq/cxner-music-bot/handler/review"
	"github.com/kazumaiq/cxner-music-bot/moderation"
)

// Run starts the bot and blocks until SIGINT or SIGTERM.
func Run() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := db.Open(config.Cfg.Data.Dir, config.Cfg.Data.WebappExport)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	dg, err := discordgo.New("Bot " + config.Cfg.Token)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
	// handlers assume in-order delivery per requester
	dg.SyncEvents = true

	client := delivery.New(delivery.Discord(dg))
	index := correlate.New()
	index.Rebuild(store.EachRelease)
	log.Printf("correlation index rebuilt: %d tracked message(s)", index.Len())

	engine := moderation.NewEngine(store, client, index,
		config.Cfg.Moderation.ChannelID,
		time.Duration(config.Cfg.Moderation.RemindAfterHours)*time.Hour)
	dialogs := dialog.NewManager(store, client, engine)

	release.RegisterHandlers(dialogs, engine, store)
	review.RegisterHandlers(engine, store)
	handler.InitMessageRouting(dialogs, engine, config.Cfg.Moderation.ChannelID)
	registerEventHandlers(dg)

	if err := dg.Open(); err != nil {
		log.Fatalf("open gateway: %v", err)
	}
	defer dg.Close()

	registerCommands(dg)

	stop := make(chan struct{})
	go engine.RunReminderLoop(
		time.Duration(config.Cfg.Moderation.SweepIntervalMinute)*time.Minute, stop)

	log.Println("bot is running, press Ctrl+C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
	close(stop)
	log.Println("shutting down")
}

// registerCommands overwrites the slash command set per configured guild,
// or globally when no guilds are configured.
func registerCommands(dg *discordgo.Session) {
	guilds := config.Cfg.Guilds
	if len(guilds) == 0 {
		guilds = []string{""}
	}
	for _, guildID := range guilds {
		if _, err := dg.ApplicationCommandBulkOverwrite(dg.State.User.ID, guildID, command.AllCommands); err != nil {
			log.Printf("register commands for guild %q: %v", guildID, err)
		}
	}
}
