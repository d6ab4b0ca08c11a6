package main

import "github.com/kazumaiq/cxner-music-bot/bot"

func main() {
	bot.Run()
}
