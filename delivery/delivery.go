// Package delivery wraps the chat backend with bounded retries and graceful
// degradation, so workflow code never has to reason about transport faults.
package delivery

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Transport is the minimal outbound surface of the chat backend. The
// production implementation adapts *discordgo.Session; tests substitute a
// scripted fake.
type Transport interface {
	Send(channelID, content string, components []discordgo.MessageComponent, replyToID string) (string, error)
	Edit(channelID, messageID, content string, components []discordgo.MessageComponent) error
	OpenDM(userID string) (string, error)
}

const maxAttempts = 5

// Client retries transient transport failures with linear backoff,
// downgrades messages the backend rejects as malformed markup to plain
// text, and falls back from editing to sending when the target message can
// no longer be edited.
type Client struct {
	t     Transport
	sleep func(time.Duration)
}

func New(t Transport) *Client {
	return &Client{t: t, sleep: time.Sleep}
}

// Send delivers content to channelID, optionally as a reply to replyToID.
// It returns the id of the created message.
func (c *Client) Send(channelID, content string, components []discordgo.MessageComponent, replyToID string) (string, error) {
	var lastErr error
	text := content
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id, err := c.t.Send(channelID, text, components, replyToID)
		if err == nil {
			return id, nil
		}
		lastErr = err
		switch classify(err) {
		case classTransient:
			c.sleep(time.Duration(attempt+1) * time.Second)
		case classFormatting:
			text = StripMarkup(text)
		default:
			return "", err
		}
	}
	return "", fmt.Errorf("send to %s: gave up after %d attempts: %w", channelID, maxAttempts, lastErr)
}

// Edit rewrites an existing message. When the target can no longer be
// edited, the content is sent as a new message instead so the transition
// stays visible in the chat.
func (c *Client) Edit(channelID, messageID, content string, components []discordgo.MessageComponent) error {
	var lastErr error
	text := content
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := c.t.Edit(channelID, messageID, text, components)
		if err == nil {
			return nil
		}
		lastErr = err
		switch classify(err) {
		case classTransient:
			c.sleep(time.Duration(attempt+1) * time.Second)
		case classFormatting:
			text = StripMarkup(text)
		case classPermission:
			log.Printf("edit %s/%s not possible, sending a new message: %v", channelID, messageID, err)
			_, serr := c.Send(channelID, text, components, "")
			return serr
		default:
			return err
		}
	}
	return fmt.Errorf("edit %s/%s: gave up after %d attempts: %w", channelID, messageID, maxAttempts, lastErr)
}

// Notify best-effort DMs userID. Failures are logged and swallowed: a
// missed notification must never abort a recorded transition.
func (c *Client) Notify(userID, content string) {
	ch, err := c.t.OpenDM(userID)
	if err != nil {
		log.Printf("notify %s: open DM: %v", userID, err)
		return
	}
	if _, err := c.Send(ch, content, nil, ""); err != nil {
		log.Printf("notify %s: %v", userID, err)
	}
}
