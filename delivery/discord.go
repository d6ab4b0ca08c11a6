package delivery

import "github.com/bwmarrin/discordgo"

// discordTransport adapts *discordgo.Session to Transport.
type discordTransport struct {
	s *discordgo.Session
}

// Discord wraps a live session.
func Discord(s *discordgo.Session) Transport {
	return discordTransport{s: s}
}

func (d discordTransport) Send(channelID, content string, components []discordgo.MessageComponent, replyToID string) (string, error) {
	send := &discordgo.MessageSend{
		Content:    content,
		Components: components,
	}
	if replyToID != "" {
		send.Reference = &discordgo.MessageReference{
			MessageID: replyToID,
			ChannelID: channelID,
		}
	}
	m, err := d.s.ChannelMessageSendComplex(channelID, send)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (d discordTransport) Edit(channelID, messageID, content string, components []discordgo.MessageComponent) error {
	edit := discordgo.NewMessageEdit(channelID, messageID).SetContent(content)
	edit.Components = &components
	_, err := d.s.ChannelMessageEditComplex(edit)
	return err
}

func (d discordTransport) OpenDM(userID string) (string, error) {
	ch, err := d.s.UserChannelCreate(userID)
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}
