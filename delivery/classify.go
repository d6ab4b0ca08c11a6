package delivery

import (
	"errors"
	"net"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type errClass int

const (
	// worth retrying after a pause
	classTransient errClass = iota
	// the backend rejected the markup; resend as plain text
	classFormatting
	// the target cannot be reached or edited; degrade, do not retry
	classPermission
	// everything else
	classFatal
)

// classify decides how the client reacts to a transport error.
func classify(err error) errClass {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) {
		if rerr.Response != nil && rerr.Response.StatusCode >= 500 {
			return classTransient
		}
		if rerr.Response != nil && rerr.Response.StatusCode == 429 {
			return classTransient
		}
		if rerr.Message != nil {
			switch rerr.Message.Code {
			case discordgo.ErrCodeInvalidFormBody:
				return classFormatting
			case discordgo.ErrCodeUnknownMessage,
				discordgo.ErrCodeUnknownChannel,
				discordgo.ErrCodeMissingPermissions,
				discordgo.ErrCodeMissingAccess,
				discordgo.ErrCodeCannotSendMessagesToThisUser,
				discordgo.ErrCodeCannotEditFromAnotherUser:
				return classPermission
			}
		}
		return classFatal
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return classTransient
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "unexpected EOF"),
		strings.Contains(msg, "i/o timeout"):
		return classTransient
	}
	return classFatal
}

var markupReplacer = strings.NewReplacer(
	"**", "",
	"__", "",
	"~~", "",
	"```", "",
	"`", "",
	"*", "",
)

// StripMarkup removes chat formatting, leaving plain text the backend will
// always accept.
func StripMarkup(s string) string {
	return markupReplacer.Replace(s)
}
