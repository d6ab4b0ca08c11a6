package dialog

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/kazumaiq/cxner-music-bot/model"
)

// Validation failures surfaced to the requester as re-prompts.
var (
	ErrEmpty      = errors.New("field is required")
	ErrBadDate    = errors.New("bad date format")
	ErrDateSoon   = errors.New("date is too soon")
	ErrBadURL     = errors.New("not a valid link")
	ErrBadYesNo   = errors.New("expected yes or no")
	ErrBadType    = errors.New("unknown release category")
	ErrBadContact = errors.New("contact must start with @")
)

const dateLayout = "02.01.2006"

// MinAdvanceDays is the advance-notice window for a release category.
func MinAdvanceDays(releaseType string) int {
	if releaseType == model.TypeAlbum {
		return 7
	}
	return 3
}

// ValidateDate parses DD.MM.YYYY and enforces the advance-notice rule. A
// date exactly MinAdvanceDays out is still too soon; one day later passes.
func ValidateDate(text string, minDays int, now time.Time) (string, error) {
	text = strings.TrimSpace(text)
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return "", ErrBadDate
	}
	earliest := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, minDays)
	if t.Before(earliest) || t.Equal(earliest) {
		return "", ErrDateSoon
	}
	return t.Format(dateLayout), nil
}

// ValidateURL accepts absolute http(s) URLs with a dotted host (or
// localhost), plus the literal placeholder ".".
func ValidateURL(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "." {
		return ".", nil
	}
	u, err := url.Parse(text)
	if err != nil {
		return "", ErrBadURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrBadURL
	}
	host := u.Hostname()
	if host != "localhost" && !strings.Contains(host, ".") {
		return "", ErrBadURL
	}
	return text, nil
}

// NormalizeYesNo maps common affirmative and negative answers, Russian and
// English alike, to a boolean.
func NormalizeYesNo(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y", "да", "д", "+", "есть":
		return true, nil
	case "no", "n", "нет", "н", "-", "нету":
		return false, nil
	}
	return false, ErrBadYesNo
}

// NormalizeCategory maps category synonyms to the canonical identifiers.
func NormalizeCategory(text string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "single", "сингл", "трек", "track":
		return model.TypeSingle, nil
	case "album", "альбом", "ep", "еп":
		return model.TypeAlbum, nil
	}
	return "", ErrBadType
}

// ValidateContact requires at least one @handle in the answer.
func ValidateContact(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}
	if !strings.Contains(text, "@") {
		return "", ErrBadContact
	}
	return text, nil
}
