package utils

import "strings"

// Clean normalizes free-form user text: trims it, collapses runs of
// whitespace, and drops words that start with an ordinal list marker
// ("1.", "2.", "3.") pasted along from the instructions.
func Clean(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w, "1.") || strings.HasPrefix(w, "2.") || strings.HasPrefix(w, "3.") {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
