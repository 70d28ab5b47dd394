package helper

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFieldLen = 255

// SanitizeField trims, strips control characters and clamps free-text
// input before it reaches storage. Semantic validation (phone/email
// formats) is intentionally left loose; the funnel only requires
// non-empty values where a step says so.
func SanitizeField(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) > maxFieldLen {
		// clamp on a rune boundary so a multibyte value stays valid UTF-8
		cut := maxFieldLen
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	return strings.TrimSpace(out)
}

// SanitizePayload applies SanitizeField to every value of a raw form payload.
func SanitizePayload(raw map[string]string) map[string]string {
	clean := make(map[string]string, len(raw))
	for k, v := range raw {
		clean[strings.TrimSpace(k)] = SanitizeField(v)
	}
	return clean
}
