package subtitle

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLanguage is substituted when neither the track nor the
// configuration names a usable language.
var DefaultLanguage = language.English

// ParseLanguage parses a BCP 47 tag such as "en" or "pt-BR".
// Returns language.Und for empty or unparseable input.
func ParseLanguage(s string) language.Tag {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}

// LanguageName returns the English display name of tag, e.g. "Japanese".
func LanguageName(tag language.Tag) string {
	if tag == language.Und {
		return "Unknown"
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// resolveLanguage echoes source unless it is unknown, in which case
// fallback is used.
func resolveLanguage(source, fallback language.Tag) language.Tag {
	if source != language.Und {
		return source
	}
	return fallback
}
