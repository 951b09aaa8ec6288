package subview

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// cueLine flattens multi-line cue text to a single display line, drops
// control characters and invalid UTF-8, and truncates to maxWidth cells.
func cueLine(s string, maxWidth int) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteString(" / ")
		}
		b.WriteString(sanitize(strings.TrimSpace(line)))
	}
	if maxWidth <= 0 {
		return b.String()
	}
	return runewidth.Truncate(b.String(), maxWidth, "...")
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == '\t' || r == ' ':
			b.WriteByte(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatDuration formats a duration as m:ss, with a leading minus for
// negative values.
func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}
