// Package cuesource turns subtitle and lyrics files into cues for the
// subtitle timeline. SubRip cues keep file order; LRC lines are ordered by
// timestamp since their end times are derived from the next line.
package cuesource

import (
	"bufio"
	"cmp"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/subtimeline/internal/subtitle"
)

// DefaultLRCTail is how long the last LRC line stays visible.
const DefaultLRCTail = 5 * time.Second

// Regular expressions for parsing LRC format
var (
	// Matches timestamps like [00:12.34] or [00:12:34] or [00:12]
	lrcTimestampRe = regexp.MustCompile(`\[(\d+):(\d+)(?:[.:](\d+))?\]`)

	// Matches metadata tags like [ar:Artist Name]
	lrcMetadataRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
)

// ParseLRC parses LRC lyrics into cues.
//
// LRC lines only carry a start time, so each cue ends where the following
// line starts and the final cue lasts tail. A line with several
// timestamps ([00:30.00][01:30.00]Chorus) yields one cue per timestamp.
// Cues are sorted by start time; lines sharing a timestamp keep file order.
// Metadata tags and untimed lines are skipped.
func ParseLRC(r io.Reader, tail time.Duration) ([]subtitle.Cue, error) {
	var cues []subtitle.Cue
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || lrcMetadataRe.MatchString(line) {
			continue
		}

		matches := lrcTimestampRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		// Text follows the last timestamp
		locs := lrcTimestampRe.FindAllStringIndex(line, -1)
		text := strings.TrimSpace(line[locs[len(locs)-1][1]:])

		for _, m := range matches {
			start, err := parseLRCTimestamp(m)
			if err != nil {
				continue
			}
			cues = append(cues, subtitle.Cue{Start: start, Text: text})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(cues, func(a, b subtitle.Cue) int {
		return cmp.Compare(a.Start, b.Start)
	})

	for i := range cues {
		if i+1 < len(cues) {
			cues[i].End = cues[i+1].Start
		} else {
			cues[i].End = cues[i].Start + tail
		}
		cues[i].Index = i
	}

	return cues, nil
}

// parseLRCTimestamp converts the submatches of lrcTimestampRe to a Duration.
func parseLRCTimestamp(m []string) (time.Duration, error) {
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, err
	}

	var millis int
	if m[3] != "" {
		millis, err = strconv.Atoi(m[3])
		if err != nil {
			return 0, err
		}
		// .x is tenths, .xx centiseconds, .xxx milliseconds
		switch len(m[3]) {
		case 1:
			millis *= 100
		case 2:
			millis *= 10
		}
	}

	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
