package cuesource

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/subtimeline/internal/subtitle"
)

var srtTimingRe = regexp.MustCompile(
	`^(\d+):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{3})`,
)

// ParseSRT parses SubRip blocks into cues.
//
// The numeric counter line is optional and ignored: cues are indexed by
// their position in the file. A block whose timing line is malformed is
// an error.
func ParseSRT(r io.Reader) ([]subtitle.Cue, error) {
	var cues []subtitle.Cue
	scanner := bufio.NewScanner(r)

	var current *subtitle.Cue
	var textLines []string
	lineNum := 0
	blockStart := true

	flush := func() {
		if current != nil {
			current.Text = strings.Join(textLines, "\n")
			current.Index = len(cues)
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
		blockStart = true
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimRight(line, "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			if blockStart {
				blockStart = false
				if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
					continue
				}
			}
			start, end, err := parseSRTTiming(line)
			if err != nil {
				return nil, fmt.Errorf("invalid timing at line %d: %w", lineNum, err)
			}
			current = &subtitle.Cue{Start: start, End: end}
			continue
		}

		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading SRT: %w", err)
	}

	return cues, nil
}

func parseSRTTiming(line string) (time.Duration, time.Duration, error) {
	m := srtTimingRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTiming, line)
	}
	start, err := parseSRTTimestamp(m[1], m[2], m[3], m[4])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseSRTTimestamp(m[5], m[6], m[7], m[8])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseSRTTimestamp(hours, minutes, seconds, millis string) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
