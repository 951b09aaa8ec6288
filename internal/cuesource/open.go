package cuesource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/subtimeline/internal/subtitle"
)

var (
	// ErrUnsupportedFormat is returned by Open for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")

	// ErrMalformedTiming is returned when an SRT timing line cannot be parsed.
	ErrMalformedTiming = errors.New("malformed timing line")
)

// Open reads the cues of a .srt or .lrc file.
func Open(path string) ([]subtitle.Cue, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt", ".lrc":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cues []subtitle.Cue
	if ext == ".srt" {
		cues, err = ParseSRT(f)
	} else {
		cues, err = ParseLRC(f, DefaultLRCTail)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cues, nil
}
