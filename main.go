package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/subtimeline/internal/config"
	"github.com/llehouerou/subtimeline/internal/cuesource"
	"github.com/llehouerou/subtimeline/internal/errmsg"
	"github.com/llehouerou/subtimeline/internal/logging"
	"github.com/llehouerou/subtimeline/internal/subtitle"
	"github.com/llehouerou/subtimeline/internal/subtitle/session"
	"github.com/llehouerou/subtimeline/internal/ui/subview"
)

type options struct {
	debug      bool
	configPath string
	languages  []string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "subtimeline [flags] primary.(srt|lrc) [secondary.(srt|lrc)]",
		Short: "Follow subtitle tracks along a playback clock",
		Long: `subtimeline loads one subtitle file per track and plays them back
against a simulated clock, highlighting the cue showing on each track.

Supported formats are SubRip (.srt) and synced lyrics (.lrc).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Write debug logs")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringSliceVarP(&opts.languages, "lang", "l", nil,
		"Language tag per track, in track order (e.g. en,ja)")

	return cmd
}

func run(opts options, args []string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpConfigLoad, opts.configPath, err))
	}

	logger, err := logging.New(cfg.GetLogConfig(), opts.debug)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoggerSetup, err))
	}
	defer func() { _ = logger.Sync() }()

	s := session.New(cfg, logger)
	defer s.Close()

	if len(args) > s.Len() {
		return fmt.Errorf("%d subtitle files given, but only %d tracks are configured", len(args), s.Len())
	}

	for slot, tag := range opts.languages {
		if track := s.Track(slot); track != nil {
			track.SetLanguageSource(subtitle.ParseLanguage(tag))
		}
	}

	for slot, path := range args {
		cues, err := cuesource.Open(path)
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpCuesLoad, path, err))
		}
		s.Track(slot).Load(cues)
		logger.Info("subtitles loaded",
			zap.Int("slot", slot),
			zap.String("path", path),
			zap.Int("cues", len(cues)))
	}

	p := tea.NewProgram(subview.New(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpRun, err))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
