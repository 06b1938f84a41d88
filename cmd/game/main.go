package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tatianab/detective-quest/internal/archive"
	"github.com/tatianab/detective-quest/internal/config"
	"github.com/tatianab/detective-quest/internal/console"
	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/logging"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "Detective Quest: explore the mansion, collect clues, accuse a suspect",
	Long: `Detective Quest is a small detective game played in the terminal.
Walk the mansion with 'e' (left) and 'd' (right), stop with 's' and
name the suspect the collected clues point to.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		session, err := a.engine.NewSession(a.caseFile)
		if err != nil {
			return err
		}
		defer session.Close()
		return tui.Run(cmd.Context(), a.engine, session, a.logger)
	},
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play in plain line mode on stdin and stdout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		session, err := a.engine.NewSession(a.caseFile)
		if err != nil {
			return err
		}
		defer session.Close()
		game := console.NewGame(a.engine, session, cmd.InOrStdin(), cmd.OutOrStdout(), console.WithLogger(a.logger))
		_, err = game.Play(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(historyCmd)
}

// app holds everything a subcommand needs. Close releases it in reverse
// order of acquisition.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	caseFile *models.Case
	archive  *archive.Archive
	engine   *engine.Engine
	closers  []func() error
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.Debug, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	a.caseFile, err = models.DefaultCase()
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := []engine.Option{
		engine.WithModel(cfg.Gemini.Model),
		engine.WithLogger(logger),
	}
	a.archive, err = archive.Open(cfg.Archive.Path)
	switch {
	case errors.Is(err, archive.ErrDisabled):
		logger.Debug("verdict archive disabled")
	case err != nil:
		a.Close()
		return nil, fmt.Errorf("error opening archive: %w", err)
	default:
		a.closers = append(a.closers, a.archive.Close)
		opts = append(opts, engine.WithRecorder(a.archive))
	}

	a.engine, err = engine.NewEngine(ctx, cfg.Gemini.APIKey, opts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("error creating engine: %w", err)
	}
	a.closers = append(a.closers, func() error {
		a.engine.Close()
		return nil
	})
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("close failed", slog.Any("error", err))
		}
	}
	a.closers = nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
