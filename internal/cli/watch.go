package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deckwise/deckbrief/internal/ai"
	"github.com/deckwise/deckbrief/internal/analyzer"
	"github.com/deckwise/deckbrief/internal/deck"
	"github.com/deckwise/deckbrief/internal/logger"
	"github.com/deckwise/deckbrief/internal/watcher"
)

func newWatchCommand(opts *options) *cobra.Command {
	var inputDir, outputDir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and analyze every deck that arrives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, inputDir, outputDir)
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "directory to watch for deck files")
	cmd.Flags().StringVar(&outputDir, "output", "", "directory reports are written to")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *options, inputDir, outputDir string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if inputDir != "" {
		cfg.Paths.Input = inputDir
	}
	if outputDir != "" {
		cfg.Paths.Output = outputDir
	}
	if err := cfg.ValidateWatch(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, err := ai.NewGemini(ctx, cfg, log)
	if err != nil {
		return err
	}

	a := analyzer.New(cfg, deck.New(), service, log)

	ext := ".txt"
	if cfg.Analysis.Format == "docx" {
		ext = ".docx"
	}

	// One deck failing is logged by the watcher and the loop continues;
	// the abort-whole-run policy applies within a deck, not across them.
	handler := func(ctx context.Context, path string) error {
		results, err := a.Analyze(ctx, path)
		if err != nil {
			return err
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		output := filepath.Join(cfg.Paths.Output, stem+ext)
		if err := writeReport(cfg, path, output, results); err != nil {
			return err
		}

		log.Info(ctx, "Report written to %s", output)
		return nil
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
