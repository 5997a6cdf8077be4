// Package cli wires the configuration, the deck reader, the analysis
// service and the orchestrator into the deckbrief commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckwise/deckbrief/internal/ai"
	"github.com/deckwise/deckbrief/internal/analyzer"
	"github.com/deckwise/deckbrief/internal/config"
	"github.com/deckwise/deckbrief/internal/deck"
	"github.com/deckwise/deckbrief/internal/logger"
	"github.com/deckwise/deckbrief/internal/report"
)

type options struct {
	configPath    string
	model         string
	apiKey        string
	combineImages bool
	noLabels      bool
	format        string
	logLevel      string
	pollInterval  int
	pollAttempts  int
}

// NewRootCommand builds the deckbrief command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "deckbrief <input.pptx> <output>",
		Short:         "Summarize slide decks with a multimodal analysis service",
		Long:          "deckbrief extracts text and images from a presentation, submits them per slide to a content-analysis service, and writes a narrative report that references the submitted images by identifier.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0], args[1])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&opts.model, "model", config.DefaultModel, "analysis model to use")
	pf.StringVar(&opts.apiKey, "api-key", "", "API credential (overrides config and "+config.EnvAPIKey+")")
	pf.BoolVar(&opts.combineImages, "combine-images", true, "concatenate a slide's images into one composite")
	pf.BoolVar(&opts.noLabels, "no-labels", false, "skip burning identifier tags into images")
	pf.StringVar(&opts.format, "format", "text", "report format: text or docx")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.IntVar(&opts.pollInterval, "poll-interval", 10, "seconds between staged-file readiness checks")
	pf.IntVar(&opts.pollAttempts, "poll-attempts", 30, "maximum readiness checks per staged file")

	cmd.AddCommand(newWatchCommand(opts))

	return cmd
}

// loadConfig layers the flag overrides over the config file and the
// environment. Only flags the user actually set override file values.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Gemini.Model = opts.model
	}
	if opts.apiKey != "" {
		cfg.Gemini.APIKey = opts.apiKey
	}
	if flags.Changed("combine-images") {
		cfg.Analysis.CombineImages = opts.combineImages
	}
	if opts.noLabels {
		cfg.Analysis.AddLabels = false
	}
	if flags.Changed("format") {
		cfg.Analysis.Format = opts.format
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("poll-interval") {
		cfg.Gemini.PollIntervalSeconds = opts.pollInterval
	}
	if flags.Changed("poll-attempts") {
		cfg.Gemini.PollAttempts = opts.pollAttempts
	}

	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, opts *options, input, output string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// Both preconditions are checked before any deck or network work.
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input deck: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)

	service, err := ai.NewGemini(ctx, cfg, log)
	if err != nil {
		return err
	}

	a := analyzer.New(cfg, deck.New(), service, log)

	results, err := a.Analyze(ctx, input)
	if err != nil {
		log.Error(ctx, "Analysis failed: %v", err)
		return err
	}

	if err := writeReport(cfg, input, output, results); err != nil {
		return err
	}

	log.Info(ctx, "Report written to %s", output)
	return nil
}

func writeReport(cfg *config.Config, input, output string, results []analyzer.SlideResult) error {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = r.Narrative
	}

	if cfg.Analysis.Format == "docx" {
		title := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		return report.WriteDocx(output, title, blocks)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.WritePlain(f, blocks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
