package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/deckwise/deckbrief/internal/config"
	"github.com/deckwise/deckbrief/internal/logger"
)

type implGemini struct {
	client       *genai.Client
	model        string
	pollInterval time.Duration
	pollAttempts int
	logger       logger.Logger
}

// NewGemini creates the Gemini-backed Service. The client is constructed
// here, once, and handed to the orchestrator by the entry point.
func NewGemini(ctx context.Context, cfg *config.Config, log logger.Logger) (Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &implGemini{
		client:       client,
		model:        cfg.Gemini.Model,
		pollInterval: cfg.PollInterval(),
		pollAttempts: cfg.Gemini.PollAttempts,
		logger:       log,
	}, nil
}
