package analyzer

import (
	"github.com/deckwise/deckbrief/internal/ai"
	"github.com/deckwise/deckbrief/internal/config"
	"github.com/deckwise/deckbrief/internal/deck"
	"github.com/deckwise/deckbrief/internal/logger"
)

type implAnalyzer struct {
	cfg     *config.Config
	reader  deck.Reader
	service ai.Service
	logger  logger.Logger
}

// New creates an Analyzer. The service instance is constructed by the
// entry point and passed in; the analyzer holds no ambient state.
func New(cfg *config.Config, reader deck.Reader, service ai.Service, log logger.Logger) Analyzer {
	return &implAnalyzer{
		cfg:     cfg,
		reader:  reader,
		service: service,
		logger:  log,
	}
}
