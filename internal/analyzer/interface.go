package analyzer

import "context"

// SlideResult is one slide's narrative plus the identifiers that were
// submitted for it, in transmission order.
type SlideResult struct {
	Slide     int
	Narrative string
	Submitted []string
}

// Analyzer drives the whole per-slide pipeline for one deck file.
type Analyzer interface {
	Analyze(ctx context.Context, deckPath string) ([]SlideResult, error)
}
