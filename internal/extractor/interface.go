package extractor

import "github.com/deckwise/deckbrief/internal/deck"

// Extractor turns one slide into the units the pipeline submits: the
// concatenated visible text, the embedded pictures in shape order, and
// (optionally) a rendered full-page snapshot.
type Extractor interface {
	Extract(slide deck.Slide) (SlideContent, error)
}
