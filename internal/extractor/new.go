package extractor

import "github.com/deckwise/deckbrief/internal/deck"

type implExtractor struct {
	pageWidth    deck.EMU
	pageHeight   deck.EMU
	withSnapshot bool
}

// New creates an Extractor for a deck with the given page geometry.
// withSnapshot=false skips full-page snapshot rendering; the rest of the
// extraction is identical, so both pipeline variants share this one path.
func New(pageWidth, pageHeight deck.EMU, withSnapshot bool) Extractor {
	return &implExtractor{
		pageWidth:    pageWidth,
		pageHeight:   pageHeight,
		withSnapshot: withSnapshot,
	}
}
