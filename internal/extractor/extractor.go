// Package extractor derives the per-slide content units (text, ordered
// image units, full-page snapshot) that the rest of the pipeline labels,
// packages and submits.
package extractor

import (
	"fmt"
	"image"
	"strings"

	"github.com/deckwise/deckbrief/internal/deck"
	"github.com/deckwise/deckbrief/internal/label"
	"github.com/deckwise/deckbrief/pkg/raster"
)

// DPI is the fixed density used to convert the deck's physical units to
// pixels, for both snapshot rendering and shape placement.
const DPI = 96

// ImageUnit is one embedded picture of a slide. Ordinal is the 1-based
// position among the slide's pictures in document order; the identifier
// is fully determined by (Slide, Ordinal).
type ImageUnit struct {
	Image   image.Image
	Slide   int
	Ordinal int
	ID      string
}

// Snapshot is the rendered full-page image of a slide.
type Snapshot struct {
	Image image.Image
	Slide int
	ID    string
}

// SlideContent is everything extracted from one slide. It is immutable
// once returned; the labeler works on copies. Snapshot is nil when the
// extractor was created without snapshot rendering.
type SlideContent struct {
	Slide    int
	Text     string
	Images   []ImageUnit
	Snapshot *Snapshot
}

func (e *implExtractor) Extract(slide deck.Slide) (SlideContent, error) {
	content := SlideContent{Slide: slide.Number}

	var sb strings.Builder
	ordinal := 0
	decoded := make([]image.Image, len(slide.Shapes))

	for i, sh := range slide.Shapes {
		switch sh.Kind {
		case deck.KindText:
			sb.WriteString(sh.Text)
			sb.WriteString("\n")
		case deck.KindPicture:
			img, err := raster.Decode(sh.Picture)
			if err != nil {
				return SlideContent{}, fmt.Errorf("slide %d shape %d: %w", slide.Number, i+1, err)
			}
			decoded[i] = img
			ordinal++
			content.Images = append(content.Images, ImageUnit{
				Image:   img,
				Slide:   slide.Number,
				Ordinal: ordinal,
				ID:      label.ImageID(slide.Number, ordinal),
			})
		}
	}
	content.Text = strings.TrimSpace(sb.String())

	if e.withSnapshot {
		snap, err := e.renderSnapshot(slide, decoded)
		if err != nil {
			return SlideContent{}, err
		}
		content.Snapshot = &Snapshot{
			Image: snap,
			Slide: slide.Number,
			ID:    label.SnapshotID(slide.Number),
		}
	}

	return content, nil
}
