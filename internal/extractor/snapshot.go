package extractor

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/deckwise/deckbrief/internal/deck"
	"github.com/deckwise/deckbrief/pkg/raster"
)

// renderSnapshot composites the slide onto a white canvas sized to the
// deck's page geometry at 96 px/inch. Picture shapes are scaled into
// their declared boxes in document order, so later shapes paint over
// earlier ones. Text shapes are drawn at their declared top-left with a
// default face, black, no wrapping and no font-size fidelity. All other
// shape kinds (rectangles, lines, tables, ...) are not rendered.
func (e *implExtractor) renderSnapshot(slide deck.Slide, decoded []image.Image) (image.Image, error) {
	width := e.pageWidth.Pixels(DPI)
	height := e.pageHeight.Pixels(DPI)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("slide %d: page size %dx%d px", slide.Number, width, height)
	}

	canvas := raster.Canvas(width, height, color.White)

	for i, sh := range slide.Shapes {
		switch sh.Kind {
		case deck.KindPicture:
			boxW := sh.Box.Width.Pixels(DPI)
			boxH := sh.Box.Height.Pixels(DPI)
			if boxW <= 0 || boxH <= 0 {
				continue
			}
			scaled, err := raster.Scale(decoded[i], boxW, boxH)
			if err != nil {
				return nil, fmt.Errorf("slide %d shape %d: %w", slide.Number, i+1, err)
			}
			raster.Paste(canvas, scaled, sh.Box.Left.Pixels(DPI), sh.Box.Top.Pixels(DPI))
		case deck.KindText:
			drawText(canvas, sh.Text, sh.Box.Left.Pixels(DPI), sh.Box.Top.Pixels(DPI))
		}
	}

	return canvas, nil
}

// drawText paints text line by line starting at (x, y) in black with the
// fixed-size default face.
func drawText(dst *image.RGBA, text string, x, y int) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()

	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  image.Black,
			Face: face,
			Dot:  fixed.P(x, y+ascent+i*lineHeight),
		}
		d.DrawString(line)
	}
}
