// Package label assigns the stable identifiers used to cross-reference
// images between a submission and the returned narrative, and burns a
// visible identifier tag into a copy of each image.
package label

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/deckwise/deckbrief/pkg/raster"
)

// Tag geometry: the backdrop rectangle sits 10 px in from the top-left
// corner and wraps the text bounding box with a 10 px margin on every
// side, so the text itself lands at (20, 20).
const (
	tagInset   = 10
	tagPadding = 20
)

// ImageID is the identifier for the ordinal-th embedded picture of a
// slide. Both axes are 1-based.
func ImageID(slide, ordinal int) string {
	return fmt.Sprintf("IMG_%d_%d", slide, ordinal)
}

// SnapshotID is the identifier for a slide's full-page snapshot.
func SnapshotID(slide int) string {
	return fmt.Sprintf("snapshot_%d", slide)
}

// Labeler burns identifier tags into images. The enabled switch is global
// for a run; when off, Apply passes units through untouched.
type Labeler struct {
	enabled bool
	face    font.Face
}

// New creates a Labeler. Identifiers are short ASCII, so the fixed-size
// basicfont face is enough.
func New(enabled bool) Labeler {
	return Labeler{enabled: enabled, face: basicfont.Face7x13}
}

// Enabled reports whether tags are being burned in.
func (l Labeler) Enabled() bool {
	return l.enabled
}

// Apply returns a labeled copy of src. The input image is never written
// to: when disabled the same value comes straight back, and when enabled
// all drawing happens on a private copy.
func (l Labeler) Apply(src image.Image, id string) image.Image {
	if !l.enabled {
		return src
	}

	dst := raster.Clone(src)

	metrics := l.face.Metrics()
	textWidth := font.MeasureString(l.face, id).Ceil()
	textHeight := metrics.Height.Ceil()

	backdrop := image.Rect(
		tagInset,
		tagInset,
		tagInset+textWidth+tagPadding,
		tagInset+textHeight+tagPadding,
	)
	draw.Draw(dst, backdrop, image.NewUniform(color.NRGBA{A: 128}), image.Point{}, draw.Over)

	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: l.face,
		Dot: fixed.P(
			tagInset+tagPadding/2,
			tagInset+tagPadding/2+metrics.Ascent.Ceil(),
		),
	}
	drawer.DrawString(id)

	return dst
}
