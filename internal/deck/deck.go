package deck

// EMU is the English Metric Unit used by OOXML for all slide geometry.
// There are 914400 EMU per inch.
type EMU int64

const emuPerInch = 914400

// Inches converts to inches.
func (e EMU) Inches() float64 {
	return float64(e) / emuPerInch
}

// Pixels converts to pixels at the given density, truncating toward zero.
func (e EMU) Pixels(dpi int) int {
	return int(int64(e) * int64(dpi) / emuPerInch)
}

// ShapeKind classifies the slide shapes the pipeline cares about. Anything
// that is neither text-bearing nor a picture is KindOther and is skipped by
// both extraction and snapshot rendering.
type ShapeKind int

const (
	KindOther ShapeKind = iota
	KindText
	KindPicture
)

// Box is a shape's declared position and size on the slide.
type Box struct {
	Left   EMU
	Top    EMU
	Width  EMU
	Height EMU
}

// Shape is one positioned element of a slide, in native document order.
type Shape struct {
	Kind ShapeKind

	// Text is set for KindText shapes: paragraph texts joined by newlines.
	// It may be empty for a text shape with no content.
	Text string

	// Picture holds the raw embedded bytes for KindPicture shapes, exactly
	// as stored in the deck's media part.
	Picture []byte

	Box Box
}

// Slide is an ordered sequence of shapes. Number is the 1-based position of
// the slide in the deck.
type Slide struct {
	Number int
	Shapes []Shape
}

// Deck is a fully read presentation: page geometry plus ordered slides.
// It is immutable once returned by a Reader.
type Deck struct {
	PageWidth  EMU
	PageHeight EMU
	Slides     []Slide
}
