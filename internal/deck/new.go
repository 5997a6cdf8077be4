package deck

// New creates a Reader for OOXML presentation files (.pptx and friends).
func New() Reader {
	return &implReader{}
}
