package deck

// Reader opens a presentation file and yields its ordered slides with
// shape-level detail (text, pictures, geometry).
type Reader interface {
	Open(path string) (*Deck, error)
}
