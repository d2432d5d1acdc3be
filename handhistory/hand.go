// Package handhistory turns the text of one poker hand history into a
// validated, read-only hand model.
//
// Parsing is split in two phases so large archives can be filtered on header
// fields without scanning every body:
//
//	hh := handhistory.New(fulltilt.Dialect{}, text)
//	if err := hh.ParseHeader(); err != nil { ... }
//	header, _ := hh.Header()
//	if err := hh.Parse(); err != nil { ... }
//	hand, _ := hh.Hand()
//
// Each poker room's text format is a Dialect. The package holds no mutable
// package level state, so hands can be parsed concurrently.
package handhistory

import "fmt"

// Dialect is the parsing contract one poker room's text format implements.
type Dialect interface {
	// Room names the poker room, e.g. "Full Tilt Poker".
	Room() string
	// Detect reports whether text looks like a hand from this room.
	Detect(text string) bool
	// ParseHeader extracts the header fields from the first lines only.
	ParseHeader(text string) (Header, error)
	// ParseBody parses the rest of a hand whose header is already known.
	ParseBody(text string, header Header) (Body, error)
}

// Phase is how far a HandHistory has been parsed.
type Phase int

const (
	Unparsed Phase = iota
	HeaderParsed
	FullyParsed
)

func (p Phase) String() string {
	switch p {
	case Unparsed:
		return "unparsed"
	case HeaderParsed:
		return "header parsed"
	case FullyParsed:
		return "fully parsed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// HandHistory is one hand's raw text plus whatever has been parsed from it.
// A failed parse leaves the previous phase untouched.
type HandHistory struct {
	text    string
	dialect Dialect
	phase   Phase
	header  Header
	body    Body
}

// New wraps the raw text of a single hand.
func New(dialect Dialect, text string) *HandHistory {
	return &HandHistory{text: text, dialect: dialect}
}

// Text returns the raw hand text.
func (h *HandHistory) Text() string { return h.text }

// Dialect returns the room dialect used for parsing.
func (h *HandHistory) Dialect() Dialect { return h.dialect }

// Phase returns the parsing progress.
func (h *HandHistory) Phase() Phase { return h.phase }

// ParseHeader parses only the header. Calling it again is a no-op.
func (h *HandHistory) ParseHeader() error {
	if h.phase >= HeaderParsed {
		return nil
	}
	header, err := h.dialect.ParseHeader(h.text)
	if err != nil {
		return err
	}
	h.header = header
	h.phase = HeaderParsed
	return nil
}

// Parse parses the header, if not done yet, and the body.
func (h *HandHistory) Parse() error {
	if h.phase == FullyParsed {
		return nil
	}
	if err := h.ParseHeader(); err != nil {
		return err
	}
	body, err := h.dialect.ParseBody(h.text, h.header)
	if err != nil {
		return err
	}
	h.body = body
	h.phase = FullyParsed
	return nil
}

// Header returns the header fields, or ErrNotParsed before ParseHeader.
func (h *HandHistory) Header() (Header, error) {
	if h.phase < HeaderParsed {
		return Header{}, fmt.Errorf("header of %s hand: %w", h.dialect.Room(), ErrNotParsed)
	}
	return h.header, nil
}

// Body returns the body fields, or ErrNotParsed before Parse.
func (h *HandHistory) Body() (Body, error) {
	if h.phase < FullyParsed {
		return Body{}, fmt.Errorf("body of %s hand %s: %w", h.dialect.Room(), h.header.Ident, ErrNotParsed)
	}
	return h.body, nil
}

// Hand returns the complete hand, or ErrNotParsed before Parse.
func (h *HandHistory) Hand() (Hand, error) {
	body, err := h.Body()
	if err != nil {
		return Hand{}, err
	}
	return Hand{Header: h.header, Body: body}, nil
}

// ParseHeader parses the header of text with dialect d.
func ParseHeader(d Dialect, text string) (Header, error) {
	hh := New(d, text)
	if err := hh.ParseHeader(); err != nil {
		return Header{}, err
	}
	return hh.header, nil
}

// Parse fully parses text with dialect d.
func Parse(d Dialect, text string) (Hand, error) {
	hh := New(d, text)
	if err := hh.Parse(); err != nil {
		return Hand{}, err
	}
	return hh.Hand()
}
