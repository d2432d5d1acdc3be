package poker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateCard is returned when a combo is built from the same card twice.
var ErrDuplicateCard = errors.New("combo cards must be distinct")

// Combo is an unordered pair of hole cards. The higher card is always stored
// first so two combos built from the same cards in either order are equal.
type Combo struct {
	first  Card
	second Card
}

// NewCombo builds a combo from two distinct cards.
func NewCombo(a, b Card) (Combo, error) {
	if !a.IsValid() || !b.IsValid() {
		return Combo{}, fmt.Errorf("invalid combo cards %s %s", a, b)
	}
	if a == b {
		return Combo{}, fmt.Errorf("%w: %s", ErrDuplicateCard, a)
	}
	if Compare(a, b) < 0 {
		a, b = b, a
	}
	return Combo{first: a, second: b}, nil
}

// ParseCombo parses "Ks9d", "Ks 9d" or "[9d Ks]".
func ParseCombo(s string) (Combo, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	s = strings.ReplaceAll(s, " ", "")
	if len(s) != 4 {
		return Combo{}, fmt.Errorf("invalid combo %q", s)
	}
	a, err := ParseCard(s[:2])
	if err != nil {
		return Combo{}, fmt.Errorf("invalid combo %q: %w", s, err)
	}
	b, err := ParseCard(s[2:])
	if err != nil {
		return Combo{}, fmt.Errorf("invalid combo %q: %w", s, err)
	}
	return NewCombo(a, b)
}

// MustParseCombo is ParseCombo for literals known to be valid.
func MustParseCombo(s string) Combo {
	c, err := ParseCombo(s)
	if err != nil {
		panic(err)
	}
	return c
}

// First returns the higher card.
func (c Combo) First() Card { return c.first }

// Second returns the lower card.
func (c Combo) Second() Card { return c.second }

// Cards returns both cards, higher first.
func (c Combo) Cards() [2]Card { return [2]Card{c.first, c.second} }

// IsZero reports whether c is the zero value rather than a parsed combo.
func (c Combo) IsZero() bool { return c.first == 0 && c.second == 0 }

func (c Combo) IsPair() bool { return c.first.Rank() == c.second.Rank() }

func (c Combo) IsSuited() bool { return c.first.Suit() == c.second.Suit() }

func (c Combo) String() string {
	return c.first.String() + c.second.String()
}

// Shorthand renders the combo without suits, e.g. "AKs", "K9o" or "TT".
func (c Combo) Shorthand() string {
	s := RankString(c.first.Rank()) + RankString(c.second.Rank())
	switch {
	case c.IsPair():
		return s
	case c.IsSuited():
		return s + "s"
	default:
		return s + "o"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Combo) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return nil, errors.New("empty combo")
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Combo) UnmarshalText(text []byte) error {
	parsed, err := ParseCombo(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
