package handhistory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Section is a state of the body parser. Sections only move forward.
type Section int

const (
	SectionSeating Section = iota
	SectionPreflop
	SectionFlop
	SectionTurn
	SectionRiver
	SectionShowdown
	SectionSummary
	SectionDone
)

func (s Section) String() string {
	switch s {
	case SectionSeating:
		return "seating"
	case SectionPreflop:
		return "preflop"
	case SectionFlop:
		return "flop"
	case SectionTurn:
		return "turn"
	case SectionRiver:
		return "river"
	case SectionShowdown:
		return "showdown"
	case SectionSummary:
		return "summary"
	case SectionDone:
		return "done"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// IsStreet reports whether the section is a betting round.
func (s Section) IsStreet() bool {
	return s >= SectionPreflop && s <= SectionRiver
}

// LineParser is the room specific half of the body state machine. The shared
// half, Builder, owns pot arithmetic, seating rules and invariants.
type LineParser interface {
	// Marker recognises section delimiter lines such as "*** FLOP *** [..]".
	Marker(line string) (Section, bool)
	// EnterSection handles a delimiter line, e.g. dealing board cards.
	EnterSection(b *Builder, next Section, line string) error
	// ParseLine handles any other line inside b.Section().
	ParseLine(b *Builder, line string) error
}

// RunBody drives p over lines[first:], the lines after the header, and
// returns the validated body. Errors carry 1-based positions within lines.
func RunBody(header Header, lines []string, first int, p LineParser) (Body, error) {
	b := NewBuilder(header)
	for i := first; i < len(lines); i++ {
		line := lines[i]
		var err error
		if next, ok := p.Marker(line); ok {
			err = p.EnterSection(b, next, line)
		} else {
			err = p.ParseLine(b, line)
		}
		if err != nil {
			return Body{}, atLine(err, b.Section(), i+1, line)
		}
	}
	return b.Build()
}

// SplitLines splits hand text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var amountReplacer = strings.NewReplacer(",", "", "$", "", "€", "", "£", "", "USD", "", "EUR", "", "GBP", "")

// ParseAmount parses a monetary amount such as "1,500", "$0.25" or "€10"
// into an exact decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountReplacer.Replace(s))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %q", s)
	}
	return d, nil
}

// CurrencyOf returns the currency implied by the symbol prefixing an amount,
// or CurrencyNone for chip amounts.
func CurrencyOf(amount string) Currency {
	amount = strings.TrimSpace(amount)
	for _, sym := range []string{"$", "€", "£"} {
		if strings.HasPrefix(amount, sym) {
			c, _ := currencies.Parse(sym)
			return c
		}
	}
	return CurrencyNone
}
