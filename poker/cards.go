// Package poker provides the card primitives shared by the hand history
// parsers: single cards, two-card combos and bit-packed card sets.
package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Ranks, lowest first.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits in the conventional clubs -> diamonds -> hearts -> spades order.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Card is a single card encoded as one bit: suit*16 + rank.
type Card uint64

// Hand is a set of cards packed into a 64 bit mask, 16 bits per suit.
type Hand uint64

// NewCard creates a card from a rank (Two..Ace) and suit (Clubs..Spades).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*16 + uint(rank))
}

// Rank returns the card rank (Two=0 .. Ace=12).
func (c Card) Rank() uint8 {
	return uint8(bits.TrailingZeros64(uint64(c)) % 16)
}

// Suit returns the card suit (Clubs=0 .. Spades=3).
func (c Card) Suit() uint8 {
	return uint8(bits.TrailingZeros64(uint64(c)) / 16)
}

// IsValid reports whether c encodes exactly one real card.
func (c Card) IsValid() bool {
	if bits.OnesCount64(uint64(c)) != 1 {
		return false
	}
	return bits.TrailingZeros64(uint64(c))%16 < 13
}

func (c Card) String() string {
	if !c.IsValid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// MarshalText renders the card in its two character form.
func (c Card) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid card %#x", uint64(c))
	}
	return []byte(c.String()), nil
}

// ParseCard parses notation like "As", "Td" or "10h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) == 3 && s[:2] == "10" {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	rank, err := ParseRank(s[0])
	if err != nil {
		return 0, fmt.Errorf("invalid card %q: %w", s, err)
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid card %q: unknown suit %q", s, s[1])
	}
	return NewCard(rank, uint8(suit)), nil
}

// MustParseCard is ParseCard for literals known to be valid.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a whitespace separated card list such as "8h 4h Tc".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// ParseRank parses a single rank character.
func ParseRank(b byte) (uint8, error) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	idx := strings.IndexByte(rankChars, b)
	if idx < 0 {
		return 0, fmt.Errorf("unknown rank %q", b)
	}
	return uint8(idx), nil
}

// RankString returns the single character for a rank.
func RankString(rank uint8) string {
	if rank > Ace {
		return "?"
	}
	return rankChars[rank : rank+1]
}

// Compare orders cards by rank, then suit. It returns -1, 0 or +1.
func Compare(a, b Card) int {
	switch {
	case a.Rank() != b.Rank():
		if a.Rank() < b.Rank() {
			return -1
		}
		return 1
	case a.Suit() != b.Suit():
		if a.Suit() < b.Suit() {
			return -1
		}
		return 1
	}
	return 0
}

// RankDifference is the absolute distance between two ranks, aces high.
func RankDifference(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// NewHand builds a card set.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds c to the set.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether c is in the set.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the set.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13 bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*16)) & 0x1FFF
}

// GetRankMask returns the union of all suit masks.
func (h Hand) GetRankMask() uint16 {
	var mask uint16
	for suit := Clubs; suit <= Spades; suit++ {
		mask |= h.GetSuitMask(suit)
	}
	return mask
}
