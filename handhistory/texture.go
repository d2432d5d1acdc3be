package handhistory

import (
	"math/bits"

	"github.com/lox/pokerhistory/poker"
)

// Wetness rates how coordinated a board is, from dry to very wet.
type Wetness int

const (
	Dry Wetness = iota
	SemiWet
	Wet
	VeryWet
)

func (w Wetness) String() string {
	switch w {
	case Dry:
		return "dry"
	case SemiWet:
		return "semi-wet"
	case Wet:
		return "wet"
	case VeryWet:
		return "very wet"
	default:
		return "unknown"
	}
}

// MarshalText renders the wetness by name.
func (w Wetness) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Texture holds the board-only texture predicates. They look at rank and suit
// spread only, never at hole cards.
type Texture struct {
	Rainbow      bool    `json:"rainbow"`
	Monotone     bool    `json:"monotone"`
	Triplet      bool    `json:"triplet"`
	Pair         bool    `json:"pair"`
	StraightDraw bool    `json:"straight_draw"`
	Gutshot      bool    `json:"gutshot"`
	FlushDraw    bool    `json:"flush_draw"`
	Wetness      Wetness `json:"wetness"`
}

// AnalyzeBoard computes the texture of a board. Boards of fewer than three
// cards have no texture.
func AnalyzeBoard(cards []poker.Card) Texture {
	if len(cards) < 3 {
		return Texture{}
	}
	board := poker.NewHand(cards...)

	var suitCounts [4]int
	maxSuit, suits := 0, 0
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		n := bits.OnesCount16(board.GetSuitMask(suit))
		suitCounts[suit] = n
		if n > 0 {
			suits++
		}
		if n > maxSuit {
			maxSuit = n
		}
	}

	var rankCounts [13]int
	for _, c := range cards {
		rankCounts[c.Rank()]++
	}
	maxRank, pairs := 0, 0
	for _, n := range rankCounts {
		if n > maxRank {
			maxRank = n
		}
		if n == 2 {
			pairs++
		}
	}

	t := Texture{
		Rainbow:   maxSuit == 1,
		Monotone:  suits == 1,
		Triplet:   maxRank >= 3,
		FlushDraw: maxSuit >= 2,
	}
	t.Pair = pairs > 0 && !t.Triplet

	// Pairwise rank gaps: 1..3 leaves room for an open ender, 1..4 for a gutshot.
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			diff := poker.RankDifference(cards[i].Rank(), cards[j].Rank())
			if diff >= 1 && diff <= 3 {
				t.StraightDraw = true
			}
			if diff >= 1 && diff <= 4 {
				t.Gutshot = true
			}
		}
	}

	t.Wetness = wetness(board, maxSuit, t.Monotone, pairs > 0 || t.Triplet)
	return t
}

func wetness(board poker.Hand, maxSuit int, monotone, paired bool) Wetness {
	var score int

	switch {
	case monotone, maxSuit >= 4:
		score += 4
	case maxSuit == 3:
		score += 3
	case maxSuit == 2:
		score++
	}

	switch connected := longestRun(board.GetRankMask()); {
	case connected >= 4:
		score += 4
	case connected == 3:
		score += 3
	case connected == 2:
		score++
	}

	if paired {
		score++
	}

	// T, J, Q, K, A
	if bits.OnesCount16(board.GetRankMask()&0x1F00) >= 3 {
		score++
	}

	switch {
	case score <= 0:
		return Dry
	case score <= 3:
		return SemiWet
	case score <= 5:
		return Wet
	default:
		return VeryWet
	}
}

// longestRun returns the longest sequence of consecutive ranks. The ace also
// plays low once at least two wheel cards (2-5) are present.
func longestRun(ranks uint16) int {
	// Shift everything up one bit so bit 0 can hold a low ace.
	mask := ranks << 1
	if ranks&(1<<poker.Ace) != 0 && bits.OnesCount16(ranks&0xF) >= 2 {
		mask |= 1
	}
	best, run := 0, 0
	for bit := 0; bit < 14; bit++ {
		if mask&(1<<bit) != 0 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
