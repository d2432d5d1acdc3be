// Package statistics aggregates parsed hands into archive level figures.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/poker"
)

// BigPotBB is the pot size, in big blinds, counted as a big pot.
const BigPotBB = 50

// HandResult represents what a single hand contributes
type HandResult struct {
	Room           string
	PotBB          float64              // Final pot in big blinds
	WentToShowdown bool                 // Did hand go to showdown?
	StreetReached  string               // Furthest street reached (preflop, flop, turn, river)
	Flop           *handhistory.Texture // nil when no flop was dealt
	Hero           bool                 // Hole cards were dealt to the archive owner
	HeroNetBB      float64              // Hero's net result in big blinds
	HeroCategory   poker.HoleCardCategory
}

// FromHand derives the result of one parsed hand.
func FromHand(hand handhistory.Hand) HandResult {
	r := HandResult{
		Room:           hand.Room,
		PotBB:          inBB(hand.TotalPot, hand),
		WentToShowdown: hand.ShowDown,
	}
	if streets := hand.Streets(); len(streets) > 0 {
		r.StreetReached = streets[len(streets)-1].Name
	}
	if hand.Flop != nil {
		tex := hand.Flop.Texture
		r.Flop = &tex
	}
	if hand.Hero != nil {
		r.Hero = true
		r.HeroNetBB = inBB(hand.Net(hand.Hero.Name), hand)
		r.HeroCategory = poker.CategoryUnknown
		if hand.Hero.Combo != nil {
			r.HeroCategory = hand.Hero.Combo.Category()
		}
	}
	return r
}

func inBB(a decimal.Decimal, hand handhistory.Hand) float64 {
	if !hand.BB.IsPositive() {
		return 0
	}
	return a.InexactFloat64() / hand.BB.InexactFloat64()
}

// Sample accumulates observations for mean and spread.
type Sample struct {
	N      int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
}

// Add records one observation.
func (s *Sample) Add(v float64) {
	s.N++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

func (s *Sample) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the median observation
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Max returns the largest observation
func (s *Sample) Max() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.sorted()[len(s.Values)-1]
}

// FlopStats counts board textures over every flop seen.
type FlopStats struct {
	Flops        int
	Rainbow      int
	Monotone     int
	Paired       int
	FlushDraw    int
	StraightDraw int
	Wetness      map[handhistory.Wetness]int
}

// Statistics tracks figures over a set of parsed hands
type Statistics struct {
	Hands     int
	Rooms     map[string]int
	Streets   map[string]int
	Showdowns int

	// Pot size analytics
	Pots    Sample // Final pots in big blinds
	BigPots int    // Pots >= BigPotBB

	// Hero analytics, only for hands with known hole cards
	Hero            Sample
	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without showdown
	ShowdownBB      float64 // BB from showdown (wins AND losses)
	NonShowdownBB   float64 // BB from fold equity (wins AND losses)
	AllBB           float64 // Total BB for sanity check
	HeroByCategory  map[poker.HoleCardCategory]*Sample

	Flops FlopStats
}

// New returns empty statistics.
func New() *Statistics {
	return &Statistics{
		Rooms:          make(map[string]int),
		Streets:        make(map[string]int),
		HeroByCategory: make(map[poker.HoleCardCategory]*Sample),
		Flops:          FlopStats{Wetness: make(map[handhistory.Wetness]int)},
	}
}

// AddHand is Add(FromHand(hand)).
func (s *Statistics) AddHand(hand handhistory.Hand) {
	s.Add(FromHand(hand))
}

// Add incorporates a hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	s.Hands++
	s.Rooms[result.Room]++
	if result.StreetReached != "" {
		s.Streets[result.StreetReached]++
	}
	if result.WentToShowdown {
		s.Showdowns++
	}

	s.Pots.Add(result.PotBB)
	if result.PotBB >= BigPotBB {
		s.BigPots++
	}

	if tex := result.Flop; tex != nil {
		s.Flops.Flops++
		s.Flops.Wetness[tex.Wetness]++
		if tex.Rainbow {
			s.Flops.Rainbow++
		}
		if tex.Monotone {
			s.Flops.Monotone++
		}
		if tex.Pair || tex.Triplet {
			s.Flops.Paired++
		}
		if tex.FlushDraw {
			s.Flops.FlushDraw++
		}
		if tex.StraightDraw {
			s.Flops.StraightDraw++
		}
	}

	if !result.Hero {
		return
	}
	netBB := result.HeroNetBB
	s.Hero.Add(netBB)

	category := result.HeroCategory
	if category == "" {
		category = poker.CategoryUnknown
	}
	if s.HeroByCategory[category] == nil {
		s.HeroByCategory[category] = &Sample{}
	}
	s.HeroByCategory[category].Add(netBB)

	// Track showdown vs non-showdown wins
	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}

	// Track ALL results (wins and losses) in appropriate buckets
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB
}

// ShowdownRate returns the share of hands that reached a showdown.
func (s *Statistics) ShowdownRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Showdowns) / float64(s.Hands)
}

// IsLedgerBalanced checks if the hero accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if s.Pots.N != s.Hands {
		return fmt.Errorf("pot samples (%d) do not match hands count (%d)", s.Pots.N, s.Hands)
	}

	if s.Hero.N > s.Hands {
		return fmt.Errorf("hero hands (%d) exceed total hands (%d)", s.Hero.N, s.Hands)
	}

	totalWins := s.ShowdownWins + s.NonShowdownWins
	if totalWins > s.Hero.N {
		return fmt.Errorf("total wins (%d) exceeds hero hands (%d)", totalWins, s.Hero.N)
	}

	roomHands := 0
	for _, n := range s.Rooms {
		roomHands += n
	}
	if roomHands != s.Hands {
		return fmt.Errorf("room hands total (%d) does not match total hands (%d)", roomHands, s.Hands)
	}

	wetness := 0
	for _, n := range s.Flops.Wetness {
		wetness += n
	}
	if wetness != s.Flops.Flops {
		return fmt.Errorf("wetness total (%d) does not match flops (%d)", wetness, s.Flops.Flops)
	}

	return nil
}
