package handhistory

import (
	"testing"

	"github.com/lox/pokerhistory/poker"
)

func mustCards(t *testing.T, s string) []poker.Card {
	t.Helper()
	cards, err := poker.ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", s, err)
	}
	return cards
}

func TestAnalyzeBoard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		board string
		want  Texture
	}{
		{"8h 4h Tc", Texture{StraightDraw: true, Gutshot: true, FlushDraw: true, Wetness: SemiWet}},
		{"6s 9c 3d", Texture{Rainbow: true, StraightDraw: true, Gutshot: true, Wetness: Dry}},
		{"As 7h 2c", Texture{Rainbow: true, Wetness: Dry}},
		{"Kh Qh 7c", Texture{StraightDraw: true, Gutshot: true, FlushDraw: true, Wetness: SemiWet}},
		{"9h 8h 7s", Texture{StraightDraw: true, Gutshot: true, FlushDraw: true, Wetness: Wet}},
		{"Th 9h 8h", Texture{Monotone: true, StraightDraw: true, Gutshot: true, FlushDraw: true, Wetness: VeryWet}},
		{"As Ah 7c", Texture{Rainbow: true, Pair: true, Wetness: SemiWet}},
		{"7s 7h 7c", Texture{Rainbow: true, Triplet: true, Wetness: SemiWet}},
		{"Qs 7d 2c", Texture{Rainbow: true, Wetness: Dry}},
		{"Js 7d 2c", Texture{Rainbow: true, Gutshot: true, Wetness: Dry}},
		{"Kd 7h 2h Js", Texture{StraightDraw: true, Gutshot: true, FlushDraw: true, Wetness: SemiWet}},
		{"Ah 2c 3d", Texture{Rainbow: true, StraightDraw: true, Gutshot: true, Wetness: SemiWet}},
		{"Ah Kd", Texture{}},
	}
	for _, tt := range tests {
		t.Run(tt.board, func(t *testing.T) {
			t.Parallel()
			if got := AnalyzeBoard(mustCards(t, tt.board)); got != tt.want {
				t.Errorf("AnalyzeBoard(%s) = %+v, want %+v", tt.board, got, tt.want)
			}
		})
	}
}

// Every flop must keep the predicates mutually consistent.
func TestTextureConsistency(t *testing.T) {
	t.Parallel()
	var deck []poker.Card
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			deck = append(deck, poker.NewCard(rank, suit))
		}
	}
	for i := 0; i < len(deck); i++ {
		for j := i + 1; j < len(deck); j++ {
			for k := j + 1; k < len(deck); k++ {
				flop := []poker.Card{deck[i], deck[j], deck[k]}
				tex := AnalyzeBoard(flop)
				switch {
				case tex.Rainbow == tex.FlushDraw:
					t.Fatalf("%v: a flop is either rainbow or has a flush draw", flop)
				case tex.Monotone && !tex.FlushDraw:
					t.Fatalf("%v: monotone board without flush draw", flop)
				case tex.Triplet && tex.Pair:
					t.Fatalf("%v: triplet reported as pair", flop)
				case tex.StraightDraw && !tex.Gutshot:
					t.Fatalf("%v: straight draw without gutshot", flop)
				}
			}
		}
	}
}

func TestStreetPredicates(t *testing.T) {
	t.Parallel()
	board := mustCards(t, "6s 9c 3d")
	s := &Street{Board: board, Texture: AnalyzeBoard(board)}
	if !s.IsRainbow() || s.IsMonotone() || s.HasFlushDraw() || !s.HasStraightDraw() || !s.HasGutshot() || !s.IsDry() {
		t.Errorf("unexpected predicates for %v: %+v", board, s.Texture)
	}
	if (&Street{}).IsDry() {
		t.Error("empty board should not be dry")
	}
}

func TestWetnessText(t *testing.T) {
	t.Parallel()
	text, err := VeryWet.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != VeryWet.String() {
		t.Errorf("MarshalText = %q, want %q", text, VeryWet.String())
	}
}
