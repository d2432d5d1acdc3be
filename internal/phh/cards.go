package phh

import (
	"strings"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/poker"
)

// holeCards renders a player's hole cards, "??" for each unseen card.
func holeCards(p handhistory.Player, count int) string {
	if p.Combo != nil && count == 2 {
		return p.Combo.String()
	}
	return strings.Repeat("??", count)
}

// boardCards renders cards without separators, e.g. "8h4hTc".
func boardCards(cards []poker.Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func holeCardCount(game handhistory.Game) int {
	switch game {
	case handhistory.Omaha, handhistory.OmahaHiLo:
		return 4
	default:
		return 2
	}
}
