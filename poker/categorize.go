package poker

// HoleCardCategory represents the strength category of hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// Category provides a simple preflop categorization of the combo.
// Categories: Premium (JJ+, AK), Strong (TT, AQ/AJ), Medium (77+, suited broadway),
// Weak (small pairs, suited connectors), Trash (everything else).
func (c Combo) Category() HoleCardCategory {
	if c.IsZero() {
		return CategoryUnknown
	}

	// First is never lower than second.
	big := rankToValue(c.first.Rank())
	small := rankToValue(c.second.Rank())
	suited := c.IsSuited()
	isPair := c.IsPair()

	switch {
	case isPair && small >= 11, small == 13 && big == 14:
		return CategoryPremium
	case isPair && small == 10, big == 14 && (small == 12 || small == 11):
		return CategoryStrong
	case isPair && small >= 7, suited && small >= 10:
		return CategoryMedium
	case isPair, suited && big-small <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}

// rankToValue converts our 0-12 rank system to 2-14 for categorization
func rankToValue(rank uint8) int {
	return int(rank) + 2
}
