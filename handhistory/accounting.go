package handhistory

import "github.com/shopspring/decimal"

// Contributions returns what each player put into the pot, net of returned
// bets. The amounts sum to the pot before rake.
func (b Body) Contributions() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	committed := make(map[string]decimal.Decimal)
	for _, p := range b.Posts {
		out[p.Name] = out[p.Name].Add(*p.Amount)
		if !b.IsDead(p) {
			committed[p.Name] = committed[p.Name].Add(*p.Amount)
		}
	}
	for _, s := range b.Streets() {
		if s.Section != SectionPreflop {
			clear(committed)
		}
		for _, a := range s.Actions {
			var delta decimal.Decimal
			switch a.Action {
			case ActionBet, ActionCall, ActionPost:
				delta = *a.Amount
			case ActionRaise:
				delta = a.Amount.Sub(committed[a.Name])
			case ActionReturn:
				delta = a.Amount.Neg()
			default:
				continue
			}
			committed[a.Name] = committed[a.Name].Add(delta)
			out[a.Name] = out[a.Name].Add(delta)
		}
	}
	return out
}

// Winnings returns the amounts announced as won. Rooms that only name a
// winner in the summary contribute nothing here.
func (b Body) Winnings() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	add := func(a PlayerAction) {
		if a.Action == ActionWin && a.Amount != nil {
			out[a.Name] = out[a.Name].Add(*a.Amount)
		}
	}
	for _, s := range b.Streets() {
		for _, a := range s.Actions {
			add(a)
		}
	}
	for _, a := range b.Showdown {
		add(a)
	}
	return out
}

// Net returns what name won minus what they put in.
func (b Body) Net(name string) decimal.Decimal {
	return b.Winnings()[name].Sub(b.Contributions()[name])
}

// IsDead reports whether a post is an ante or dead blind.
func (b Body) IsDead(p PlayerAction) bool {
	return p.Action == ActionPost && p.Dead
}
