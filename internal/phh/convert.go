package phh

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/lox/pokerhistory/handhistory"
)

// FromHand converts a parsed hand. Players are ordered from the seat after
// the button, so p1 is the small blind whenever blinds were posted normally.
// Antes and dead blinds both become antes.
func FromHand(hand handhistory.Hand) (*HandHistory, error) {
	variant, err := Variant(hand.Game, hand.Limit)
	if err != nil {
		return nil, err
	}

	players := positionOrder(hand.Body)
	index := make(map[string]int, len(players))
	for i, p := range players {
		index[p.Name] = i
	}

	out := &HandHistory{
		Variant:           variant,
		Venue:             hand.Room,
		Table:             hand.TableName,
		SeatCount:         hand.MaxPlayers,
		Seats:             make([]int, len(players)),
		Antes:             make([]Amount, len(players)),
		BlindsOrStraddles: make([]Amount, len(players)),
		MinBet:            amount(hand.BB),
		StartingStacks:    make([]Amount, len(players)),
		Winnings:          make([]Amount, len(players)),
		Players:           make([]string, len(players)),
		HandID:            hand.Ident,
		Tournament:        hand.TournamentIdent,
		Currency:          string(hand.Currency),
		TotalPot:          amount(hand.TotalPot),
		Time:              hand.Date.Format("15:04:05"),
		TimeZone:          hand.Date.Location().String(),
		TimeZoneAbbrev:    hand.Date.Format("MST"),
		Day:               hand.Date.Day(),
		Month:             int(hand.Date.Month()),
		Year:              hand.Date.Year(),
		Timestamp:         hand.Date,
	}
	if hand.TournamentLevel != nil {
		out.Level = *hand.TournamentLevel
	}
	for i, p := range players {
		out.Seats[i] = p.Seat
		out.Players[i] = p.Name
		out.StartingStacks[i] = amount(p.Stack)
	}

	committed := make(map[string]decimal.Decimal)
	for _, post := range hand.Posts {
		i, ok := index[post.Name]
		if !ok {
			continue
		}
		if hand.IsDead(post) {
			out.Antes[i] = amount(out.Antes[i].Add(*post.Amount))
			continue
		}
		out.BlindsOrStraddles[i] = amount(out.BlindsOrStraddles[i].Add(*post.Amount))
		committed[post.Name] = committed[post.Name].Add(*post.Amount)
	}

	cards := holeCardCount(hand.Game)
	for i, p := range players {
		out.Actions = append(out.Actions, fmt.Sprintf("d dh p%d %s", i+1, holeCards(p, cards)))
	}

	for _, street := range hand.Streets() {
		if street.Section != handhistory.SectionPreflop {
			out.Actions = append(out.Actions, "d db "+boardCards(street.Cards))
			clear(committed)
		}
		for _, a := range street.Actions {
			i, ok := index[a.Name]
			if !ok {
				continue
			}
			switch a.Action {
			case handhistory.ActionBet, handhistory.ActionCall:
				committed[a.Name] = committed[a.Name].Add(*a.Amount)
			case handhistory.ActionRaise:
				committed[a.Name] = *a.Amount
			case handhistory.ActionReturn:
				committed[a.Name] = committed[a.Name].Sub(*a.Amount)
			case handhistory.ActionShow:
				out.Actions = append(out.Actions, fmt.Sprintf("p%d sm %s", i+1, holeCards(players[i], cards)))
				continue
			}
			if s, ok := FormatAction(i+1, a, committed[a.Name]); ok {
				out.Actions = append(out.Actions, s)
			}
		}
	}

	for _, a := range hand.Showdown {
		if i, ok := index[a.Name]; ok && a.Action == handhistory.ActionShow {
			out.Actions = append(out.Actions, fmt.Sprintf("p%d sm %s", i+1, holeCards(players[i], cards)))
		}
	}
	for name, won := range hand.Winnings() {
		if i, ok := index[name]; ok {
			out.Winnings[i] = amount(won)
		}
	}
	for _, c := range hand.Board {
		out.Board = append(out.Board, c.String())
	}
	return out, nil
}

// positionOrder returns the dealt-in players starting left of the button.
func positionOrder(body handhistory.Body) []handhistory.Player {
	players := slices.DeleteFunc(slices.Clone(body.Players), func(p handhistory.Player) bool { return p.SittingOut })
	slices.SortFunc(players, func(a, b handhistory.Player) int { return a.Seat - b.Seat })
	if body.Button == nil {
		return players
	}
	split := slices.IndexFunc(players, func(p handhistory.Player) bool { return p.Seat > body.Button.Seat })
	if split < 0 {
		return players
	}
	return append(players[split:], players[:split]...)
}
