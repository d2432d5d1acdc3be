package handhistory

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/lox/pokerhistory/poker"
)

// cardsDealt is the number of board cards each street adds.
var cardsDealt = map[Section]int{
	SectionFlop:  3,
	SectionTurn:  1,
	SectionRiver: 1,
}

// Builder accumulates the body of one hand while a room dialect walks its
// lines. It is the shared part of the body state machine: section order,
// seating rules, pot arithmetic, active players and final validation.
type Builder struct {
	header  Header
	section Section

	players    []Player
	maxPlayers int
	buttonSeat int
	hero       string
	posts      []PlayerAction
	dead       []PlayerAction

	active    map[string]bool
	committed map[string]decimal.Decimal
	pot       decimal.Decimal

	streets  map[Section]*Street
	street   *Street
	board    []poker.Card
	showDown bool
	showdown []PlayerAction
	winners  []string

	totalPot *decimal.Decimal
	extra    map[string]any
}

// NewBuilder starts a body in the seating section.
func NewBuilder(header Header) *Builder {
	return &Builder{
		header:    header,
		section:   SectionSeating,
		active:    make(map[string]bool),
		committed: make(map[string]decimal.Decimal),
		streets:   make(map[Section]*Street),
		extra:     make(map[string]any),
	}
}

// Header returns the header the body belongs to.
func (b *Builder) Header() Header { return b.header }

// Section returns the current state.
func (b *Builder) Section() Section { return b.section }

// Pot returns the running pot.
func (b *Builder) Pot() decimal.Decimal { return b.pot }

// Board returns the cards dealt so far.
func (b *Builder) Board() []poker.Card { return slices.Clone(b.board) }

// ActivePlayers returns the players who have not folded, in seat order.
func (b *Builder) ActivePlayers() []string {
	var names []string
	for _, p := range b.players {
		if b.active[p.Name] {
			names = append(names, p.Name)
		}
	}
	return names
}

func (b *Builder) fail(format string, args ...any) error {
	return BodyError(b.section, "", fmt.Errorf(format, args...))
}

// HasPlayer reports whether name is seated.
func (b *Builder) HasPlayer(name string) bool {
	return b.playerIndex(name) >= 0
}

func (b *Builder) playerIndex(name string) int {
	return slices.IndexFunc(b.players, func(p Player) bool { return p.Name == name })
}

// AddPlayer seats a player. Only valid while seating.
func (b *Builder) AddPlayer(name string, stack decimal.Decimal, seat int) error {
	switch {
	case b.section != SectionSeating:
		return b.fail("seat line for %s after seating", name)
	case name == "":
		return b.fail("empty player name in seat %d", seat)
	case seat < 1:
		return b.fail("invalid seat %d for %s", seat, name)
	case stack.IsNegative():
		return b.fail("negative stack for %s", name)
	case b.HasPlayer(name):
		return b.fail("player %s seated twice", name)
	}
	for _, p := range b.players {
		if p.Seat == seat {
			return b.fail("seat %d taken by both %s and %s", seat, p.Name, name)
		}
	}
	b.players = append(b.players, Player{Name: name, Stack: stack, Seat: seat})
	b.active[name] = true
	return nil
}

// SitOut marks a seated player as not dealt in.
func (b *Builder) SitOut(name string) error {
	if !b.HasPlayer(name) {
		return b.fail("unknown player %s sitting out", name)
	}
	if b.section > SectionSeating {
		return b.fail("%s sits out after the deal", name)
	}
	b.players[b.playerIndex(name)].SittingOut = true
	b.active[name] = false
	return nil
}

// SetMaxPlayers records the declared table size.
func (b *Builder) SetMaxPlayers(n int) error {
	if n < 2 {
		return b.fail("invalid table size %d", n)
	}
	b.maxPlayers = n
	return nil
}

// SetButton records the button seat. The seat is checked in Build.
func (b *Builder) SetButton(seat int) error {
	if seat < 1 {
		return b.fail("invalid button seat %d", seat)
	}
	b.buttonSeat = seat
	return nil
}

// SetHero marks name as the player whose hole cards the room dealt face up.
func (b *Builder) SetHero(name string, combo poker.Combo) error {
	if err := b.ShowCards(name, combo); err != nil {
		return err
	}
	b.hero = name
	return nil
}

// ShowCards attaches hole cards revealed later in the hand.
func (b *Builder) ShowCards(name string, combo poker.Combo) error {
	idx := b.playerIndex(name)
	if idx < 0 {
		return b.fail("cards shown for unknown player %s", name)
	}
	if existing := b.players[idx].Combo; existing != nil && *existing != combo {
		return b.fail("%s shows %s but holds %s", name, combo, *existing)
	}
	c := combo
	b.players[idx].Combo = &c
	return nil
}

// Post records a blind or ante. Live blinds count towards the player's
// preflop commitment, antes and dead blinds only feed the pot.
func (b *Builder) Post(name string, amount decimal.Decimal, live bool) error {
	if !b.HasPlayer(name) {
		return b.fail("post by unknown player %s", name)
	}
	if b.section > SectionPreflop {
		return b.fail("post by %s after preflop", name)
	}
	b.pot = b.pot.Add(amount)
	post := NewAmountAction(name, ActionPost, amount)
	if live {
		b.committed[name] = b.committed[name].Add(amount)
	} else {
		post.Dead = true
		b.dead = append(b.dead, post)
	}
	b.posts = append(b.posts, post)
	return nil
}

// Enter moves the state machine to next. Streets other than preflop must be
// entered through Deal. The delimiter line itself is not kept.
func (b *Builder) Enter(next Section) error {
	if next <= b.section {
		return b.fail("section %s cannot follow %s", next, b.section)
	}
	if next.IsStreet() && next != SectionPreflop {
		if next != b.section+1 {
			return b.fail("%s dealt without %s", next, next-1)
		}
	}
	if next > SectionSeating && b.section == SectionSeating && len(b.players) < 2 {
		return b.fail("hand needs at least two players, found %d", len(b.players))
	}
	if b.section < SectionPreflop && next > SectionPreflop {
		// Hands where everyone but one folded before the hole cards banner
		// still have a preflop round.
		b.openStreet(SectionPreflop)
	}

	b.closeStreet()
	b.section = next
	switch {
	case next == SectionShowdown:
		b.showDown = true
	case next.IsStreet():
		b.openStreet(next)
	}
	return nil
}

func (b *Builder) openStreet(s Section) {
	if s != SectionPreflop {
		clear(b.committed)
	}
	street := &Street{
		Section:   s,
		Name:      s.String(),
		StartPot:  b.pot,
		PotSource: PotSummed,
		Players:   b.ActivePlayers(),
	}
	b.street = street
	b.streets[s] = street
}

// closeStreet finishes the current street: pot, board snapshot, texture and
// player order.
func (b *Builder) closeStreet() {
	s := b.street
	if s == nil {
		return
	}
	s.Pot = b.pot
	s.Board = slices.Clone(b.board)
	s.Texture = AnalyzeBoard(s.Board)

	ordered := make([]string, 0, len(s.Players))
	for _, a := range s.Actions {
		if slices.Contains(s.Players, a.Name) && !slices.Contains(ordered, a.Name) {
			ordered = append(ordered, a.Name)
		}
	}
	for _, name := range s.Players {
		if !slices.Contains(ordered, name) {
			ordered = append(ordered, name)
		}
	}
	s.Players = ordered
	b.street = nil
}

// Deal enters a street and adds the cards it deals to the board.
func (b *Builder) Deal(next Section, cards ...poker.Card) error {
	want, ok := cardsDealt[next]
	if !ok {
		return b.fail("no cards are dealt on %s", next)
	}
	if len(cards) != want {
		return b.fail("%s deals %d cards, got %d", next, want, len(cards))
	}
	for _, c := range cards {
		if slices.Contains(b.board, c) {
			return b.fail("card %s dealt twice", c)
		}
	}
	if err := b.Enter(next); err != nil {
		return err
	}
	b.board = append(b.board, cards...)
	b.street.Cards = slices.Clone(cards)
	return nil
}

// StatePot records the pot the room states at the start of the current
// street. It must match the running sum.
func (b *Builder) StatePot(amount decimal.Decimal) error {
	if b.street == nil {
		return b.fail("pot stated outside a street")
	}
	if !amount.Equal(b.pot) {
		return b.fail("room states a pot of %s, players put in %s", amount, b.pot)
	}
	b.street.StartPot = amount
	b.street.PotSource = PotStated
	return nil
}

// Note records a line of the current street that carries no action, such as
// chat or connection notices.
func (b *Builder) Note(line string) {
	if b.street != nil {
		b.street.Lines = append(b.street.Lines, line)
	}
}

// Act applies one action to the current street. During the showdown only
// shows, mucks and wins are accepted.
func (b *Builder) Act(a PlayerAction, line string) error {
	if !b.HasPlayer(a.Name) {
		return b.fail("action by unknown player %s", a.Name)
	}
	if a.Action.HasAmount() && a.Amount == nil {
		return b.fail("%s by %s without amount", a.Action, a.Name)
	}
	if b.section == SectionShowdown {
		switch a.Action {
		case ActionShow, ActionMuck, ActionWin, ActionThink:
		default:
			return b.fail("%s by %s during showdown", a.Action, a.Name)
		}
		if a.Action == ActionWin {
			b.Winner(a.Name)
		}
		b.showdown = append(b.showdown, a)
		return nil
	}
	if b.street == nil {
		return b.fail("action %s outside a betting round", a.Action)
	}

	switch a.Action {
	case ActionBet, ActionCall, ActionPost:
		b.pot = b.pot.Add(*a.Amount)
		b.committed[a.Name] = b.committed[a.Name].Add(*a.Amount)
	case ActionRaise:
		delta := a.Amount.Sub(b.committed[a.Name])
		if !delta.IsPositive() {
			return b.fail("%s raises to %s but already committed %s", a.Name, a.Amount, b.committed[a.Name])
		}
		b.pot = b.pot.Add(delta)
		b.committed[a.Name] = *a.Amount
	case ActionReturn:
		if a.Amount.GreaterThan(b.pot) {
			return b.fail("%s returned to %s exceeds pot %s", a.Amount, a.Name, b.pot)
		}
		b.pot = b.pot.Sub(*a.Amount)
		b.committed[a.Name] = b.committed[a.Name].Sub(*a.Amount)
	case ActionFold:
		b.active[a.Name] = false
	case ActionWin:
		b.Winner(a.Name)
	}

	b.street.Actions = append(b.street.Actions, a)
	b.street.Lines = append(b.street.Lines, line)
	return nil
}

// Winner records a pot winner announced outside the street actions.
func (b *Builder) Winner(name string) {
	if !slices.Contains(b.winners, name) {
		b.winners = append(b.winners, name)
	}
}

// StateTotalPot records the total pot announced in the summary.
func (b *Builder) StateTotalPot(amount decimal.Decimal) {
	b.totalPot = &amount
}

// SetExtra stores room specific metadata.
func (b *Builder) SetExtra(key string, value any) {
	b.extra[key] = value
}

// Build validates the hand and returns its body.
func (b *Builder) Build() (Body, error) {
	b.closeStreet()
	if b.section < SectionPreflop {
		return Body{}, BodyError(b.section, "", errors.New("hand ended before the hole cards were dealt"))
	}
	b.section = SectionDone

	slices.SortFunc(b.players, func(x, y Player) int { return x.Seat - y.Seat })

	body := Body{
		Players:        b.players,
		MaxPlayers:     b.maxPlayers,
		Posts:          b.posts,
		DeadPosts:      b.dead,
		Preflop:        b.streets[SectionPreflop],
		Flop:           b.streets[SectionFlop],
		Turn:           b.streets[SectionTurn],
		River:          b.streets[SectionRiver],
		Board:          b.board,
		TotalPot:       b.pot,
		TotalPotSource: PotSummed,
		ShowDown:       b.showDown,
		Showdown:       b.showdown,
		Winners:        b.winners,
		Extra:          b.extra,
	}
	if b.totalPot != nil {
		if !b.totalPot.Equal(b.pot) {
			return Body{}, b.fail("total pot %s does not match the %s players put in", *b.totalPot, b.pot)
		}
		body.TotalPot = *b.totalPot
		body.TotalPotSource = PotStated
	}
	if body.MaxPlayers == 0 {
		body.MaxPlayers = b.players[len(b.players)-1].Seat
	}
	if body.Board == nil {
		body.Board = []poker.Card{}
	}

	for i := range body.Players {
		p := &body.Players[i]
		if p.Seat > body.MaxPlayers {
			return Body{}, b.fail("seat %d of %s outside a %d-max table", p.Seat, p.Name, body.MaxPlayers)
		}
		if p.Seat == b.buttonSeat {
			button := *p
			body.Button = &button
		}
		if p.Name == b.hero {
			hero := *p
			body.Hero = &hero
		}
	}
	if b.buttonSeat != 0 && body.Button == nil {
		return Body{}, b.fail("button seat %d is empty", b.buttonSeat)
	}
	if len(body.Winners) == 0 {
		return Body{}, b.fail("hand has no winner")
	}
	for _, w := range body.Winners {
		if !b.HasPlayer(w) {
			return Body{}, b.fail("winner %s is not seated", w)
		}
	}
	return body, nil
}
