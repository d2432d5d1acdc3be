package handhistory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lox/pokerhistory/poker"
)

// Header holds the fields available after header-only parsing.
type Header struct {
	Room            string           `json:"room"`
	Ident           string           `json:"ident"`
	TournamentIdent string           `json:"tournament_ident,omitempty"`
	TableName       string           `json:"table_name"`
	Date            time.Time        `json:"date"`
	Game            Game             `json:"game"`
	GameType        GameType         `json:"game_type"`
	Limit           Limit            `json:"limit"`
	SB              decimal.Decimal  `json:"sb"`
	BB              decimal.Decimal  `json:"bb"`
	BuyIn           *decimal.Decimal `json:"buyin"`
	Rake            *decimal.Decimal `json:"rake"`
	Currency        Currency         `json:"currency,omitempty"`
	TournamentLevel *string          `json:"tournament_level"`
}

// Player is one seated player. Combo is nil unless the hole cards were seen.
type Player struct {
	Name       string          `json:"name"`
	Stack      decimal.Decimal `json:"stack"`
	Seat       int             `json:"seat"`
	Combo      *poker.Combo    `json:"combo,omitempty"`
	SittingOut bool            `json:"sitting_out,omitempty"`
}

func (p Player) String() string {
	if p.Combo != nil {
		return fmt.Sprintf("Seat %d: %s (%s) [%s]", p.Seat, p.Name, p.Stack, p.Combo)
	}
	return fmt.Sprintf("Seat %d: %s (%s)", p.Seat, p.Name, p.Stack)
}

// PlayerAction is one derived action. Amount is nil for actions without one.
// Dead marks antes and dead blinds, posts that are not a live bet.
type PlayerAction struct {
	Name   string           `json:"name"`
	Action Action           `json:"action"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Dead   bool             `json:"dead,omitempty"`
}

// NewAction builds an action without an amount.
func NewAction(name string, action Action) PlayerAction {
	return PlayerAction{Name: name, Action: action}
}

// NewAmountAction builds an action carrying an amount.
func NewAmountAction(name string, action Action, amount decimal.Decimal) PlayerAction {
	return PlayerAction{Name: name, Action: action, Amount: &amount}
}

func (a PlayerAction) String() string {
	if a.Amount != nil {
		return fmt.Sprintf("%s %s %s", a.Name, a.Action, a.Amount)
	}
	return fmt.Sprintf("%s %s", a.Name, a.Action)
}

// PotSource records how a street's starting pot was obtained.
type PotSource string

const (
	PotSummed PotSource = "summed"
	PotStated PotSource = "stated"
)

// Street is the parsed view of one betting round.
type Street struct {
	Section Section        `json:"-"`
	Name    string         `json:"name"`
	Cards   []poker.Card   `json:"cards,omitempty"` // dealt on this street
	Board   []poker.Card   `json:"board,omitempty"` // everything visible on this street
	Lines   []string       `json:"lines"`
	Actions []PlayerAction `json:"actions"`
	// StartPot is the pot entering the street, Pot the pot after it.
	StartPot  decimal.Decimal `json:"start_pot"`
	Pot       decimal.Decimal `json:"pot"`
	PotSource PotSource       `json:"pot_source"`
	// Players still in the hand entering the street, in order of first action.
	Players []string `json:"players"`
	Texture Texture  `json:"texture"`
}

func (s *Street) IsRainbow() bool       { return s.Texture.Rainbow }
func (s *Street) IsMonotone() bool      { return s.Texture.Monotone }
func (s *Street) IsTriplet() bool       { return s.Texture.Triplet }
func (s *Street) HasPair() bool         { return s.Texture.Pair }
func (s *Street) HasStraightDraw() bool { return s.Texture.StraightDraw }
func (s *Street) HasGutshot() bool      { return s.Texture.Gutshot }
func (s *Street) HasFlushDraw() bool    { return s.Texture.FlushDraw }
func (s *Street) IsDry() bool           { return len(s.Board) >= 3 && s.Texture.Wetness == Dry }

// Body holds the fields available after full parsing.
type Body struct {
	Players    []Player       `json:"players"`
	Button     *Player        `json:"button"`
	MaxPlayers int            `json:"max_players"`
	Hero       *Player        `json:"hero,omitempty"`
	Posts      []PlayerAction `json:"posts"`
	// DeadPosts are the antes and dead blinds among Posts.
	DeadPosts []PlayerAction `json:"dead_posts,omitempty"`
	Preflop   *Street        `json:"preflop"`
	// Flop, Turn and River are nil when the hand ended before them.
	Flop           *Street         `json:"flop"`
	Turn           *Street         `json:"turn"`
	River          *Street         `json:"river"`
	Board          []poker.Card    `json:"board"`
	TotalPot       decimal.Decimal `json:"total_pot"`
	TotalPotSource PotSource       `json:"total_pot_source"`
	ShowDown       bool            `json:"show_down"`
	Showdown       []PlayerAction  `json:"showdown,omitempty"`
	Winners        []string        `json:"winners"`
	Extra          map[string]any  `json:"extra"`
}

// PreflopActions returns the raw preflop action lines.
func (b Body) PreflopActions() []string { return streetLines(b.Preflop) }

// FlopActions returns the raw flop lines, nil when no flop was dealt.
func (b Body) FlopActions() []string { return streetLines(b.Flop) }

// TurnActions returns the raw turn lines, nil when no turn was dealt.
func (b Body) TurnActions() []string { return streetLines(b.Turn) }

// RiverActions returns the raw river lines, nil when no river was dealt.
func (b Body) RiverActions() []string { return streetLines(b.River) }

// Streets returns the streets that were played, in order.
func (b Body) Streets() []*Street {
	var out []*Street
	for _, s := range []*Street{b.Preflop, b.Flop, b.Turn, b.River} {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Player looks a player up by name.
func (b Body) Player(name string) (Player, bool) {
	for _, p := range b.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

func streetLines(s *Street) []string {
	if s == nil {
		return nil
	}
	return s.Lines
}

// Hand is a fully parsed hand.
type Hand struct {
	Header
	Body
}
