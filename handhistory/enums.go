package handhistory

import (
	"strings"
)

// Game is the poker variant.
type Game string

const (
	Holdem    Game = "HOLDEM"
	Omaha     Game = "OMAHA"
	OmahaHiLo Game = "OHILO"
	Razz      Game = "RAZZ"
	Stud      Game = "STUD"
)

// Limit is the betting structure.
type Limit string

const (
	NoLimit    Limit = "NL"
	PotLimit   Limit = "PL"
	FixedLimit Limit = "FL"
)

// GameType distinguishes ring games from tournaments.
type GameType string

const (
	Cash       GameType = "CASH"
	Tournament GameType = "TOUR"
	SitAndGo   GameType = "SNG"
)

// Currency of the stakes. CurrencyNone means the amounts are tournament chips.
type Currency string

const (
	CurrencyNone Currency = ""
	USD          Currency = "USD"
	EUR          Currency = "EUR"
	GBP          Currency = "GBP"
	StarsCoin    Currency = "SC"
)

// IsSet reports whether c names a real currency.
func (c Currency) IsSet() bool { return c != CurrencyNone }

// Action is the kind of a player action.
type Action string

const (
	ActionCheck  Action = "CHECK"
	ActionBet    Action = "BET"
	ActionRaise  Action = "RAISE"
	ActionCall   Action = "CALL"
	ActionFold   Action = "FOLD"
	ActionReturn Action = "RETURN"
	ActionMuck   Action = "MUCK"
	ActionShow   Action = "SHOW"
	ActionWin    Action = "WIN"
	ActionThink  Action = "THINK"
	ActionPost   Action = "POST"
)

// HasAmount reports whether actions of this kind carry an amount.
func (a Action) HasAmount() bool {
	switch a {
	case ActionBet, ActionRaise, ActionCall, ActionReturn, ActionWin, ActionPost:
		return true
	}
	return false
}

// Vocabulary maps room specific text tokens onto a closed set of values.
// Lookups are case-insensitive and ignore surrounding whitespace.
type Vocabulary[T ~string] struct {
	name   string
	tokens map[string]T
}

// NewVocabulary builds a vocabulary. name is used in error messages.
func NewVocabulary[T ~string](name string, tokens map[string]T) Vocabulary[T] {
	normalized := make(map[string]T, len(tokens))
	for k, v := range tokens {
		normalized[normalizeToken(k)] = v
	}
	return Vocabulary[T]{name: name, tokens: normalized}
}

// Parse returns the value for token or a KindVocabulary ParseError.
func (v Vocabulary[T]) Parse(token string) (T, error) {
	if value, ok := v.tokens[normalizeToken(token)]; ok {
		return value, nil
	}
	var zero T
	return zero, VocabularyError(v.name, token)
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Canonical vocabularies accept the enum values themselves plus the
// spellings common to every room. Room dialects define their own on top.
var (
	games = NewVocabulary("game", map[string]Game{
		"HOLDEM": Holdem, "Hold'em": Holdem, "Holdem": Holdem, "Texas Hold'em": Holdem,
		"OMAHA": Omaha, "Omaha": Omaha, "Omaha Hi": Omaha,
		"OHILO": OmahaHiLo, "Omaha Hi/Lo": OmahaHiLo, "Omaha H/L": OmahaHiLo, "Omaha Hi-Lo": OmahaHiLo,
		"RAZZ": Razz,
		"STUD": Stud, "7 Card Stud": Stud, "Stud Hi": Stud,
	})
	limits = NewVocabulary("limit", map[string]Limit{
		"NL": NoLimit, "No Limit": NoLimit,
		"PL": PotLimit, "Pot Limit": PotLimit,
		"FL": FixedLimit, "Limit": FixedLimit, "Fixed Limit": FixedLimit, "Fix Limit": FixedLimit,
	})
	gameTypes = NewVocabulary("game type", map[string]GameType{
		"CASH": Cash, "Ring": Cash,
		"TOUR": Tournament, "Tournament": Tournament,
		"SNG": SitAndGo, "Sit & Go": SitAndGo, "Sit and Go": SitAndGo,
	})
	currencies = NewVocabulary("currency", map[string]Currency{
		"USD": USD, "$": USD,
		"EUR": EUR, "€": EUR,
		"GBP": GBP, "£": GBP,
		"SC": StarsCoin, "StarsCoin": StarsCoin,
	})
	actions = NewVocabulary("action", map[string]Action{
		"CHECK": ActionCheck, "checks": ActionCheck,
		"BET": ActionBet, "bets": ActionBet,
		"RAISE": ActionRaise, "raises": ActionRaise,
		"CALL": ActionCall, "calls": ActionCall,
		"FOLD": ActionFold, "folds": ActionFold,
		"RETURN": ActionReturn,
		"MUCK": ActionMuck, "mucks": ActionMuck, "mucks hand": ActionMuck,
		"SHOW": ActionShow, "shows": ActionShow,
		"WIN": ActionWin, "wins": ActionWin, "collected": ActionWin,
		"THINK": ActionThink,
		"POST": ActionPost, "posts": ActionPost,
	})
)

func ParseGame(token string) (Game, error)         { return games.Parse(token) }
func ParseLimit(token string) (Limit, error)       { return limits.Parse(token) }
func ParseGameType(token string) (GameType, error) { return gameTypes.Parse(token) }
func ParseCurrency(token string) (Currency, error) { return currencies.Parse(token) }
func ParseAction(token string) (Action, error)     { return actions.Parse(token) }
