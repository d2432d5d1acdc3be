// Package fulltilt parses Full Tilt Poker hand histories.
package fulltilt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/pokerhistory/handhistory"
)

const room = "Full Tilt Poker"

// Full Tilt Poker Game #33286946295: MiniFTOPS Main Event (255707037), Table 179 - 10/20 - No Limit Hold'em - 19:26:50 CET - 2013/09/22 [13:26:50 ET - 2013/09/22]
// Full Tilt Poker Game #34374264321: $10 Sit & Go (Turbo) (268569961), Table 1 (6 max) - 15/30 - No Limit Hold'em - 11:57:01 CET - 2014/06/29 [05:57:01 ET - 2014/06/29]
// Full Tilt Poker Game #33728803082: Table Boxer (6 max) - $0.50/$1 - No Limit Hold'em - 7:27:42 ET - 2014/02/02
var headerRe = regexp.MustCompile(`^Full Tilt Poker Game #(?P<ident>\d+): ` +
	`(?:(?P<tournament>.+) \((?P<tid>\d+)\), )?` +
	`Table (?P<table>.+?)(?: \((?P<max>\d+) max\))?(?: \((?:deep|shallow)\))? - ` +
	`(?:Level (?P<level>\S+) - )?` +
	`(?P<sb>[$€£]?[\d,.]+)/(?P<bb>[$€£]?[\d,.]+)(?: Ante [$€£]?[\d,.]+)? - ` +
	`(?P<limit>No Limit|Pot Limit|Fixed Limit|Limit) (?P<game>.+?) - ` +
	`(?P<time>\d{1,2}:\d{2}:\d{2}) (?P<tz>[A-Z]+) - (?P<date>\d{4}/\d{2}/\d{2})` +
	`(?: \[(?P<ettime>\d{1,2}:\d{2}:\d{2}) ET - (?P<etdate>\d{4}/\d{2}/\d{2})\])?$`)

// "$10 Sit & Go (Turbo)", "$2 + $0.25 Sit & Go", "€5+€0.50 Freezeout"
var buyInRe = regexp.MustCompile(`^([$€£])([\d,.]+)(?:\s*\+\s*[$€£]([\d,.]+))?\s`)

const dateLayout = "2006/01/02 15:04:05"

var games = handhistory.NewVocabulary("Full Tilt game", map[string]handhistory.Game{
	"Hold'em":     handhistory.Holdem,
	"Omaha":       handhistory.Omaha,
	"Omaha Hi":    handhistory.Omaha,
	"Omaha H/L":   handhistory.OmahaHiLo,
	"Omaha Hi/Lo": handhistory.OmahaHiLo,
	"Razz":        handhistory.Razz,
	"Stud":        handhistory.Stud,
	"7 Card Stud": handhistory.Stud,
})

var limits = handhistory.NewVocabulary("Full Tilt limit", map[string]handhistory.Limit{
	"No Limit":    handhistory.NoLimit,
	"Pot Limit":   handhistory.PotLimit,
	"Limit":       handhistory.FixedLimit,
	"Fixed Limit": handhistory.FixedLimit,
})

// Dialect implements handhistory.Dialect for Full Tilt Poker.
type Dialect struct{}

var _ handhistory.Dialect = Dialect{}

func (Dialect) Room() string { return room }

func (Dialect) Detect(text string) bool {
	return strings.HasPrefix(firstLine(text), "Full Tilt Poker Game #")
}

// headerMatch holds the named groups of the header line.
type headerMatch map[string]string

func matchHeader(text string) (headerMatch, string, error) {
	line := firstLine(text)
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return nil, line, handhistory.HeaderError(line, "not a %s header", room)
	}
	groups := make(headerMatch, len(m))
	for i, name := range headerRe.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}
	return groups, line, nil
}

func (Dialect) ParseHeader(text string) (handhistory.Header, error) {
	m, line, err := matchHeader(text)
	if err != nil {
		return handhistory.Header{}, err
	}

	h := handhistory.Header{
		Room:            room,
		Ident:           m["ident"],
		TournamentIdent: m["tid"],
		TableName:       m["table"],
	}

	if h.Game, err = games.Parse(m["game"]); err != nil {
		return handhistory.Header{}, err
	}
	if h.Limit, err = limits.Parse(m["limit"]); err != nil {
		return handhistory.Header{}, err
	}
	if h.SB, err = handhistory.ParseAmount(m["sb"]); err != nil {
		return handhistory.Header{}, handhistory.HeaderError(line, "small blind: %w", err)
	}
	if h.BB, err = handhistory.ParseAmount(m["bb"]); err != nil {
		return handhistory.Header{}, handhistory.HeaderError(line, "big blind: %w", err)
	}
	if level := m["level"]; level != "" {
		h.TournamentLevel = &level
	}

	// The bracketed Eastern time is canonical when present.
	if m["ettime"] != "" {
		h.Date, err = handhistory.ParseLocalTime(dateLayout, m["etdate"]+" "+m["ettime"], "ET")
	} else {
		h.Date, err = handhistory.ParseLocalTime(dateLayout, m["date"]+" "+m["time"], m["tz"])
	}
	if err != nil {
		return handhistory.Header{}, handhistory.HeaderError(line, "date: %w", err)
	}

	h.Currency = handhistory.CurrencyOf(m["sb"])
	switch tournament := m["tournament"]; {
	case h.TournamentIdent == "":
		h.GameType = handhistory.Cash
	case strings.Contains(tournament, "Sit & Go"):
		h.GameType = handhistory.SitAndGo
	default:
		h.GameType = handhistory.Tournament
	}

	if h.GameType != handhistory.Cash {
		if err := parseBuyIn(&h, m["tournament"]); err != nil {
			return handhistory.Header{}, handhistory.HeaderError(line, "buy-in: %w", err)
		}
	}
	return h, nil
}

// parseBuyIn reads "$10" or "$2 + $0.25" off the front of a tournament name.
// Names without a price leave buy-in, rake and currency unset.
func parseBuyIn(h *handhistory.Header, tournament string) error {
	m := buyInRe.FindStringSubmatch(tournament + " ")
	if m == nil {
		return nil
	}
	buyIn, err := handhistory.ParseAmount(m[2])
	if err != nil {
		return err
	}
	h.BuyIn = &buyIn
	if m[3] != "" {
		rake, err := handhistory.ParseAmount(m[3])
		if err != nil {
			return err
		}
		h.Rake = &rake
	}
	h.Currency = handhistory.CurrencyOf(m[1])
	return nil
}

func firstLine(text string) string {
	text = strings.TrimLeft(text, "\uFEFF \t\r\n")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
