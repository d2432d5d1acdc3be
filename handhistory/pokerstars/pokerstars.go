// Package pokerstars parses PokerStars hand histories.
package pokerstars

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/pokerhistory/handhistory"
)

const room = "PokerStars"

// PokerStars Hand #149522616624: Tournament #1650839540, $0.98+$0.12 USD Hold'em No Limit - Level I (10/20) - 2016/03/12 16:38:44 CET [2016/03/12 10:38:44 ET]
// PokerStars Zoom Hand #149522700001: Hold'em No Limit ($0.01/$0.02) - 2016/03/12 16:40:02 CET [2016/03/12 10:40:02 ET]
var headerRe = regexp.MustCompile(`^PokerStars (?:Zoom |Home Game )?Hand #(?P<ident>\d+): +` +
	`(?:Tournament #(?P<tid>\d+), (?:(?P<buyin>[$€£]?[\d.,]+)\+(?:[$€£]?[\d.,]+\+)?(?P<rake>[$€£]?[\d.,]+)(?: (?P<cur>[A-Z]{3}))?|(?P<freeroll>Freeroll)|(?P<sc>\d+)SC) )?` +
	`(?P<game>.+?) (?P<limit>No Limit|Pot Limit|Limit) ` +
	`(?:- (?:Match Round \S+, )?Level (?P<level>[IVXLCDM\d]+) )?` +
	`\((?P<sb>[$€£]?[\d.,]+)/(?P<bb>[$€£]?[\d.,]+)(?: (?P<cashcur>[A-Z]{3}))?\) - ` +
	`(?P<datetime>\d{4}/\d{2}/\d{2} \d{1,2}:\d{2}:\d{2}) (?P<tz>[A-Z]+)` +
	`(?: \[(?P<etdatetime>\d{4}/\d{2}/\d{2} \d{1,2}:\d{2}:\d{2}) ET\])?$`)

// Table 'Aaltje II' 6-max Seat #3 is the button
var tableRe = regexp.MustCompile(`^Table '(?P<table>[^']+)' (?P<max>\d+)-max(?: \(Play Money\))? Seat #(?P<button>\d+) is the button$`)

const dateLayout = "2006/01/02 15:04:05"

var games = handhistory.NewVocabulary("PokerStars game", map[string]handhistory.Game{
	"Hold'em":     handhistory.Holdem,
	"Omaha":       handhistory.Omaha,
	"Omaha Hi/Lo": handhistory.OmahaHiLo,
	"Razz":        handhistory.Razz,
	"7 Card Stud": handhistory.Stud,
})

var limits = handhistory.NewVocabulary("PokerStars limit", map[string]handhistory.Limit{
	"No Limit":  handhistory.NoLimit,
	"Pot Limit": handhistory.PotLimit,
	"Limit":     handhistory.FixedLimit,
})

// Dialect implements handhistory.Dialect for PokerStars.
type Dialect struct{}

var _ handhistory.Dialect = Dialect{}

func (Dialect) Room() string { return room }

func (Dialect) Detect(text string) bool {
	line, _ := headLines(text)
	return strings.HasPrefix(line, "PokerStars ") && strings.Contains(line, "Hand #")
}

type headerMatch map[string]string

func submatches(re *regexp.Regexp, line string, into headerMatch) bool {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	for i, name := range re.SubexpNames() {
		if name != "" {
			into[name] = m[i]
		}
	}
	return true
}

// matchHeader matches the hand line and the table line that follows it.
func matchHeader(text string) (headerMatch, error) {
	first, second := headLines(text)
	m := make(headerMatch)
	if !submatches(headerRe, first, m) {
		return nil, handhistory.HeaderError(first, "not a %s header", room)
	}
	if !submatches(tableRe, second, m) {
		return nil, handhistory.HeaderError(second, "missing table line")
	}
	return m, nil
}

func (Dialect) ParseHeader(text string) (handhistory.Header, error) {
	m, err := matchHeader(text)
	if err != nil {
		return handhistory.Header{}, err
	}
	line, _ := headLines(text)

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

	if m["etdatetime"] != "" {
		h.Date, err = handhistory.ParseLocalTime(dateLayout, m["etdatetime"], "ET")
	} else {
		h.Date, err = handhistory.ParseLocalTime(dateLayout, m["datetime"], m["tz"])
	}
	if err != nil {
		return handhistory.Header{}, handhistory.HeaderError(line, "date: %w", err)
	}

	if h.TournamentIdent == "" {
		h.GameType = handhistory.Cash
		h.Currency, err = currency(m["cashcur"], m["sb"])
		if err != nil {
			return handhistory.Header{}, err
		}
		return h, nil
	}

	h.GameType = handhistory.Tournament
	switch {
	case m["freeroll"] != "":
		buyIn, rake := decimal.Zero, decimal.Zero
		h.BuyIn, h.Rake = &buyIn, &rake
	case m["sc"] != "":
		coins, err := handhistory.ParseAmount(m["sc"])
		if err != nil {
			return handhistory.Header{}, handhistory.HeaderError(line, "buy-in: %w", err)
		}
		h.BuyIn = &coins
		h.Currency = handhistory.StarsCoin
	default:
		buyIn, err := handhistory.ParseAmount(m["buyin"])
		if err != nil {
			return handhistory.Header{}, handhistory.HeaderError(line, "buy-in: %w", err)
		}
		rake, err := handhistory.ParseAmount(m["rake"])
		if err != nil {
			return handhistory.Header{}, handhistory.HeaderError(line, "rake: %w", err)
		}
		h.BuyIn, h.Rake = &buyIn, &rake
		if h.Currency, err = currency(m["cur"], m["buyin"]); err != nil {
			return handhistory.Header{}, err
		}
	}
	return h, nil
}

// currency prefers the ISO code and falls back to the amount's symbol.
func currency(code, amount string) (handhistory.Currency, error) {
	if code != "" {
		return handhistory.ParseCurrency(code)
	}
	return handhistory.CurrencyOf(amount), nil
}

// headLines returns the first two non-empty lines.
func headLines(text string) (string, string) {
	var out [2]string
	n := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(strings.TrimPrefix(line, "\uFEFF"))
		if line == "" {
			continue
		}
		out[n] = line
		if n++; n == len(out) {
			break
		}
	}
	return out[0], out[1]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
