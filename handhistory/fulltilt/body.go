package fulltilt

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/poker"
)

const amount = `([$€£]?[\d,]+(?:\.\d+)?)`

var (
	seatRe     = regexp.MustCompile(`^Seat (\d+): (.+) \(` + amount + `\)(, is sitting out)?$`)
	blindRe    = regexp.MustCompile(`^(.+) posts (the|a dead) (?:small|big) blind of ` + amount + `$`)
	postRe     = regexp.MustCompile(`^(.+) posts ` + amount + `$`)
	anteRe     = regexp.MustCompile(`^(.+) antes ` + amount + `$`)
	buttonRe   = regexp.MustCompile(`^The button is in seat #(\d+)$`)
	dealtRe    = regexp.MustCompile(`^Dealt to (.+) \[(\S+ \S+)\]$`)
	wagerRe    = regexp.MustCompile(`^(.+) (bets|calls|raises to) ` + amount + `(?:, and is all in)?$`)
	verbRe     = regexp.MustCompile(`^(.+) (checks|folds|mucks)$`)
	showsRe    = regexp.MustCompile(`^(.+) shows \[(\S+ \S+)\]`)
	uncalledRe = regexp.MustCompile(`^Uncalled bet of ` + amount + ` returned to (.+)$`)
	winsRe     = regexp.MustCompile(`^(.+) (?:wins|ties for) the (?:main |side )?pot(?: #?\d+)? \(` + amount + `\)`)
	thinkRe    = regexp.MustCompile(`^(.+) has (?:\d+ seconds left to act|requested TIME)$`)
	chatterRe  = regexp.MustCompile(`^(?:.+ (?:is sitting out|has timed out|has timed out while (?:being )?disconnected|has been disconnected|has reconnected|has returned|stands up|sits down|is feeling \w+|adds ` + amount + `|has \d+ seconds to reconnect|will be allowed to play after the button|has been reserved|seat is now reserved))$`)
	chatRe     = regexp.MustCompile(`^([^:]+): `)

	flopRe     = regexp.MustCompile(`^\*\*\* FLOP \*\*\* \[(\S+ \S+ \S+)\](?: \(Total Pot: ` + amount + `, (\d+) Players?[^)]*\))?$`)
	laterRe    = regexp.MustCompile(`^\*\*\* (?:TURN|RIVER) \*\*\* \[([^\]]+)\] \[(\S+)\](?: \(Total Pot: ` + amount + `, (\d+) Players?[^)]*\))?$`)
	totalPotRe = regexp.MustCompile(`^Total pot ` + amount + `(?: [^|]*)? \| Rake ` + amount + `$`)
	boardRe    = regexp.MustCompile(`^Board: \[([^\]]+)\]$`)
	summaryRe  = regexp.MustCompile(`^Seat \d+: (.+?)(?: \((?:button|small blind|big blind)\))? (collected|showed|mucked|didn't|folded|is sitting out)\b(.*)$`)
	cardsRe    = regexp.MustCompile(`\[(\S+ \S+)\]`)
)

var markers = map[string]handhistory.Section{
	"*** HOLE CARDS ***": handhistory.SectionPreflop,
	"*** FLOP ***":       handhistory.SectionFlop,
	"*** TURN ***":       handhistory.SectionTurn,
	"*** RIVER ***":      handhistory.SectionRiver,
	"*** SHOW DOWN ***":  handhistory.SectionShowdown,
	"*** SUMMARY ***":    handhistory.SectionSummary,
}

// ParseBody walks every line after the header through the body state machine.
func (Dialect) ParseBody(text string, header handhistory.Header) (handhistory.Body, error) {
	m, _, err := matchHeader(text)
	if err != nil {
		return handhistory.Body{}, err
	}
	p := &lineParser{maxPlayers: atoi(m["max"])}
	if name := m["tournament"]; name != "" {
		p.tournamentName = name
	}
	return handhistory.RunBody(header, handhistory.SplitLines(text), 1, p)
}

type lineParser struct {
	tournamentName string
	maxPlayers     int
	initialized    bool
}

func (p *lineParser) init(b *handhistory.Builder) error {
	if p.initialized {
		return nil
	}
	p.initialized = true
	if p.tournamentName != "" {
		b.SetExtra("tournament_name", p.tournamentName)
	} else {
		b.SetExtra("tournament_name", nil)
	}
	for _, key := range []string{"turn_pot", "turn_num_players", "river_pot", "river_num_players"} {
		b.SetExtra(key, nil)
	}
	if p.maxPlayers > 0 {
		return b.SetMaxPlayers(p.maxPlayers)
	}
	return nil
}

func (p *lineParser) Marker(line string) (handhistory.Section, bool) {
	if !strings.HasPrefix(line, "*** ") {
		return 0, false
	}
	end := strings.Index(line[4:], " ***")
	if end < 0 {
		return 0, false
	}
	next, ok := markers[line[:end+8]]
	return next, ok
}

func (p *lineParser) EnterSection(b *handhistory.Builder, next handhistory.Section, line string) error {
	if err := p.init(b); err != nil {
		return err
	}
	switch next {
	case handhistory.SectionFlop:
		m := flopRe.FindStringSubmatch(line)
		if m == nil {
			return errors.New("malformed flop line")
		}
		cards, err := poker.ParseCards(m[1])
		if err != nil {
			return err
		}
		if err := b.Deal(next, cards...); err != nil {
			return err
		}
		return p.statePot(b, m[2], m[3], "")
	case handhistory.SectionTurn, handhistory.SectionRiver:
		m := laterRe.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("malformed %s line", next)
		}
		previous, err := poker.ParseCards(m[1])
		if err != nil {
			return err
		}
		if !slices.Equal(previous, b.Board()) {
			return fmt.Errorf("board [%s] does not match cards dealt so far", m[1])
		}
		card, err := poker.ParseCard(m[2])
		if err != nil {
			return err
		}
		if err := b.Deal(next, card); err != nil {
			return err
		}
		return p.statePot(b, m[3], m[4], next.String())
	default:
		return b.Enter(next)
	}
}

// statePot applies the "(Total Pot: X, N Players)" suffix of a street line.
// extraPrefix names the turn_/river_ metadata keys, empty for the flop.
func (p *lineParser) statePot(b *handhistory.Builder, pot, players, extraPrefix string) error {
	if pot == "" {
		return nil
	}
	amount, err := handhistory.ParseAmount(pot)
	if err != nil {
		return err
	}
	n := atoi(players)
	if active := len(b.ActivePlayers()); n != active {
		return fmt.Errorf("room counts %d players in the pot, %d are active", n, active)
	}
	if err := b.StatePot(amount); err != nil {
		return err
	}
	if extraPrefix != "" {
		b.SetExtra(extraPrefix+"_pot", amount)
		b.SetExtra(extraPrefix+"_num_players", n)
	}
	return nil
}

func (p *lineParser) ParseLine(b *handhistory.Builder, line string) error {
	if err := p.init(b); err != nil {
		return err
	}
	switch s := b.Section(); {
	case s == handhistory.SectionSeating:
		return p.seating(b, line)
	case s.IsStreet(), s == handhistory.SectionShowdown:
		return p.round(b, line)
	case s == handhistory.SectionSummary:
		return p.summary(b, line)
	default:
		return fmt.Errorf("unexpected line in %s", s)
	}
}

func (p *lineParser) seating(b *handhistory.Builder, line string) error {
	if m := seatRe.FindStringSubmatch(line); m != nil {
		stack, err := handhistory.ParseAmount(m[3])
		if err != nil {
			return err
		}
		if err := b.AddPlayer(m[2], stack, atoi(m[1])); err != nil {
			return err
		}
		if m[4] != "" {
			return b.SitOut(m[2])
		}
		return nil
	}
	if strings.HasPrefix(line, "Seat ") {
		return errors.New("malformed seat line")
	}
	if m := buttonRe.FindStringSubmatch(line); m != nil {
		return b.SetButton(atoi(m[1]))
	}
	if ok, err := p.post(b, line); ok {
		return err
	}
	if chatterRe.MatchString(line) || isChat(b, line) {
		return nil
	}
	return errors.New("unrecognised seating line")
}

// post handles blinds and antes, which Full Tilt prints before the hole cards.
func (p *lineParser) post(b *handhistory.Builder, line string) (bool, error) {
	var name, amt string
	live := true
	if m := blindRe.FindStringSubmatch(line); m != nil {
		name, amt, live = m[1], m[3], m[2] == "the"
	} else if m := anteRe.FindStringSubmatch(line); m != nil {
		name, amt, live = m[1], m[2], false
	} else if m := postRe.FindStringSubmatch(line); m != nil {
		name, amt = m[1], m[2]
	} else {
		return false, nil
	}
	a, err := handhistory.ParseAmount(amt)
	if err != nil {
		return true, err
	}
	return true, b.Post(name, a, live)
}

// round handles the lines of a betting round or of the showdown.
func (p *lineParser) round(b *handhistory.Builder, line string) error {
	if m := wagerRe.FindStringSubmatch(line); m != nil {
		action, err := handhistory.ParseAction(strings.TrimSuffix(m[2], " to"))
		if err != nil {
			return err
		}
		a, err := handhistory.ParseAmount(m[3])
		if err != nil {
			return err
		}
		return b.Act(handhistory.NewAmountAction(m[1], action, a), line)
	}
	if m := verbRe.FindStringSubmatch(line); m != nil {
		action, err := handhistory.ParseAction(m[2])
		if err != nil {
			return err
		}
		return b.Act(handhistory.NewAction(m[1], action), line)
	}
	if m := thinkRe.FindStringSubmatch(line); m != nil {
		return b.Act(handhistory.NewAction(m[1], handhistory.ActionThink), line)
	}
	if m := uncalledRe.FindStringSubmatch(line); m != nil {
		a, err := handhistory.ParseAmount(m[1])
		if err != nil {
			return err
		}
		return b.Act(handhistory.NewAmountAction(m[2], handhistory.ActionReturn, a), line)
	}
	if m := winsRe.FindStringSubmatch(line); m != nil {
		a, err := handhistory.ParseAmount(m[2])
		if err != nil {
			return err
		}
		return b.Act(handhistory.NewAmountAction(m[1], handhistory.ActionWin, a), line)
	}
	if m := showsRe.FindStringSubmatch(line); m != nil {
		combo, err := poker.ParseCombo(m[2])
		if err != nil {
			return err
		}
		if err := b.ShowCards(m[1], combo); err != nil {
			return err
		}
		return b.Act(handhistory.NewAction(m[1], handhistory.ActionShow), line)
	}
	if m := dealtRe.FindStringSubmatch(line); m != nil {
		if b.Section() != handhistory.SectionPreflop {
			return errors.New("hole cards dealt after preflop")
		}
		combo, err := poker.ParseCombo(m[2])
		if err != nil {
			return err
		}
		return b.SetHero(m[1], combo)
	}
	if ok, err := p.post(b, line); ok {
		return err
	}
	if chatterRe.MatchString(line) || isChat(b, line) {
		b.Note(line)
		return nil
	}
	return errors.New("unrecognised action line")
}

// isChat reports whether line is "<seated player>: message".
func isChat(b *handhistory.Builder, line string) bool {
	m := chatRe.FindStringSubmatch(line)
	return m != nil && b.HasPlayer(m[1])
}

func (p *lineParser) summary(b *handhistory.Builder, line string) error {
	if m := totalPotRe.FindStringSubmatch(line); m != nil {
		total, err := handhistory.ParseAmount(m[1])
		if err != nil {
			return err
		}
		if _, err := handhistory.ParseAmount(m[2]); err != nil {
			return err
		}
		b.StateTotalPot(total)
		return nil
	}
	if m := boardRe.FindStringSubmatch(line); m != nil {
		board, err := poker.ParseCards(m[1])
		if err != nil {
			return err
		}
		if !slices.Equal(board, b.Board()) {
			return fmt.Errorf("summary board [%s] does not match the cards dealt", m[1])
		}
		return nil
	}
	m := summaryRe.FindStringSubmatch(line)
	if m == nil {
		return errors.New("unrecognised summary line")
	}
	name, rest := m[1], m[2]+m[3]
	if c := cardsRe.FindStringSubmatch(rest); c != nil {
		combo, err := poker.ParseCombo(c[1])
		if err != nil {
			return err
		}
		if err := b.ShowCards(name, combo); err != nil {
			return err
		}
	}
	if strings.HasPrefix(rest, "collected") || strings.Contains(rest, " and won") {
		if !b.HasPlayer(name) {
			return fmt.Errorf("winner %s is not seated", name)
		}
		b.Winner(name)
	}
	return nil
}
