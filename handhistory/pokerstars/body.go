package pokerstars

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/poker"
)

const amount = `([$€£]?[\d,]+(?:\.\d+)?)`

var (
	seatRe      = regexp.MustCompile(`^Seat (\d+): (.+) \(` + amount + ` in chips(?:, [$€£]?[\d,.]+ bounty)?\)( is sitting out| out of hand.*)?$`)
	blindRe     = regexp.MustCompile(`^(.+): posts (small blind|big blind|the ante) ` + amount + `(?: and is all-in)?$`)
	bothBlindRe = regexp.MustCompile(`^(.+): posts small & big blinds ` + amount + `(?: and is all-in)?$`)
	dealtRe     = regexp.MustCompile(`^Dealt to (.+?) \[(\S+ \S+)\]$`)
	wagerRe     = regexp.MustCompile(`^(.+): (bets|calls) ` + amount + `(?: and is all-in)?$`)
	raiseRe     = regexp.MustCompile(`^(.+): raises ` + amount + ` to ` + amount + `(?: and is all-in)?$`)
	verbRe      = regexp.MustCompile(`^(.+): (checks|folds|mucks hand|doesn't show hand)(?: \[(\S+ \S+)\])?$`)
	showsRe     = regexp.MustCompile(`^(.+): shows \[(\S+ \S+)\]`)
	uncalledRe  = regexp.MustCompile(`^Uncalled bet \(` + amount + `\) returned to (.+)$`)
	collectedRe = regexp.MustCompile(`^(.+) collected ` + amount + ` from (?:main pot|side pot(?:-\d+)?|pot)$`)
	thinkRe     = regexp.MustCompile(`^(.+) has requested TIME$`)
	chatterRe   = regexp.MustCompile(`^(?:.+ said, ".*"|.+ (?:is disconnected|is connected|has timed out|has timed out while disconnected|has returned|leaves the table|joins the table at seat #\d+|is sitting out|will be allowed to play after the button|was removed from the table.*|finished the tournament.*|wins the tournament.*|re-buys and receives .*|cashed out the hand.*)|.+: sits out|.+: is sitting out)$`)

	flopRe     = regexp.MustCompile(`^\*\*\* FLOP \*\*\* \[(\S+ \S+ \S+)\]$`)
	laterRe    = regexp.MustCompile(`^\*\*\* (?:TURN|RIVER) \*\*\* \[([^\]]+)\] \[(\S+)\]$`)
	totalPotRe = regexp.MustCompile(`^Total pot ` + amount + `(.*?) \| Rake ` + amount + `$`)
	mainPotRe  = regexp.MustCompile(`Main pot ` + amount + `\.`)
	sidePotRe  = regexp.MustCompile(`Side pot(?:-\d+)? ` + amount + `\.`)
	boardRe    = regexp.MustCompile(`^Board \[([^\]]+)\]$`)
	summaryRe  = regexp.MustCompile(`^Seat \d+: (.+?)(?: \((?:button|small blind|big blind)\))* (collected|showed|mucked|folded|didn't|is sitting out)\b(.*)$`)
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

// ParseBody parses everything after the hand and table lines.
func (Dialect) ParseBody(text string, header handhistory.Header) (handhistory.Body, error) {
	m, err := matchHeader(text)
	if err != nil {
		return handhistory.Body{}, err
	}
	p := &lineParser{
		maxPlayers: atoi(m["max"]),
		buttonSeat: atoi(m["button"]),
	}
	if header.GameType != handhistory.Cash {
		p.levelBlinds = m["sb"] + "/" + m["bb"]
	}
	return handhistory.RunBody(header, handhistory.SplitLines(text), 2, p)
}

type lineParser struct {
	maxPlayers  int
	buttonSeat  int
	levelBlinds string
	initialized bool
}

func (p *lineParser) init(b *handhistory.Builder) error {
	if p.initialized {
		return nil
	}
	p.initialized = true
	if p.levelBlinds != "" {
		b.SetExtra("tournament_level_blinds", p.levelBlinds)
	} else {
		b.SetExtra("tournament_level_blinds", nil)
	}
	b.SetExtra("main_pot", nil)
	b.SetExtra("side_pots", nil)
	if err := b.SetMaxPlayers(p.maxPlayers); err != nil {
		return err
	}
	return b.SetButton(p.buttonSeat)
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
		return b.Deal(next, cards...)
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
		return b.Deal(next, card)
	default:
		return b.Enter(next)
	}
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
	if ok, err := p.post(b, line); ok {
		return err
	}
	if chatterRe.MatchString(line) {
		return nil
	}
	return errors.New("unrecognised seating line")
}

func (p *lineParser) post(b *handhistory.Builder, line string) (bool, error) {
	if m := blindRe.FindStringSubmatch(line); m != nil {
		a, err := handhistory.ParseAmount(m[3])
		if err != nil {
			return true, err
		}
		return true, b.Post(m[1], a, m[2] != "the ante")
	}
	if m := bothBlindRe.FindStringSubmatch(line); m != nil {
		a, err := handhistory.ParseAmount(m[2])
		if err != nil {
			return true, err
		}
		// Only the big blind part counts as a live bet.
		bb := decimal.Min(a, b.Header().BB)
		if err := b.Post(m[1], bb, true); err != nil {
			return true, err
		}
		if dead := a.Sub(bb); dead.IsPositive() {
			return true, b.Post(m[1], dead, false)
		}
		return true, nil
	}
	return false, nil
}

func (p *lineParser) round(b *handhistory.Builder, line string) error {
	if m := raiseRe.FindStringSubmatch(line); m != nil {
		to, err := handhistory.ParseAmount(m[3])
		if err != nil {
			return err
		}
		return b.Act(handhistory.NewAmountAction(m[1], handhistory.ActionRaise, to), line)
	}
	if m := wagerRe.FindStringSubmatch(line); m != nil {
		action, err := handhistory.ParseAction(m[2])
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
		verb := m[2]
		if verb == "doesn't show hand" {
			verb = "mucks"
		}
		action, err := handhistory.ParseAction(verb)
		if err != nil {
			return err
		}
		if m[3] != "" {
			if err := p.show(b, m[1], m[3]); err != nil {
				return err
			}
		}
		return b.Act(handhistory.NewAction(m[1], action), line)
	}
	if m := showsRe.FindStringSubmatch(line); m != nil {
		if err := p.show(b, m[1], m[2]); err != nil {
			return err
		}
		return b.Act(handhistory.NewAction(m[1], handhistory.ActionShow), line)
	}
	if m := uncalledRe.FindStringSubmatch(line); m != nil {
		a, err := handhistory.ParseAmount(m[1])
		if err != nil {
			return err
		}
		return b.Act(handhistory.NewAmountAction(m[2], handhistory.ActionReturn, a), line)
	}
	if m := collectedRe.FindStringSubmatch(line); m != nil {
		a, err := handhistory.ParseAmount(m[2])
		if err != nil {
			return err
		}
		return b.Act(handhistory.NewAmountAction(m[1], handhistory.ActionWin, a), line)
	}
	if m := thinkRe.FindStringSubmatch(line); m != nil {
		return b.Act(handhistory.NewAction(m[1], handhistory.ActionThink), line)
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
	if chatterRe.MatchString(line) {
		b.Note(line)
		return nil
	}
	return errors.New("unrecognised action line")
}

func (p *lineParser) show(b *handhistory.Builder, name, cards string) error {
	combo, err := poker.ParseCombo(cards)
	if err != nil {
		return err
	}
	return b.ShowCards(name, combo)
}

func (p *lineParser) summary(b *handhistory.Builder, line string) error {
	if m := totalPotRe.FindStringSubmatch(line); m != nil {
		return p.totalPot(b, m[1], m[2], m[3])
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
		if err := p.show(b, name, c[1]); err != nil {
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

// totalPot handles "Total pot 3380 Main pot 2000. Side pot 1380. | Rake 0".
// When the pot was split, main and side pots must add up to the total.
func (p *lineParser) totalPot(b *handhistory.Builder, total, split, rake string) error {
	t, err := handhistory.ParseAmount(total)
	if err != nil {
		return err
	}
	if _, err := handhistory.ParseAmount(rake); err != nil {
		return err
	}
	b.StateTotalPot(t)

	mm := mainPotRe.FindStringSubmatch(split)
	if mm == nil {
		return nil
	}
	mainPot, err := handhistory.ParseAmount(mm[1])
	if err != nil {
		return err
	}
	sum := mainPot
	var sides []decimal.Decimal
	for _, side := range sidePotRe.FindAllStringSubmatch(split, -1) {
		s, err := handhistory.ParseAmount(side[1])
		if err != nil {
			return err
		}
		sides = append(sides, s)
		sum = sum.Add(s)
	}
	if !sum.Equal(t) {
		return fmt.Errorf("main and side pots add up to %s, total pot is %s", sum, t)
	}
	b.SetExtra("main_pot", mainPot)
	b.SetExtra("side_pots", sides)
	return nil
}
