// Package render formats parsed hands and archive statistics for a terminal.
package render

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/internal/statistics"
	"github.com/lox/pokerhistory/poker"
)

var holeCardCategories = []poker.HoleCardCategory{
	poker.CategoryPremium,
	poker.CategoryStrong,
	poker.CategoryMedium,
	poker.CategoryWeak,
	poker.CategoryTrash,
	poker.CategoryUnknown,
}

// ColorMode selects when ANSI styling is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Renderer styles output for one writer.
type Renderer struct {
	st styles
}

// New returns a renderer for w. ColorAuto asks the terminal.
func New(w io.Writer, mode ColorMode) *Renderer {
	lg := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		lg.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		lg.SetColorProfile(termenv.TrueColor)
	}
	return &Renderer{st: newStyles(lg)}
}

// Header renders the one-line summary of a hand header.
func (r *Renderer) Header(h handhistory.Header) string {
	parts := []string{
		r.st.Header.Render(fmt.Sprintf("%s #%s", h.Room, h.Ident)),
		r.st.HandInfo.Render(h.TableName),
		fmt.Sprintf("%s %s %s %s", money(h.SB.String()+"/"+h.BB.String(), h.Currency), h.Limit, h.Game, h.GameType),
	}
	if h.TournamentIdent != "" {
		t := "tournament " + h.TournamentIdent
		if h.TournamentLevel != nil {
			t += " level " + *h.TournamentLevel
		}
		parts = append(parts, t)
	}
	parts = append(parts, r.st.Info.Render(h.Date.Format("2006-01-02 15:04:05 MST")))
	return strings.Join(parts, "  ")
}

// Hand renders a fully parsed hand street by street.
func (r *Renderer) Hand(hand handhistory.Hand) string {
	var b strings.Builder
	b.WriteString(r.Header(hand.Header))
	b.WriteString("\n\n")

	b.WriteString(r.st.Section.Render("Seats"))
	b.WriteByte('\n')
	for _, p := range hand.Players {
		b.WriteString("  ")
		b.WriteString(r.player(hand, p))
		b.WriteByte('\n')
	}

	for _, s := range hand.Streets() {
		b.WriteByte('\n')
		b.WriteString(r.street(s, hand.Currency))
	}

	if len(hand.Showdown) > 0 {
		b.WriteByte('\n')
		b.WriteString(r.st.Section.Render("Showdown"))
		b.WriteByte('\n')
		for _, a := range hand.Showdown {
			b.WriteString("  ")
			b.WriteString(r.st.Log.Render(a.String()))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s %s  %s %s (%s)\n",
		r.st.Section.Render("Winners:"), r.st.Success.Render(strings.Join(hand.Winners, ", ")),
		r.st.Section.Render("Total pot:"), money(hand.TotalPot.String(), hand.Currency), hand.TotalPotSource)
	return b.String()
}

func (r *Renderer) player(hand handhistory.Hand, p handhistory.Player) string {
	line := fmt.Sprintf("%2d %-16s %10s", p.Seat, p.Name, money(p.Stack.String(), hand.Currency))
	var tags []string
	if p.Combo != nil {
		tags = append(tags, r.Cards(p.Combo.First(), p.Combo.Second()))
	}
	if hand.Button != nil && hand.Button.Seat == p.Seat {
		tags = append(tags, "button")
	}
	if p.SittingOut {
		tags = append(tags, r.st.Info.Render("sitting out"))
	}
	style := r.st.PlayerInfo
	if hand.Hero != nil && hand.Hero.Name == p.Name {
		style = r.st.Hero
		if p.Combo != nil {
			tags = append(tags, fmt.Sprintf("hero (%s)", p.Combo.Category()))
		} else {
			tags = append(tags, "hero")
		}
	}
	if len(tags) == 0 {
		return style.Render(line)
	}
	return style.Render(line) + "  " + strings.Join(tags, " ")
}

func (r *Renderer) street(s *handhistory.Street, cur handhistory.Currency) string {
	var b strings.Builder
	title := strings.ToUpper(s.Name[:1]) + s.Name[1:]
	b.WriteString(r.st.Section.Render(title))
	if len(s.Board) > 0 {
		b.WriteString(" " + r.Cards(s.Board...))
	}
	fmt.Fprintf(&b, "  %s", r.st.Info.Render(fmt.Sprintf("pot %s -> %s", money(s.StartPot.String(), cur), money(s.Pot.String(), cur))))
	if tex := Texture(s.Texture); len(s.Board) >= 3 && tex != "" {
		b.WriteString("  " + r.st.Warning.Render(tex))
	}
	b.WriteByte('\n')
	for _, line := range s.Lines {
		b.WriteString("  ")
		b.WriteString(r.st.Log.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// Cards renders cards in brackets, red suits in red.
func (r *Renderer) Cards(cards ...poker.Card) string {
	out := make([]string, len(cards))
	for i, c := range cards {
		style := r.st.BlackCard
		if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
			style = r.st.RedCard
		}
		out[i] = style.Render(c.String())
	}
	return "[" + strings.Join(out, " ") + "]"
}

// Texture describes a board texture in words, e.g. "rainbow, gutshot, dry".
func Texture(t handhistory.Texture) string {
	var words []string
	add := func(ok bool, word string) {
		if ok {
			words = append(words, word)
		}
	}
	add(t.Rainbow, "rainbow")
	add(t.Monotone, "monotone")
	add(t.FlushDraw && !t.Monotone, "flush draw")
	add(t.Triplet, "trips")
	add(t.Pair, "paired")
	add(t.StraightDraw, "straight draw")
	add(t.Gutshot && !t.StraightDraw, "gutshot")
	words = append(words, t.Wetness.String())
	return strings.Join(words, ", ")
}

// Failure renders one hand that could not be parsed.
func (r *Renderer) Failure(input fmt.Stringer, err error) string {
	return r.st.Error.Render("FAIL") + " " + input.String() + ": " + err.Error()
}

// Stats renders archive statistics as a small report.
func (r *Renderer) Stats(s *statistics.Statistics) string {
	var b strings.Builder
	b.WriteString(r.st.Header.Render(fmt.Sprintf("%d hands", s.Hands)))
	b.WriteString("\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "  %-18s %s\n", label, value)
	}

	b.WriteString(r.st.Section.Render("Rooms"))
	b.WriteByte('\n')
	for _, room := range slices.Sorted(maps.Keys(s.Rooms)) {
		row(room, fmt.Sprint(s.Rooms[room]))
	}

	b.WriteString(r.st.Section.Render("Streets reached"))
	b.WriteByte('\n')
	for _, name := range []string{"preflop", "flop", "turn", "river"} {
		row(name, fmt.Sprint(s.Streets[name]))
	}
	row("showdown", fmt.Sprintf("%d (%.1f%%)", s.Showdowns, 100*s.ShowdownRate()))

	b.WriteString(r.st.Section.Render("Pots (bb)"))
	b.WriteByte('\n')
	row("mean", fmt.Sprintf("%.2f", s.Pots.Mean()))
	row("median", fmt.Sprintf("%.2f", s.Pots.Median()))
	row("p90", fmt.Sprintf("%.2f", s.Pots.Percentile(0.9)))
	row("max", fmt.Sprintf("%.2f", s.Pots.Max()))
	row(fmt.Sprintf(">= %dbb", statistics.BigPotBB), fmt.Sprint(s.BigPots))

	if s.Flops.Flops > 0 {
		b.WriteString(r.st.Section.Render("Flop textures"))
		b.WriteByte('\n')
		pct := func(n int) string {
			return fmt.Sprintf("%d (%.1f%%)", n, 100*float64(n)/float64(s.Flops.Flops))
		}
		row("rainbow", pct(s.Flops.Rainbow))
		row("monotone", pct(s.Flops.Monotone))
		row("paired", pct(s.Flops.Paired))
		row("flush draw", pct(s.Flops.FlushDraw))
		row("straight draw", pct(s.Flops.StraightDraw))
		for w := handhistory.Dry; w <= handhistory.VeryWet; w++ {
			row(w.String(), pct(s.Flops.Wetness[w]))
		}
	}

	if s.Hero.N > 0 {
		low, high := s.Hero.ConfidenceInterval95()
		b.WriteString(r.st.Section.Render("Hero (bb)"))
		b.WriteByte('\n')
		row("hands", fmt.Sprint(s.Hero.N))
		row("net", r.signed(s.AllBB))
		row("per hand", fmt.Sprintf("%s (95%% CI %.2f to %.2f)", r.signed(s.Hero.Mean()), low, high))
		row("showdown", r.signed(s.ShowdownBB))
		row("non-showdown", r.signed(s.NonShowdownBB))
		for _, category := range holeCardCategories {
			if c := s.HeroByCategory[category]; c != nil {
				row(strings.ToLower(string(category)), fmt.Sprintf("%d hands, %s per hand", c.N, r.signed(c.Mean())))
			}
		}
	}
	return b.String()
}

func (r *Renderer) signed(v float64) string {
	s := fmt.Sprintf("%+.2f", v)
	if v < 0 {
		return r.st.Error.Render(s)
	}
	return r.st.Success.Render(s)
}

func money(amount string, c handhistory.Currency) string {
	if !c.IsSet() {
		return amount
	}
	return amount + " " + string(c)
}
