package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/pokerhistory/internal/archive"
	"github.com/lox/pokerhistory/internal/config"
	"github.com/lox/pokerhistory/internal/fileutil"
	"github.com/lox/pokerhistory/internal/phh"
	"github.com/lox/pokerhistory/internal/statistics"
)

var errNoHands = errors.New("no hands parsed")

// checkReport fails a command only when nothing at all could be parsed.
func checkReport(report archive.Report) error {
	if report.Parsed == 0 {
		if report.Failed > 0 {
			return fmt.Errorf("%w: %d failed", errNoHands, report.Failed)
		}
		return errNoHands
	}
	return nil
}

// HeaderCmd prints one line per hand from header-only parsing.
type HeaderCmd struct {
	Files []string `arg:"" name:"file" help:"Hand history files or globs (- for stdin)"`
}

func (cmd *HeaderCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	report, err := e.run(cmd.Files, true)
	if err != nil {
		return err
	}
	for _, h := range report.Headers() {
		fmt.Fprintln(e.stdout, e.renderer.Header(h))
	}
	return checkReport(report)
}

// ParseCmd prints every fully parsed hand as JSON.
type ParseCmd struct {
	Files  []string `arg:"" name:"file" help:"Hand history files or globs (- for stdin)"`
	Indent bool     `help:"Indent the JSON output"`
}

func (cmd *ParseCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	report, err := e.run(cmd.Files, false)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(e.stdout)
	if cmd.Indent {
		enc.SetIndent("", "  ")
	}
	for _, hand := range report.Hands() {
		if err := enc.Encode(hand); err != nil {
			return fmt.Errorf("encoding hand %s: %w", hand.Ident, err)
		}
	}
	return checkReport(report)
}

// ShowCmd renders hands street by street.
type ShowCmd struct {
	Files []string `arg:"" name:"file" help:"Hand history files or globs (- for stdin)"`
	Limit int      `help:"Maximum number of hands to render (0 = all)"`
}

func (cmd *ShowCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	report, err := e.run(cmd.Files, false)
	if err != nil {
		return err
	}
	hands := report.Hands()
	if cmd.Limit > 0 && cmd.Limit < len(hands) {
		hands = hands[:cmd.Limit]
	}
	for i, hand := range hands {
		if i > 0 {
			fmt.Fprintln(e.stdout)
		}
		fmt.Fprint(e.stdout, e.renderer.Hand(hand))
	}
	return checkReport(report)
}

// ExportCmd converts hands to the Poker Hand History format.
type ExportCmd struct {
	Files  []string `arg:"" name:"file" help:"Hand history files or globs (- for stdin)"`
	Output string   `short:"o" help:"Session file (phhs) or directory (phh); defaults to the configured export directory"`
	Format string   `help:"Export format, phh or phhs (overrides config)"`
}

func (cmd *ExportCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	switch cmd.Format {
	case "":
	case config.FormatHand, config.FormatSession:
		e.cfg.Export.Format = cmd.Format
	default:
		return fmt.Errorf("unknown export format %q", cmd.Format)
	}
	report, err := e.run(cmd.Files, false)
	if err != nil {
		return err
	}
	if err := checkReport(report); err != nil {
		return err
	}

	var histories []*phh.HandHistory
	for _, hand := range report.Hands() {
		hh, err := phh.FromHand(hand)
		if errors.Is(err, phh.ErrUnsupportedVariant) {
			e.logger.Warn("Skipping hand", "hand", hand.Ident, "error", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("converting hand %s: %w", hand.Ident, err)
		}
		histories = append(histories, hh)
	}
	if len(histories) == 0 {
		return errors.New("no hands could be exported")
	}

	if e.cfg.Export.Format == config.FormatHand {
		dir := cmd.Output
		if dir == "" {
			dir = e.cfg.Export.Directory
		}
		return e.exportHands(dir, histories)
	}
	path := cmd.Output
	if path == "" {
		path = filepath.Join(e.cfg.Export.Directory, "session.phhs")
	}
	if err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return phh.EncodeSession(w, histories)
	}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	e.logger.Info("Exported session", "path", path, "hands", len(histories))
	return nil
}

func (e *env) exportHands(dir string, histories []*phh.HandHistory) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, hh := range histories {
		venue := strings.ReplaceAll(strings.ToLower(hh.Venue), " ", "-")
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.phh", venue, hh.HandID))
		if err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return phh.Encode(w, hh)
		}); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	e.logger.Info("Exported hands", "directory", dir, "hands", len(histories))
	return nil
}

// StatsCmd aggregates an archive into summary statistics.
type StatsCmd struct {
	Files []string `arg:"" name:"file" help:"Hand history files or globs (- for stdin)"`
}

func (cmd *StatsCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	report, err := e.run(cmd.Files, false)
	if err != nil {
		return err
	}
	if err := checkReport(report); err != nil {
		return err
	}
	stats := statistics.New()
	for _, hand := range report.Hands() {
		stats.AddHand(hand)
	}
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("statistics: %w", err)
	}
	fmt.Fprint(e.stdout, e.renderer.Stats(stats))
	return nil
}
