package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhistory/handhistory/rooms"
	"github.com/lox/pokerhistory/internal/archive"
	"github.com/lox/pokerhistory/internal/config"
	"github.com/lox/pokerhistory/internal/render"
)

// Globals are the flags shared by every command. Flags override the
// configuration file.
type Globals struct {
	Config   string   `short:"c" default:"pokerhistory.hcl" help:"Path to HCL configuration file"`
	LogLevel string   `short:"l" help:"Log level (overrides config)"`
	Workers  int      `short:"w" help:"Parallel parse workers (overrides config)"`
	Rooms    []string `help:"Only detect these rooms (overrides config)"`
	FailFast bool     `help:"Stop at the first hand that fails to parse"`
	Color    string   `enum:"auto,always,never" default:"auto" help:"Colorize output (auto, always, never)"`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// env is everything a command needs once flags and config are merged.
type env struct {
	cfg      *config.Config
	logger   *log.Logger
	runner   *archive.Runner
	renderer *render.Renderer
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func (g *Globals) setup() (*env, error) {
	stdin, stdout, stderr := g.stdin, g.stdout, g.stderr
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Parser.LogLevel = g.LogLevel
	}
	if g.Workers > 0 {
		cfg.Parser.Workers = g.Workers
	}
	if len(g.Rooms) > 0 {
		cfg.Parser.Rooms = g.Rooms
	}
	if g.FailFast {
		cfg.Parser.FailFast = true
	}

	registry := rooms.Default()
	if err := cfg.Validate(registry.Names()); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if len(cfg.Parser.Rooms) > 0 {
		if registry, err = registry.Only(cfg.Parser.Rooms...); err != nil {
			return nil, err
		}
	}

	level, err := log.ParseLevel(strings.ToLower(cfg.Parser.LogLevel))
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	return &env{
		cfg:    cfg,
		logger: logger,
		runner: &archive.Runner{
			Registry: registry,
			Workers:  cfg.Parser.Workers,
			FailFast: cfg.Parser.FailFast,
			Logger:   logger,
			Clock:    quartz.NewReal(),
		},
		renderer: render.New(stdout, render.ColorMode(g.Color)),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

// signalContext is cancelled on interrupt so a long batch stops between hands.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}

// readInputs splits every file matched by the given paths into hands. A path
// may be a glob; "-" reads standard input.
func readInputs(paths []string, stdin io.Reader) ([]archive.Input, error) {
	var inputs []archive.Input
	for _, path := range paths {
		if path == "-" {
			texts, err := archive.Split(stdin)
			if err != nil {
				return nil, err
			}
			for i, text := range texts {
				inputs = append(inputs, archive.Input{File: "stdin", Index: i + 1, Text: text})
			}
			continue
		}

		dir, pattern := filepath.Split(filepath.Clean(path))
		if dir == "" {
			dir = "."
		}
		found, err := archive.ReadFS(os.DirFS(dir), pattern)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("%s: no such file", path)
		}
		for _, in := range found {
			in.File = filepath.Join(dir, in.File)
			inputs = append(inputs, in)
		}
	}
	return inputs, nil
}

// run parses the inputs and reports failures on stderr.
func (e *env) run(paths []string, headerOnly bool) (archive.Report, error) {
	inputs, err := readInputs(paths, e.stdin)
	if err != nil {
		return archive.Report{}, err
	}
	ctx, cancel := signalContext(e.logger)
	defer cancel()

	e.runner.HeaderOnly = headerOnly
	report, err := e.runner.Run(ctx, inputs)
	for _, res := range report.Failures() {
		fmt.Fprintln(e.stderr, e.renderer.Failure(res.Input, res.Err))
	}
	return report, err
}
