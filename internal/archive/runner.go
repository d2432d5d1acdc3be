package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/handhistory/rooms"
)

// ErrSkipped marks inputs a cancelled or failed-fast run never reached.
var ErrSkipped = errors.New("hand skipped")

// Runner parses many hands concurrently. A hand that fails is reported and
// the batch continues unless FailFast is set.
type Runner struct {
	Registry   *rooms.Registry
	Workers    int
	FailFast   bool
	HeaderOnly bool
	Logger     *log.Logger
	Clock      quartz.Clock
}

// Result is the outcome for one input.
type Result struct {
	Input   Input
	History *handhistory.HandHistory
	Err     error
}

// Report summarises a batch. Results keep input order.
type Report struct {
	Results []Result
	Parsed  int
	Failed  int
	Skipped int
	Started time.Time
	Elapsed time.Duration
}

// Hands returns the fully parsed hands.
func (r Report) Hands() []handhistory.Hand {
	var hands []handhistory.Hand
	for _, res := range r.Results {
		if res.Err != nil {
			continue
		}
		if hand, err := res.History.Hand(); err == nil {
			hands = append(hands, hand)
		}
	}
	return hands
}

// Headers returns the headers of every hand whose header parsed.
func (r Report) Headers() []handhistory.Header {
	var headers []handhistory.Header
	for _, res := range r.Results {
		if res.History == nil {
			continue
		}
		if h, err := res.History.Header(); err == nil {
			headers = append(headers, h)
		}
	}
	return headers
}

// Failures returns the results that failed to parse.
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil && !errors.Is(res.Err, ErrSkipped) {
			failed = append(failed, res)
		}
	}
	return failed
}

// NewRunner returns a runner over every known room using a real clock and
// the default logger.
func NewRunner(workers int) *Runner {
	return &Runner{
		Registry: rooms.Default(),
		Workers:  workers,
		Logger:   log.Default(),
		Clock:    quartz.NewReal(),
	}
}

// Run parses inputs. The error is non-nil only when ctx was cancelled or a
// hand failed with FailFast set; the report is valid either way.
func (r *Runner) Run(ctx context.Context, inputs []Input) (Report, error) {
	report := Report{
		Results: make([]Result, len(inputs)),
		Started: r.Clock.Now(),
	}
	for i, in := range inputs {
		report.Results[i] = Result{Input: in, Err: ErrSkipped}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := r.parse(in)
			report.Results[i] = res
			if res.Err == nil {
				return nil
			}
			r.Logger.Warn("Skipping hand", "input", in, "error", res.Err)
			if r.FailFast {
				return fmt.Errorf("%s: %w", in, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	for _, res := range report.Results {
		switch {
		case res.Err == nil:
			report.Parsed++
		case errors.Is(res.Err, ErrSkipped):
			report.Skipped++
		default:
			report.Failed++
		}
	}
	report.Elapsed = r.Clock.Since(report.Started)
	r.Logger.Info("Parsed hands",
		"parsed", report.Parsed,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"elapsed", report.Elapsed)
	return report, err
}

func (r *Runner) parse(in Input) Result {
	res := Result{Input: in}
	d, err := r.Registry.Detect(in.Text)
	if err != nil {
		res.Err = err
		return res
	}
	res.History = handhistory.New(d, in.Text)
	if r.HeaderOnly {
		res.Err = res.History.ParseHeader()
	} else {
		res.Err = res.History.Parse()
	}
	if res.Err == nil {
		r.Logger.Debug("Parsed hand", "input", in, "room", d.Room(), "phase", res.History.Phase())
	}
	return res
}
