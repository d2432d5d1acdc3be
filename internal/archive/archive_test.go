package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/handhistory/rooms"
)

func testdata(t *testing.T, room, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "handhistory", room, "testdata", name))
	require.NoError(t, err)
	return string(data)
}

func testRunner(t *testing.T, workers int) *Runner {
	t.Helper()
	return &Runner{
		Registry: rooms.Default(),
		Workers:  workers,
		Logger:   log.New(io.Discard),
		Clock:    quartz.NewMock(t),
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()
	text := "\uFEFFHand one\r\nline two\r\n\r\n\r\n\r\nHand two\n*********** # 3 **************\nHand three\nend\n\n"
	hands, err := Split(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hand one\nline two\n", "Hand two\n", "Hand three\nend\n"}, hands)

	hands, err = Split(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, hands)
}

func TestReadFS(t *testing.T) {
	t.Parallel()
	ftp := testdata(t, "fulltilt", "hand1.txt")
	stars := testdata(t, "pokerstars", "cash_walk.txt")
	fsys := fstest.MapFS{
		"2014/b.txt":    {Data: []byte(stars)},
		"2014/a.txt":    {Data: []byte(ftp + "\n\n" + stars)},
		"2014/notes.md": {Data: []byte("not a hand")},
	}

	inputs, err := ReadFS(fsys, "2014/*.txt")
	require.NoError(t, err)
	require.Len(t, inputs, 3)
	assert.Equal(t, "2014/a.txt#1", inputs[0].String())
	assert.Equal(t, "2014/a.txt#2", inputs[1].String())
	assert.Equal(t, "2014/b.txt#1", inputs[2].String())
	assert.True(t, strings.HasPrefix(inputs[0].Text, "Full Tilt Poker Game #33286946295"))

	_, err = ReadFS(fsys, "[")
	assert.Error(t, err)
}

func TestRunSkipsFailures(t *testing.T) {
	t.Parallel()
	broken := strings.Replace(testdata(t, "fulltilt", "cash_showdown.txt"), "Charlie bets $4", "Charlie dances", 1)
	inputs := Inputs(
		testdata(t, "fulltilt", "hand1.txt"),
		broken,
		"Party Poker Hand #1",
		testdata(t, "pokerstars", "tournament_side_pot.txt"),
		testdata(t, "pokerstars", "cash_split_pot.txt"),
	)

	report, err := testRunner(t, 3).Run(context.Background(), inputs)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Parsed)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 0, report.Skipped)

	failures := report.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, 2, failures[0].Input.Index)
	assert.ErrorIs(t, failures[0].Err, handhistory.ErrBody)
	assert.Equal(t, handhistory.HeaderParsed, failures[0].History.Phase())
	assert.ErrorIs(t, failures[1].Err, handhistory.ErrUnknownRoom)
	assert.Nil(t, failures[1].History)

	hands := report.Hands()
	require.Len(t, hands, 3)
	assert.Equal(t, "33286946295", hands[0].Ident)
	assert.Equal(t, "149522616624", hands[1].Ident)
	assert.Len(t, report.Headers(), 4)
}

func TestRunHeaderOnly(t *testing.T) {
	t.Parallel()
	broken := strings.Replace(testdata(t, "fulltilt", "cash_showdown.txt"), "Charlie bets $4", "Charlie dances", 1)
	r := testRunner(t, 2)
	r.HeaderOnly = true

	report, err := r.Run(context.Background(), Inputs(broken, testdata(t, "pokerstars", "cash_walk.txt")))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Parsed)
	assert.Empty(t, report.Hands())
	headers := report.Headers()
	require.Len(t, headers, 2)
	assert.Equal(t, "Boxer", headers[0].TableName)
}

func TestRunFailFast(t *testing.T) {
	t.Parallel()
	r := testRunner(t, 1)
	r.FailFast = true

	inputs := Inputs("garbage", testdata(t, "fulltilt", "hand1.txt"))
	report, err := r.Run(context.Background(), inputs)
	require.Error(t, err)
	assert.ErrorIs(t, err, handhistory.ErrUnknownRoom)
	assert.Contains(t, err.Error(), "hand 1")
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Parsed)
	assert.Equal(t, 1, report.Skipped)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := testRunner(t, 4).Run(ctx, Inputs(testdata(t, "fulltilt", "hand1.txt")))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Hands())
}

// slowDialect advances the mock clock while parsing so batch timing is
// deterministic.
type slowDialect struct {
	handhistory.Dialect
	clock *quartz.Mock
}

func (s slowDialect) ParseBody(text string, header handhistory.Header) (handhistory.Body, error) {
	s.clock.Advance(250 * time.Millisecond)
	return s.Dialect.ParseBody(text, header)
}

func TestRunElapsed(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	start := time.Date(2014, 2, 2, 12, 0, 0, 0, time.UTC)
	clock.Set(start)

	ftp, err := rooms.Default().Lookup("Full Tilt Poker")
	require.NoError(t, err)
	r := &Runner{
		Registry: rooms.New(slowDialect{Dialect: ftp, clock: clock}),
		Workers:  1,
		Logger:   log.New(io.Discard),
		Clock:    clock,
	}

	hand := testdata(t, "fulltilt", "hand1.txt")
	report, err := r.Run(context.Background(), Inputs(hand, hand, hand, hand))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Parsed)
	assert.Equal(t, start, report.Started)
	assert.Equal(t, time.Second, report.Elapsed)
}
