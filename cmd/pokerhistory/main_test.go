package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhistory/internal/archive"
	"github.com/lox/pokerhistory/internal/phh"
)

const starsHands = "../../handhistory/pokerstars/testdata/*.txt"

func testGlobals(t *testing.T) (*Globals, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	return &Globals{
		Config: filepath.Join(t.TempDir(), "missing.hcl"),
		Color:  "never",
		stdin:  strings.NewReader(""),
		stdout: &stdout,
		stderr: &stderr,
	}, &stdout, &stderr
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hand one\n\nhand two\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hand three\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.log"), []byte("ignored\n"), 0o644))

	inputs, err := readInputs([]string{filepath.Join(dir, "*.txt"), "-"}, strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 4)
	assert.Equal(t, filepath.Join(dir, "a.txt"), inputs[0].File)
	assert.Equal(t, 2, inputs[1].Index)
	assert.Equal(t, "hand three\n", inputs[2].Text)
	assert.Equal(t, "stdin#1", inputs[3].String())

	_, err = readInputs([]string{filepath.Join(dir, "nothing.txt")}, nil)
	assert.Error(t, err)
}

func TestSetupOverrides(t *testing.T) {
	g, _, _ := testGlobals(t)
	g.Workers = 7
	g.Rooms = []string{"pokerstars"}
	g.FailFast = true

	e, err := g.setup()
	require.NoError(t, err)
	assert.Equal(t, 7, e.runner.Workers)
	assert.True(t, e.runner.FailFast)
	assert.Equal(t, []string{"PokerStars"}, e.runner.Registry.Names())

	g.Workers = 1000
	_, err = g.setup()
	assert.ErrorContains(t, err, "workers")
}

func TestHeaderCmd(t *testing.T) {
	g, stdout, _ := testGlobals(t)
	require.NoError(t, (&HeaderCmd{Files: []string{starsHands}}).Run(g))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "PokerStars #149522700001")
	assert.Contains(t, lines[2], "tournament 1650839540 level I")
}

func TestShowCmd(t *testing.T) {
	g, stdout, _ := testGlobals(t)
	cmd := &ShowCmd{Files: []string{starsHands}, Limit: 1}
	require.NoError(t, cmd.Run(g))
	assert.Contains(t, stdout.String(), "Winners: Fay, Gus")
	assert.NotContains(t, stdout.String(), "149522700002")
}

func TestParseCmdReportsFailures(t *testing.T) {
	g, stdout, stderr := testGlobals(t)
	g.stdin = strings.NewReader("Nonsense Poker Hand #1\n")
	cmd := &ParseCmd{Files: []string{"-"}}

	err := cmd.Run(g)
	require.ErrorIs(t, err, errNoHands)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "FAIL stdin#1")
}

func TestParseCmdJSON(t *testing.T) {
	g, stdout, _ := testGlobals(t)
	require.NoError(t, (&ParseCmd{Files: []string{starsHands}}).Run(g))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"ident":"149522700001"`)
}

func TestExportSession(t *testing.T) {
	g, _, _ := testGlobals(t)
	out := filepath.Join(t.TempDir(), "stars.phhs")
	require.NoError(t, (&ExportCmd{Files: []string{starsHands}, Output: out}).Run(g))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	hands, err := phh.DecodeSession(f)
	require.NoError(t, err)
	require.Len(t, hands, 3)
	assert.Equal(t, "149522700001", hands[0].HandID)
	assert.Equal(t, "NT", hands[0].Variant)
}

func TestExportHands(t *testing.T) {
	g, _, _ := testGlobals(t)
	dir := t.TempDir()
	cmd := &ExportCmd{Files: []string{starsHands}, Output: dir, Format: "phh"}
	require.NoError(t, cmd.Run(g))

	data, err := os.ReadFile(filepath.Join(dir, "pokerstars-149522616624.phh"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `tournament = "1650839540"`)

	cmd.Format = "csv"
	assert.ErrorContains(t, cmd.Run(g), "unknown export format")
}

func TestStatsCmd(t *testing.T) {
	g, stdout, _ := testGlobals(t)
	require.NoError(t, (&StatsCmd{Files: []string{starsHands}}).Run(g))
	assert.Contains(t, stdout.String(), "3 hands")
	assert.Contains(t, stdout.String(), "PokerStars")
}

func TestCheckReport(t *testing.T) {
	assert.NoError(t, checkReport(archive.Report{Parsed: 1, Failed: 4}))
	assert.ErrorIs(t, checkReport(archive.Report{}), errNoHands)
}
