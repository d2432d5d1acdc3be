package phh_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/handhistory/fulltilt"
	"github.com/lox/pokerhistory/internal/phh"
)

func parseFullTilt(t *testing.T, name string) handhistory.Hand {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "handhistory", "fulltilt", "testdata", name))
	require.NoError(t, err)
	hand, err := handhistory.Parse(fulltilt.Dialect{}, string(data))
	require.NoError(t, err)
	return hand
}

func amounts(t *testing.T, got []phh.Amount, want ...string) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Truef(t, decimal.RequireFromString(w).Equal(got[i].Decimal), "index %d: want %s, got %s", i, w, got[i])
	}
}

func TestFromHandCashShowdown(t *testing.T) {
	t.Parallel()
	out, err := phh.FromHand(parseFullTilt(t, "cash_showdown.txt"))
	require.NoError(t, err)

	assert.Equal(t, "NT", out.Variant)
	assert.Equal(t, "Full Tilt Poker", out.Venue)
	assert.Equal(t, "Boxer", out.Table)
	assert.Equal(t, 6, out.SeatCount)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, out.Players)
	assert.Equal(t, []int{1, 2, 4}, out.Seats)
	amounts(t, out.BlindsOrStraddles, "0.5", "1", "0")
	amounts(t, out.Antes, "0", "0", "0")
	amounts(t, out.StartingStacks, "100", "85.5", "112.25")
	amounts(t, out.Winnings, "0", "0", "33.5")
	assert.Equal(t, []string{
		"d dh p1 ????",
		"d dh p2 KcQc",
		"d dh p3 AhKh",
		"p3 cbr 3",
		"p1 f",
		"p2 cc",
		"d db Kd7h2h",
		"p2 cc",
		"p3 cbr 4",
		"p2 cc",
		"d db Js",
		"p2 cc",
		"p3 cc",
		"d db 3c",
		"p2 cbr 10",
		"p3 cc",
		"p2 sm KcQc",
		"p3 sm AhKh",
	}, out.Actions)
	assert.Equal(t, []string{"Kd", "7h", "2h", "Js", "3c"}, out.Board)

	assert.Equal(t, "33728803082", out.HandID)
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, "07:27:42", out.Time)
	assert.Equal(t, "America/New_York", out.TimeZone)
	assert.Equal(t, "EST", out.TimeZoneAbbrev)
	assert.Equal(t, []int{2, 2, 2014}, []int{out.Day, out.Month, out.Year})
}

func TestFromHandTournament(t *testing.T) {
	t.Parallel()
	out, err := phh.FromHand(parseFullTilt(t, "hand1.txt"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"gamblie", "idanuTz1", "PtheProphet", "JohnyyR", "Popp1987",
		"Luckytobgood", "FatalRevange", "IgaziFerfi", "egis25",
	}, out.Players)
	amounts(t, out.BlindsOrStraddles, "10", "20", "0", "0", "0", "0", "0", "0", "0")
	assert.Equal(t, "255707037", out.Tournament)
	assert.Equal(t, "d dh p8 Ks9d", out.Actions[7])
	assert.Equal(t, []string{
		"p3 f",
		"p4 cbr 40",
		"p5 f",
		"p6 f",
		"p7 cbr 100",
		"p8 f",
		"p9 f",
		"p1 f",
		"p2 f",
		"p4 cc",
		"d db 8h4hTc",
		"p4 cc",
		"p7 cbr 120",
		"p4 f",
		"# p7 mucks",
	}, out.Actions[9:])
	assert.True(t, out.Winnings[6].Equal(decimal.NewFromInt(230)))
	assert.Equal(t, "EDT", out.TimeZoneAbbrev)
}

func TestFromHandUnsupportedVariant(t *testing.T) {
	t.Parallel()
	hand := parseFullTilt(t, "hand1.txt")
	hand.Game = handhistory.Razz
	_, err := phh.FromHand(hand)
	assert.True(t, errors.Is(err, phh.ErrUnsupportedVariant))
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()
	var hands []*phh.HandHistory
	for _, name := range []string{"hand1.txt", "turbo_sng.txt", "cash_showdown.txt"} {
		out, err := phh.FromHand(parseFullTilt(t, name))
		require.NoError(t, err)
		hands = append(hands, out)
	}

	var buf bytes.Buffer
	require.NoError(t, phh.EncodeSession(&buf, hands))
	assert.Contains(t, buf.String(), "[1]\n")
	assert.Contains(t, buf.String(), "\n[3]\n")

	decoded, err := phh.DecodeSession(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, len(hands))
	for i, want := range hands {
		got := decoded[i]
		assert.Equal(t, want.HandID, got.HandID)
		assert.Equal(t, want.Actions, got.Actions)
		assert.Equal(t, want.Players, got.Players)
		assert.True(t, want.TotalPot.Equal(got.TotalPot.Decimal), "hand %s total pot", want.HandID)
		for j := range want.StartingStacks {
			assert.True(t, want.StartingStacks[j].Equal(got.StartingStacks[j].Decimal), "hand %s stack %d", want.HandID, j)
		}
	}
}
