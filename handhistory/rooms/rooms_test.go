package rooms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/handhistory/fulltilt"
	"github.com/lox/pokerhistory/handhistory/pokerstars"
)

func readHand(t *testing.T, path ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{".."}, path...)...))
	require.NoError(t, err)
	return string(data)
}

func TestDetect(t *testing.T) {
	t.Parallel()
	r := Default()
	tests := []struct {
		name string
		text string
		want handhistory.Dialect
	}{
		{"full tilt", readHand(t, "fulltilt", "testdata", "hand1.txt"), fulltilt.Dialect{}},
		{"pokerstars", readHand(t, "pokerstars", "testdata", "cash_walk.txt"), pokerstars.Dialect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := r.Detect(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)

			hh, err := r.New(tt.text)
			require.NoError(t, err)
			require.NoError(t, hh.Parse())
			assert.Equal(t, handhistory.FullyParsed, hh.Phase())
		})
	}
}

func TestDetectUnknownRoom(t *testing.T) {
	t.Parallel()
	_, err := Default().Detect("Winamax Poker - Tournament \"Freeroll\" buyIn: 0€")
	assert.ErrorIs(t, err, handhistory.ErrUnknownRoom)

	_, err = Default().New("")
	assert.ErrorIs(t, err, handhistory.ErrUnknownRoom)
}

func TestOnly(t *testing.T) {
	t.Parallel()
	r, err := Default().Only("pokerstars")
	require.NoError(t, err)
	assert.Equal(t, []string{"PokerStars"}, r.Names())

	_, err = r.Detect(readHand(t, "fulltilt", "testdata", "hand1.txt"))
	assert.ErrorIs(t, err, handhistory.ErrUnknownRoom)

	_, err = Default().Only("Party Poker")
	assert.ErrorIs(t, err, handhistory.ErrUnknownRoom)
}
