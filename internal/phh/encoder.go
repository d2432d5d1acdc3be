package phh

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/lox/pokerhistory/handhistory"
)

// ErrUnsupportedVariant is returned for games PHH has no variant code for.
var ErrUnsupportedVariant = errors.New("phh: unsupported variant")

var variants = map[handhistory.Limit]map[handhistory.Game]string{
	handhistory.NoLimit: {
		handhistory.Holdem: "NT",
	},
	handhistory.PotLimit: {
		handhistory.Omaha: "PO",
	},
	handhistory.FixedLimit: {
		handhistory.Holdem:    "FT",
		handhistory.OmahaHiLo: "FO/8",
	},
}

// Variant returns the PHH variant code for a game and betting limit.
func Variant(game handhistory.Game, limit handhistory.Limit) (string, error) {
	if code, ok := variants[limit][game]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %s %s", ErrUnsupportedVariant, limit, game)
}

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSession writes hands as a .phhs session, one numbered section per hand.
func EncodeSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("phh: hand %s: %w", hand.HandID, err)
		}
	}
	return nil
}

// Decode reads one PHH hand.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return &hand, nil
}

// DecodeSession reads a .phhs session in section order.
func DecodeSession(r io.Reader) ([]*HandHistory, error) {
	sections := make(map[string]*HandHistory)
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: decode session: %w", err)
	}
	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ai, errA := strconv.Atoi(a)
		bi, errB := strconv.Atoi(b)
		if errA == nil && errB == nil {
			return ai - bi
		}
		return strings.Compare(a, b)
	})
	hands := make([]*HandHistory, 0, len(keys))
	for _, k := range keys {
		hands = append(hands, sections[k])
	}
	return hands, nil
}

// FormatAction converts one parsed action to a PHH action string. total is
// the player's commitment on the street after the action. It reports false
// for actions PHH records elsewhere, such as posts, wins and returned bets.
func FormatAction(player int, a handhistory.PlayerAction, total decimal.Decimal) (string, bool) {
	p := fmt.Sprintf("p%d", player)
	switch a.Action {
	case handhistory.ActionFold:
		return p + " f", true
	case handhistory.ActionCheck, handhistory.ActionCall:
		return p + " cc", true
	case handhistory.ActionBet, handhistory.ActionRaise:
		if !total.IsPositive() {
			return "", false
		}
		return fmt.Sprintf("%s cbr %s", p, total), true
	case handhistory.ActionMuck:
		return fmt.Sprintf("# %s mucks", p), true
	case handhistory.ActionPost, handhistory.ActionWin, handhistory.ActionReturn, handhistory.ActionThink, handhistory.ActionShow:
		return "", false
	default:
		return fmt.Sprintf("# %s %s", p, a.Action), true
	}
}
