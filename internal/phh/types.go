package phh

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HandHistory represents a single poker hand encoded in PHH format.
// Fields are flat so a hand can be written under a session section header.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Venue             string   `toml:"venue,omitempty"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []Amount `toml:"antes"`
	BlindsOrStraddles []Amount `toml:"blinds_or_straddles"`
	MinBet            Amount   `toml:"min_bet"`
	StartingStacks    []Amount `toml:"starting_stacks"`
	Winnings          []Amount `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Tournament        string   `toml:"tournament,omitempty"`
	Level             string   `toml:"level,omitempty"`
	Currency          string   `toml:"currency,omitempty"`
	TotalPot          Amount   `toml:"total_pot"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	TimeZoneAbbrev    string   `toml:"time_zone_abbreviation,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Board     []string  `toml:"-"`
	Timestamp time.Time `toml:"-"`
}

// Amount is an exact chip or money amount written as a bare TOML number.
type Amount struct {
	decimal.Decimal
}

func amount(d decimal.Decimal) Amount { return Amount{d} }

func (a Amount) MarshalTOML() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		a.Decimal = decimal.NewFromInt(v)
	case float64:
		a.Decimal = decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("phh: amount %q: %w", v, err)
		}
		a.Decimal = d
	default:
		return fmt.Errorf("phh: amount of type %T", v)
	}
	return nil
}
