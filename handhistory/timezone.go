package handhistory

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // rooms print zone abbreviations, hosts may lack zoneinfo
)

// Zone abbreviations printed by poker rooms. Loaded once, read only after.
var zones = loadZones(map[string]string{
	"ET":   "America/New_York",
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"CT":   "America/Chicago",
	"PT":   "America/Los_Angeles",
	"MT":   "America/Denver",
	"AT":   "America/Halifax",
	"BRT":  "America/Sao_Paulo",
	"ART":  "America/Argentina/Buenos_Aires",
	"UTC":  "UTC",
	"GMT":  "UTC",
	"WET":  "Europe/Lisbon",
	"CET":  "Europe/Paris",
	"CEST": "Europe/Paris",
	"EET":  "Europe/Helsinki",
	"MSK":  "Europe/Moscow",
	"IST":  "Asia/Kolkata",
	"CCT":  "Asia/Shanghai",
	"JST":  "Asia/Tokyo",
	"AWST": "Australia/Perth",
	"ACST": "Australia/Adelaide",
	"AEST": "Australia/Sydney",
	"NZT":  "Pacific/Auckland",
})

func loadZones(names map[string]string) map[string]*time.Location {
	out := make(map[string]*time.Location, len(names))
	for abbrev, name := range names {
		loc, err := time.LoadLocation(name)
		if err != nil {
			panic(fmt.Sprintf("load zone %s: %v", name, err))
		}
		out[abbrev] = loc
	}
	return out
}

// Location resolves a room's zone abbreviation.
func Location(abbrev string) (*time.Location, error) {
	loc, ok := zones[strings.ToUpper(strings.TrimSpace(abbrev))]
	if !ok {
		return nil, VocabularyError("time zone", abbrev)
	}
	return loc, nil
}

// ParseLocalTime parses value with layout in the zone named by abbrev.
func ParseLocalTime(layout, value, abbrev string) (time.Time, error) {
	loc, err := Location(abbrev)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s time %q: %w", abbrev, value, err)
	}
	return t, nil
}
