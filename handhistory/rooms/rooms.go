// Package rooms picks the dialect that can parse a given hand history.
package rooms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokerhistory/handhistory"
	"github.com/lox/pokerhistory/handhistory/fulltilt"
	"github.com/lox/pokerhistory/handhistory/pokerstars"
)

// Registry is an ordered set of dialects. It is immutable once built.
type Registry struct {
	dialects []handhistory.Dialect
}

// New builds a registry trying dialects in the given order.
func New(dialects ...handhistory.Dialect) *Registry {
	return &Registry{dialects: slices.Clone(dialects)}
}

// Default knows every supported room.
func Default() *Registry {
	return New(fulltilt.Dialect{}, pokerstars.Dialect{})
}

// Dialects returns the registered dialects in detection order.
func (r *Registry) Dialects() []handhistory.Dialect {
	return slices.Clone(r.dialects)
}

// Names returns the room names.
func (r *Registry) Names() []string {
	names := make([]string, len(r.dialects))
	for i, d := range r.dialects {
		names[i] = d.Room()
	}
	return names
}

// Lookup finds a dialect by room name, ignoring case.
func (r *Registry) Lookup(room string) (handhistory.Dialect, error) {
	for _, d := range r.dialects {
		if strings.EqualFold(d.Room(), room) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", room, handhistory.ErrUnknownRoom)
}

// Only returns a registry restricted to the named rooms, keeping their order.
func (r *Registry) Only(rooms ...string) (*Registry, error) {
	out := &Registry{}
	for _, room := range rooms {
		d, err := r.Lookup(room)
		if err != nil {
			return nil, err
		}
		out.dialects = append(out.dialects, d)
	}
	return out, nil
}

// Detect returns the first dialect recognising text.
func (r *Registry) Detect(text string) (handhistory.Dialect, error) {
	for _, d := range r.dialects {
		if d.Detect(text) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no dialect for %q: %w", firstLine(text), handhistory.ErrUnknownRoom)
}

// New wraps text in a HandHistory using the detected dialect.
func (r *Registry) New(text string) (*handhistory.HandHistory, error) {
	d, err := r.Detect(text)
	if err != nil {
		return nil, err
	}
	return handhistory.New(d, text), nil
}

func firstLine(text string) string {
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			if len(line) > 60 {
				line = line[:60] + "..."
			}
			return line
		}
	}
	return ""
}
