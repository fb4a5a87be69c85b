// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package action

import (
	"regexp"

	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/player"
)

// Type is the closed set of pick shapes spec §3 names.
type Type int

const (
	ChoicePick Type = iota
	ElementPick
	ElementsPick
	PlayerPick
	NumberPick
	TextPick
)

// FilterBy narrows a later pick's domain to values whose Key equals the
// value chosen for an earlier pick (or, if that earlier value is a map,
// its [Key]).
type FilterBy struct {
	Key      string
	PickName string
}

// MultiSelect marks a pick as expecting an array value, with bounds that may
// themselves depend on earlier picks (spec: "multiSelect may itself be a
// function of context").
type MultiSelect struct {
	Min func(ctx Context, args Args) int
	Max func(ctx Context, args Args) int
}

// ConstBounds builds a MultiSelect with fixed min/max.
func ConstBounds(min, max int) *MultiSelect {
	return &MultiSelect{
		Min: func(Context, Args) int { return min },
		Max: func(Context, Args) int { return max },
	}
}

// Repeat collects values into an ordered sequence until Until reports true
// or Max values have been collected.
type Repeat struct {
	Until func(value any, collected []any, ctx Context, args Args) bool
	Max   int
}

// Pick is one atomic input a player must supply when performing an action.
// Picks are ordered; later picks may reference earlier values via FilterBy
// or DependsOn.
type Pick struct {
	Name          string
	Type          Type
	Prompt        string
	Optional      bool
	MultiSelect   *MultiSelect
	Repeat        *Repeat
	FilterBy      *FilterBy
	DependsOn     string
	SkipIfOnlyOne bool
	Validate      func(value any, args Args, ctx Context) (bool, string)

	// Choice domain.
	Choices func(ctx Context, args Args) []any

	// Player domain.
	PlayerFilter func(p *player.Player, args Args, ctx Context) bool

	// Element/Elements domain.
	ElementSource func(ctx Context, args Args) []*element.Element
	ElementClass  string
	ElementFilter func(e *element.Element, args Args, ctx Context) bool

	// Text constraints.
	MinLen, MaxLen int
	Pattern        *regexp.Regexp

	// Number constraints.
	Min, Max *float64
	Integer  bool
}

// RepeatDone reports whether a repeating pick should stop collecting more
// values after value was just added to collected.
func (p Pick) RepeatDone(value any, collected []any, ctx Context, args Args) bool {
	if p.Repeat == nil {
		return true
	}
	if p.Repeat.Max > 0 && len(collected) >= p.Repeat.Max {
		return true
	}
	if p.Repeat.Until != nil {
		return p.Repeat.Until(value, collected, ctx, args)
	}
	return false
}

// HasEnumerableDomain reports whether this pick type has a computable
// domain at all. Text and number picks are validated at submission instead
// (spec §4.3).
func (p Pick) HasEnumerableDomain() bool {
	return p.Type == ChoicePick || p.Type == ElementPick || p.Type == ElementsPick || p.Type == PlayerPick
}
