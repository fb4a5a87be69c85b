// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package game

import "github.com/boardsmith/boardsmith/element"

// ElementView is the wire shape of one tree node, redacted for a specific
// observer per spec §4.1/§4.5: an element an observer cannot see at all is
// stubbed down to a placeholder (id, kind, class, and any system attributes,
// with Hidden set); a container an observer may see but not see into has its
// children replaced by HiddenChildren (a bare count).
type ElementView struct {
	ID     int    `json:"id"`
	Kind   string `json:"kind"`
	Class  string `json:"class,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`

	Name       string              `json:"name,omitempty"`
	Owner      *int                `json:"owner,omitempty"`
	Attrs      map[string]any      `json:"attrs,omitempty"`
	Visibility *element.Visibility `json:"visibility,omitempty"`

	Children       []ElementView `json:"children,omitempty"`
	HiddenChildren int           `json:"hiddenChildren,omitempty"`
}

// systemAttrs returns the subset of attrs whose keys are system-reserved
// (prefixed with "$"), always emitted regardless of visibility so the view
// layer can still render withheld containers (spec §6).
func systemAttrs(attrs map[string]any) map[string]any {
	var out map[string]any
	for k, v := range attrs {
		if len(k) > 0 && k[0] == '$' {
			if out == nil {
				out = make(map[string]any)
			}
			out[k] = v
		}
	}
	return out
}

// Snapshot is a full game view: either the omniscient view (ToJSON, built
// with no observer) used for logging/spectating with full knowledge, or one
// player's filtered view (ToJSONForPlayer).
type Snapshot struct {
	Root          ElementView `json:"root"`
	CurrentPlayer *int        `json:"currentPlayer,omitempty"`
	Finished      bool        `json:"finished"`
	Winners       []int       `json:"winners,omitempty"`
	CommandCount  int         `json:"commandCount"`
}

// ToJSON builds the omniscient snapshot: every element's full attrs and
// children, regardless of visibility. Intended for the host's own
// bookkeeping and replay verification, never for sending to a player.
func (g *Game) ToJSON() Snapshot {
	return g.snapshot(nil)
}

// ToJSONForPlayer builds seat's filtered view: elements and containers seat
// cannot see are redacted per the tree's visibility rules.
func (g *Game) ToJSONForPlayer(seat int) Snapshot {
	return g.snapshot(&seat)
}

func (g *Game) snapshot(observer *int) Snapshot {
	var cur *int
	if p := g.players.Current(); p != nil {
		seat := p.Seat
		cur = &seat
	}
	return Snapshot{
		Root:          buildView(g.tree, g.tree.Root(), observer),
		CurrentPlayer: cur,
		Finished:      g.IsFinished(),
		Winners:       g.winners,
		CommandCount:  g.executor.Len(),
	}
}

// buildView renders id and, recursively, its children, for observer
// (nil means omniscient).
func buildView(t *element.Tree, id element.ID, observer *int) ElementView {
	e := t.AtID(id)
	view := ElementView{ID: int(id), Kind: e.Kind().String()}

	visible := observer == nil || t.IsVisibleTo(id, *observer)
	if !visible {
		view.Class = e.Class()
		view.Hidden = true
		if attrs := systemAttrs(e.Attrs()); len(attrs) > 0 {
			view.Attrs = attrs
		}
		return view
	}

	view.Class = e.Class()
	view.Name = e.Name()
	if seat, ok := e.Owner(); ok {
		view.Owner = &seat
	}
	if attrs := e.Attrs(); len(attrs) > 0 {
		view.Attrs = attrs
	}
	if explicit, ok := e.ExplicitVisibility(); ok {
		view.Visibility = &explicit
	}

	children := e.Children()
	if len(children) == 0 {
		return view
	}

	zone, hasZone := e.ZoneVisibility()
	mode := element.All
	if hasZone {
		mode = zone.Mode
	}
	if observer == nil || mode == element.All || mode == element.Unordered {
		view.Children = make([]ElementView, len(children))
		for i, c := range children {
			view.Children[i] = buildView(t, c, observer)
		}
		return view
	}
	if mode == element.Owner {
		if seat, ok := e.Owner(); ok && *observer == seat {
			view.Children = make([]ElementView, len(children))
			for i, c := range children {
				view.Children[i] = buildView(t, c, observer)
			}
			return view
		}
		view.HiddenChildren = len(children)
		return view
	}
	if mode == element.CountOnly {
		view.Attrs = systemAttrs(e.Attrs())
		view.HiddenChildren = len(children)
		return view
	}
	// Hidden: children withheld entirely, count still emitted.
	view.HiddenChildren = len(children)
	return view
}
