// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package element

// Mode is the closed set of visibility rules an element or zone can carry.
type Mode int

const (
	// All means visible to every player except those in ExceptPlayers.
	All Mode = iota
	// Owner means visible only to the element's owning player.
	Owner
	// Hidden means visible to nobody (the owner included), except players
	// explicitly listed in AddPlayers.
	Hidden
	// CountOnly means hidden like Hidden, but the view builder emits a
	// child count instead of omitting the element's container nature.
	CountOnly
	// Unordered means visible like All, but the view layer may not rely on
	// child order (used for hands/piles rendered as an unordered set).
	Unordered
)

// Visibility is a rule governing who may see an element's contents. A Space
// can carry one as its zone default; any element (zone or not) can carry one
// as an explicit override.
type Visibility struct {
	Mode         Mode
	AddPlayers   []int // seats always allowed to see, regardless of Mode
	ExceptPlayers []int // seats excluded from an All rule
	Explicit     bool  // true if set directly on the element rather than inherited
}

// VisibleTo reports whether an observer at seat P may see an element whose
// effective owner is O (O may be nil for unowned elements) under rule r.
// Mirrors spec §4.1 "Visibility resolution" exactly: zone/explicit rule
// resolution happens in Tree.EffectiveVisibility; this function is the pure
// predicate once that rule has been found.
func VisibleTo(r Visibility, owner *int, observer int) bool {
	for _, p := range r.AddPlayers {
		if p == observer {
			return true
		}
	}
	switch r.Mode {
	case All, Unordered:
		for _, p := range r.ExceptPlayers {
			if p == observer {
				return false
			}
		}
		return true
	case Owner:
		return owner != nil && *owner == observer
	case Hidden, CountOnly:
		return false
	default:
		return false
	}
}

// defaultVisibility is applied when no explicit rule and no ancestor zone
// rule exists: visible to all, per spec invariant 4.
var defaultVisibility = Visibility{Mode: All}
