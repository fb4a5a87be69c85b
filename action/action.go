// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package action

// Action is a named, validated, player-initiated operation that emits
// commands. It is purely declarative: side effects live only in Execute.
type Action struct {
	Name      string
	Prompt    string
	Condition func(ctx Context) bool
	Picks     []Pick
	Execute   func(args Args, ctx Context) error
	Undoable  bool
}

// IsAvailable reports whether a may currently be performed: its Condition
// (if any) must hold, and every non-optional pick must have a non-empty
// domain (spec §4.3). Text and number picks are always considered non-empty.
// A filter panic is converted into a returned error naming the offending
// pick rather than propagating, so callers probing availability across many
// actions never crash on one bad filter (spec §8 scenario 5).
func IsAvailable(a Action, ctx Context) (bool, error) {
	if a.Condition != nil && !a.Condition(ctx) {
		return false, nil
	}
	for _, p := range a.Picks {
		if p.Optional || !p.HasEnumerableDomain() {
			continue
		}
		domain, err := Domain(p, ctx, Args{})
		if err != nil {
			return false, err
		}
		if len(domain) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// Available filters a set of actions down to those IsAvailable accepts for
// ctx's acting player. Actions whose availability check errors are treated
// as unavailable but logged by the caller via the returned error map being
// non-empty for that name would be the caller's job; Available itself drops
// them silently since a host listing available actions has no pick-level
// slot to surface the error into.
func Available(actions []Action, ctx Context) []Action {
	var out []Action
	for _, a := range actions {
		if ok, err := IsAvailable(a, ctx); ok && err == nil {
			out = append(out, a)
		}
	}
	return out
}
