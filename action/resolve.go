// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package action

import (
	"github.com/pkg/errors"

	"github.com/boardsmith/boardsmith/element"
)

// Resolve converts wire-shaped argument values (seat indices, element ids)
// into the objects the action's Execute body expects. This is the sole
// serialization boundary the action system crosses (spec §4.3): a player
// pick with a numeric value becomes the *player.Player, an element pick
// with a numeric value becomes the *element.Element.
func Resolve(picks []Pick, raw Args, ctx Context) (Args, error) {
	out := make(Args, len(raw))
	for _, p := range picks {
		v, ok := raw[p.Name]
		if !ok {
			continue
		}
		resolved, err := resolveOne(p, v, ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "action: resolve pick %q", p.Name)
		}
		out[p.Name] = resolved
	}
	return out, nil
}

func resolveOne(p Pick, v any, ctx Context) (any, error) {
	multi := isMultiSelect(p)
	if multi {
		items, ok := v.([]any)
		if !ok {
			return nil, errors.Errorf("expected array value for multi-select pick")
		}
		out := make([]any, len(items))
		for i, item := range items {
			r, err := resolveScalar(p, item, ctx)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}
	return resolveScalar(p, v, ctx)
}

func resolveScalar(p Pick, v any, ctx Context) (any, error) {
	switch p.Type {
	case PlayerPick:
		if seat, ok := asInt(v); ok {
			return ctx.Players().BySeat(seat)
		}
		return v, nil
	case ElementPick, ElementsPick:
		if id, ok := asInt(v); ok {
			e := ctx.Tree().AtID(element.ID(id))
			if e == nil {
				return nil, errors.Errorf("unknown element id %d", id)
			}
			return e, nil
		}
		return v, nil
	default:
		return v, nil
	}
}

func isMultiSelect(p Pick) bool {
	return p.MultiSelect != nil || p.Type == ElementsPick || p.Repeat != nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case element.ID:
		return int(n), true
	default:
		return 0, false
	}
}
