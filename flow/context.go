// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package flow

import "github.com/boardsmith/boardsmith/action"

// Context is what every node closure (While, Condition, Fn, ...) sees: the
// same tree/players/executor view the action system uses, plus the flow's
// own variable store (spec §4.4, set-var/for-each bindings).
type Context interface {
	action.Context
	Var(name string) (any, bool)
	SetVar(name string, value any)
}

// ActionLookup resolves an action name referenced by an action-step or
// simultaneous-action-step node to its declarative Action. The flow package
// never holds a registry itself; the game facade owns that (flow must not
// import game, which composes flow).
type ActionLookup func(name string) (action.Action, bool)

// engineContext is the concrete Context the engine hands to node closures.
// It wraps a caller-supplied action.Context (scoped to whichever seat is
// acting, or seat 0 for board-wide predicates) and layers flow variables on
// top.
type engineContext struct {
	action.Context
	vars map[string]any
}

func (c *engineContext) Var(name string) (any, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c *engineContext) SetVar(name string, value any) {
	c.vars[name] = value
}
