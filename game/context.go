// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package game is BoardSmith's facade: it composes the element tree, the
// player roster, the command executor, the action registry and the flow
// engine into one object a host can drive end to end — start the flow,
// perform actions, serialize a per-player view, save and restore (spec
// §4.5, §6).
package game

import (
	"github.com/boardsmith/boardsmith/command"
	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/player"
)

// seatContext is the action.Context / flow.Context a Game hands to node
// closures and action bodies, scoped to one acting seat.
type seatContext struct {
	g    *Game
	seat int
}

func (c seatContext) Tree() *element.Tree         { return c.g.tree }
func (c seatContext) Players() *player.Collection { return c.g.players }
func (c seatContext) Executor() *command.Executor { return c.g.executor }
func (c seatContext) Seat() int                   { return c.seat }
