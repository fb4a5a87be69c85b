// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package action turns declarative Actions — named, validated,
// player-initiated operations built from typed Picks — into
// command-emitting executions, and exposes the data a host needs to prompt
// a player (spec §4.3).
package action

import (
	"github.com/boardsmith/boardsmith/command"
	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/player"
)

// Context is everything a condition, pick domain, filter, validator, or
// execute body can see: the tree, the roster, the command executor to emit
// mutations through, and the seat performing the action.
type Context interface {
	Tree() *element.Tree
	Players() *player.Collection
	Executor() *command.Executor
	Seat() int
}

// Args holds a pick name -> value map. Before resolution, element/player
// values may arrive as raw ids/seat numbers (the wire shape); after
// resolution (see Resolve) they are *element.Element / *player.Player.
type Args map[string]any
