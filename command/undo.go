// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package command

import "log/slog"

// UndoLastCommand undoes the most recently applied command by synthesizing
// and applying its inverse from the pre-state captured at apply time, then
// popping it from history. Returns false (leaving history untouched) if the
// log is empty or the last command is not invertible (SHUFFLE, START_GAME,
// END_GAME).
func (ex *Executor) UndoLastCommand() bool {
	if len(ex.history) == 0 {
		return false
	}
	last := ex.history[len(ex.history)-1]
	if !last.Type.Invertible() {
		return false
	}
	if err := ex.invert(last); err != nil {
		slog.Error("undo failed", "command", last.Type.String(), "error", err)
		return false
	}
	ex.history = ex.history[:len(ex.history)-1]
	return true
}

// UndoCommands undoes up to n commands in sequence, stopping at the first
// empty history or non-invertible command. Returns false if it could not
// undo all n; commands already undone stay undone (spec §4.2: "Undo failing
// mid-sequence leaves the caller with a partial rollback").
func (ex *Executor) UndoCommands(n int) bool {
	for i := 0; i < n; i++ {
		if !ex.UndoLastCommand() {
			return false
		}
	}
	return true
}

// invert applies the reverse mutation for c directly against the tree and
// player roster, bypassing the logging Executor.* methods (undo must not
// itself be recorded as a new command).
func (ex *Executor) invert(c Command) error {
	switch c.Type {
	case Create:
		p := c.CreateParams
		return ex.tree.Move(p.Created, ex.tree.Pile(), nil)
	case CreateMany:
		p := c.CreateManyParams
		for _, id := range p.Created {
			if err := ex.tree.Move(id, ex.tree.Pile(), nil); err != nil {
				return err
			}
		}
		return nil
	case Move:
		p := c.MoveParams
		pos := p.PrevPosition
		return ex.tree.Move(p.Element, p.PrevParent, &pos)
	case Remove:
		p := c.RemoveParams
		pos := p.PrevPosition
		return ex.tree.Move(p.Element, p.PrevParent, &pos)
	case SetAttribute:
		p := c.SetAttributeParams
		if p.PrevPresent {
			_, _, err := ex.tree.SetAttribute(p.Element, p.Key, p.PrevValue)
			return err
		}
		return ex.tree.DeleteAttribute(p.Element, p.Key)
	case SetVisibility:
		p := c.SetVisibilityParams
		_, err := ex.tree.SetExplicitVisibility(p.Element, p.Prev)
		return err
	case SetZoneVisibility:
		p := c.SetZoneVisibilityParams
		_, err := ex.tree.SetZoneVisibility(p.Element, p.Prev)
		return err
	case AddVisibleTo:
		p := c.AddVisibleToParams
		_, err := ex.tree.SetExplicitVisibility(p.Element, p.Prev)
		return err
	case SetOrder:
		p := c.SetOrderParams
		return ex.tree.SetOrder(p.Space, p.PrevOrder)
	case SetCurrentPlayer:
		p := c.SetCurrentPlayerParams
		if p.PrevHadSeat {
			return ex.players.SetCurrent(p.PrevSeat)
		}
		return ex.players.SetCurrent(-1)
	case Message:
		return nil // nothing to revert beyond popping the log entry
	default:
		return nil
	}
}
