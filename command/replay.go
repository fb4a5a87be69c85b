// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package command

import (
	"github.com/pkg/errors"

	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/player"
	"github.com/boardsmith/boardsmith/rng"
)

// Replay applies each command in order, in sequence order, starting from a
// known-empty tree built fresh for the given seed. Any failure aborts with
// the offending command identified. Because element ids are assigned from a
// monotonically increasing counter, replaying the same operations against a
// freshly-built tree reproduces the same ids the original run saw.
func Replay(players *player.Collection, seed uint64, cmds []Command) (*Executor, error) {
	tree := element.New()
	ex := New(tree, players, rng.New(seed))
	for _, c := range cmds {
		if err := ex.applyRecorded(c); err != nil {
			return ex, errors.Wrapf(err, "command: replay: command #%d (%s)", c.Seq, c.Type)
		}
	}
	return ex, nil
}

// applyRecorded re-runs a single previously-logged command's parameters
// through the normal (logging) Executor methods, so the replayed log is
// recaptured with fresh pre-state rather than trusting the original's.
func (ex *Executor) applyRecorded(c Command) error {
	switch c.Type {
	case Create:
		p := c.CreateParams
		_, err := ex.Create(p.Parent, p.Kind, p.Class, p.Name, p.Attrs)
		return err
	case CreateMany:
		p := c.CreateManyParams
		attrs := p.Attrs
		_, err := ex.CreateMany(p.Parent, p.Kind, p.Class, p.Name, p.Count, func(i int) map[string]any {
			if i < len(attrs) {
				return attrs[i]
			}
			return nil
		})
		return err
	case Move:
		p := c.MoveParams
		return ex.Move(p.Element, p.Destination, p.Position)
	case Remove:
		p := c.RemoveParams
		return ex.Remove(p.Element)
	case Shuffle:
		p := c.ShuffleParams
		return ex.Shuffle(p.Space)
	case SetAttribute:
		p := c.SetAttributeParams
		return ex.SetAttribute(p.Element, p.Key, p.Value)
	case SetVisibility:
		p := c.SetVisibilityParams
		return ex.SetVisibility(p.Element, p.Visibility)
	case SetZoneVisibility:
		p := c.SetZoneVisibilityParams
		return ex.SetZoneVisibility(p.Element, p.Visibility)
	case AddVisibleTo:
		p := c.AddVisibleToParams
		return ex.AddVisibleTo(p.Element, p.Players)
	case SetOrder:
		p := c.SetOrderParams
		return ex.SetOrder(p.Space, p.Order)
	case SetCurrentPlayer:
		p := c.SetCurrentPlayerParams
		return ex.SetCurrentPlayer(p.Seat)
	case Message:
		p := c.MessageParams
		return ex.Message(p.Text, p.Data)
	case StartGame:
		return ex.StartGame()
	case EndGame:
		p := c.EndGameParams
		return ex.EndGame(p.Winners)
	default:
		return errors.Errorf("command: replay: unknown command type %v", c.Type)
	}
}
