// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package flow

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/boardsmith/boardsmith/action"
)

// Position is the engine's serializable coordinate: which branch was taken
// at every open frame, each loop/each-player/for-each frame's iteration
// count, the current player, and the flow variable bindings. It carries no
// function values, so it round-trips through JSON/YAML cleanly (spec §6).
type Position struct {
	Path        []int          `json:"path" yaml:"path"`
	Iterations  map[string]int `json:"iterations" yaml:"iterations"`
	PlayerIndex *int           `json:"playerIndex,omitempty" yaml:"playerIndex,omitempty"`
	Variables   map[string]any `json:"variables" yaml:"variables"`
}

func iterKey(depth int) string { return fmt.Sprintf("__iter_%d", depth) }

// Capture snapshots the engine's current coordinate. Capturing while
// Awaiting() is nil but Done() is false is a programmer error (there is no
// coordinate worth saving mid-tick); the engine never observably pauses in
// that state outside of run(), so callers only ever see it at a suspension
// or at completion.
func (e *Engine) Capture(ctx action.Context) Position {
	pos := Position{
		Iterations: map[string]int{},
		Variables:  make(map[string]any, len(e.vars)),
	}
	for i, f := range e.stack {
		pos.Path = append(pos.Path, f.selector)
		switch f.node.Type {
		case Loop, EachPlayer, ForEach:
			pos.Iterations[iterKey(i)] = f.iteration
		}
	}
	if cur := ctx.Players().Current(); cur != nil {
		seat := cur.Seat
		pos.PlayerIndex = &seat
	}
	for k, v := range e.vars {
		pos.Variables[k] = v
	}
	return pos
}

// Restore rebuilds the engine's stack from a previously captured Position,
// without re-running any node's side effects, then recomputes the awaiting
// input at the restored suspension point (spec §6, "restore must not
// re-execute executed nodes"). root and lookup must match the tree the
// Position was captured from.
func Restore(root *Node, lookup ActionLookup, pos Position, ctx action.Context) (*Engine, error) {
	e := New(root, lookup)
	e.vars = make(map[string]any, len(pos.Variables))
	for k, v := range pos.Variables {
		e.vars[k] = v
	}
	if pos.PlayerIndex != nil {
		if err := ctx.Players().SetCurrent(*pos.PlayerIndex); err != nil {
			return nil, errors.Wrap(err, "flow: restore current player")
		}
	}

	wrapped := e.wrap(ctx)
	cur := root
	for depth, selector := range pos.Path {
		f := &frame{node: cur, entered: true, selector: selector}
		if iter, ok := pos.Iterations[iterKey(depth)]; ok {
			f.iteration = iter
		}
		switch cur.Type {
		case EachPlayer:
			if err := recomputeEachPlayerOrder(f, wrapped); err != nil {
				return nil, err
			}
		case ForEach:
			recomputeForEachCollection(f, wrapped)
		}
		e.stack = append(e.stack, f)

		child, err := childAt(cur, selector)
		if err != nil {
			return nil, errors.Wrapf(err, "flow: restore at depth %d", depth)
		}
		if child == nil {
			break
		}
		cur = child
	}

	if len(e.stack) == 0 {
		e.done = true
		return e, nil
	}
	top := e.stack[len(e.stack)-1]
	switch top.node.Type {
	case ActionStep:
		e.process(top, e.enterActionStep(top, wrapped))
	case SimultaneousActionStep:
		e.process(top, e.enterSimultaneous(top, wrapped))
	}
	return e, nil
}

func recomputeEachPlayerOrder(f *frame, ctx Context) error {
	n := f.node.EachPlayerNode
	order := make([]int, 0, ctx.Players().Len())
	for _, p := range ctx.Players().All() {
		if n.Filter == nil || n.Filter(p.Seat, ctx) {
			order = append(order, p.Seat)
		}
	}
	if n.Direction == Reverse {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	if n.StartingPlayer != nil {
		if start, ok := n.StartingPlayer(ctx); ok {
			order = rotateTo(order, start)
		}
	}
	f.playerOrder = order
	if f.selector >= len(order) {
		return errors.New("flow: restored each-player position out of range")
	}
	return nil
}

func recomputeForEachCollection(f *frame, ctx Context) {
	f.collection = f.node.ForEachNode.Collection(ctx)
	if f.selector < len(f.collection) {
		ctx.SetVar(f.node.ForEachNode.As, f.collection[f.selector])
	}
}

// childAt returns the child a frame's selector points to, or nil if node is
// a leaf. It must agree exactly with the push decisions enter/childDone
// make, since Restore uses it to replay a walk without calling conditions.
func childAt(node *Node, selector int) (*Node, error) {
	switch node.Type {
	case Sequence:
		steps := node.SequenceNode.Steps
		if selector < 0 || selector >= len(steps) {
			return nil, nil
		}
		return steps[selector], nil
	case Loop:
		return node.LoopNode.Do, nil
	case EachPlayer:
		return node.EachPlayerNode.Do, nil
	case ForEach:
		return node.ForEachNode.Do, nil
	case If:
		if selector == 0 {
			return node.IfNode.Then, nil
		}
		return node.IfNode.Else, nil
	case Switch:
		if selector < 0 {
			return node.SwitchNode.Default, nil
		}
		keys := sortedSwitchKeys(node.SwitchNode)
		if selector >= len(keys) {
			return nil, errors.Errorf("flow: switch selector %d out of range", selector)
		}
		return node.SwitchNode.Cases[keys[selector]], nil
	default:
		return nil, nil
	}
}
