// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package flow

import "sort"

// enter runs a freshly pushed frame's on-entry logic (spec §4.4's "on
// entry" column). It may push a child, complete the frame immediately, or
// suspend for input.
func (e *Engine) enter(f *frame, ctx Context) stepOutcome {
	switch f.node.Type {
	case Sequence:
		return e.enterSequence(f)
	case Loop:
		return e.enterLoop(f, ctx)
	case EachPlayer:
		return e.enterEachPlayer(f, ctx)
	case ForEach:
		return e.enterForEach(f, ctx)
	case If:
		return e.enterIf(f, ctx)
	case Switch:
		return e.enterSwitch(f, ctx)
	case Execute:
		f.node.ExecuteNode.Fn(ctx)
		return stepOutcome{complete: true}
	case SetVar:
		n := f.node.SetVarNode
		v := n.Value
		if n.ValueFn != nil {
			v = n.ValueFn(ctx)
		}
		ctx.SetVar(n.Name, v)
		return stepOutcome{complete: true}
	case ActionStep:
		return e.enterActionStep(f, ctx)
	case SimultaneousActionStep:
		return e.enterSimultaneous(f, ctx)
	default:
		return stepOutcome{complete: true}
	}
}

// childDone runs a frame's on-child-completion logic (spec §4.4's "on child
// completion" column), invoked once the frame's active pushed child has
// finished.
func (e *Engine) childDone(f *frame, ctx Context) stepOutcome {
	switch f.node.Type {
	case Sequence:
		f.selector++
		return e.enterSequence(f)
	case Loop:
		f.iteration++
		return e.enterLoop(f, ctx)
	case EachPlayer:
		f.selector++
		return e.continueEachPlayer(f, ctx)
	case ForEach:
		f.selector++
		return e.continueForEach(f, ctx)
	case If, Switch:
		return stepOutcome{complete: true}
	default:
		return stepOutcome{complete: true}
	}
}

func (e *Engine) enterSequence(f *frame) stepOutcome {
	steps := f.node.SequenceNode.Steps
	if f.selector >= len(steps) {
		return stepOutcome{complete: true}
	}
	return stepOutcome{push: steps[f.selector]}
}

func (e *Engine) loopShouldContinue(f *frame, ctx Context) bool {
	n := f.node.LoopNode
	if n.MaxIterations > 0 && f.iteration >= n.MaxIterations {
		return false
	}
	if n.While != nil && !n.While(ctx) {
		return false
	}
	return true
}

func (e *Engine) enterLoop(f *frame, ctx Context) stepOutcome {
	if !e.loopShouldContinue(f, ctx) {
		return stepOutcome{complete: true}
	}
	return stepOutcome{push: f.node.LoopNode.Do}
}

func (e *Engine) enterEachPlayer(f *frame, ctx Context) stepOutcome {
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
	f.selector = 0
	if len(order) == 0 {
		return stepOutcome{complete: true}
	}
	if err := ctx.Executor().SetCurrentPlayer(order[0]); err != nil {
		return stepOutcome{complete: true}
	}
	return stepOutcome{push: n.Do}
}

func (e *Engine) continueEachPlayer(f *frame, ctx Context) stepOutcome {
	if f.selector >= len(f.playerOrder) {
		return stepOutcome{complete: true}
	}
	if err := ctx.Executor().SetCurrentPlayer(f.playerOrder[f.selector]); err != nil {
		return stepOutcome{complete: true}
	}
	return stepOutcome{push: f.node.EachPlayerNode.Do}
}

func rotateTo(order []int, start int) []int {
	for i, seat := range order {
		if seat == start {
			return append(append([]int{}, order[i:]...), order[:i]...)
		}
	}
	return order
}

func (e *Engine) enterForEach(f *frame, ctx Context) stepOutcome {
	n := f.node.ForEachNode
	f.collection = n.Collection(ctx)
	f.selector = 0
	if len(f.collection) == 0 {
		return stepOutcome{complete: true}
	}
	f.savedVar, f.hadSavedVar = ctx.Var(n.As)
	ctx.SetVar(n.As, f.collection[0])
	return stepOutcome{push: n.Do}
}

func (e *Engine) continueForEach(f *frame, ctx Context) stepOutcome {
	n := f.node.ForEachNode
	if f.selector >= len(f.collection) {
		if f.hadSavedVar {
			ctx.SetVar(n.As, f.savedVar)
		}
		return stepOutcome{complete: true}
	}
	ctx.SetVar(n.As, f.collection[f.selector])
	return stepOutcome{push: n.Do}
}

func (e *Engine) enterIf(f *frame, ctx Context) stepOutcome {
	n := f.node.IfNode
	if n.Condition(ctx) {
		f.selector = 0
		return stepOutcome{push: n.Then}
	}
	if n.Else != nil {
		f.selector = 1
		return stepOutcome{push: n.Else}
	}
	return stepOutcome{complete: true}
}

// sortedSwitchKeys returns a switch node's case keys in a deterministic
// order, so the chosen branch can be captured as a stable index.
func sortedSwitchKeys(n *SwitchNode) []string {
	keys := make([]string, 0, len(n.Cases))
	for k := range n.Cases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Engine) enterSwitch(f *frame, ctx Context) stepOutcome {
	n := f.node.SwitchNode
	key := n.On(ctx)
	keys := sortedSwitchKeys(n)
	for i, k := range keys {
		if k == key {
			f.selector = i
			return stepOutcome{push: n.Cases[k]}
		}
	}
	if n.Default != nil {
		f.selector = -1
		return stepOutcome{push: n.Default}
	}
	return stepOutcome{complete: true}
}
