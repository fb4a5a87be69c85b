// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package flow

import (
	"github.com/boardsmith/boardsmith/action"
)

// seatContext overrides Seat() on top of an existing Context, so the engine
// can compute availability or perform an action for a seat other than
// whichever one the caller's ambient Context happens to carry.
type seatContext struct {
	Context
	seat int
}

func (s seatContext) Seat() int { return s.seat }

func withSeat(ctx Context, seat int) Context { return seatContext{Context: ctx, seat: seat} }

func availableActionNames(names []string, ctx Context, lookup ActionLookup) []string {
	var out []string
	for _, name := range names {
		a, ok := lookup(name)
		if !ok {
			continue
		}
		if ok, err := action.IsAvailable(a, ctx); ok && err == nil {
			out = append(out, name)
		}
	}
	return out
}

func (e *Engine) enterActionStep(f *frame, ctx Context) stepOutcome {
	n := f.node.ActionStepNode
	if n.SkipIf != nil && n.SkipIf(ctx) {
		return stepOutcome{complete: true}
	}
	seat := ctx.Seat()
	if n.Player != nil {
		if s, ok := n.Player(ctx); ok {
			seat = s
			_ = ctx.Executor().SetCurrentPlayer(seat)
		}
	} else if cur := ctx.Players().Current(); cur != nil {
		seat = cur.Seat
	}
	f.hasActed = false
	names := availableActionNames(n.Actions, withSeat(ctx, seat), e.lookup)
	if len(names) == 0 {
		return stepOutcome{complete: true}
	}
	return stepOutcome{await: &AwaitingInput{Player: seat, Actions: names, Prompt: n.Prompt}}
}

// afterAction runs once Resume has performed the player's chosen action for
// a plain action-step, deciding whether to suspend again (RepeatUntil not
// yet satisfied) or complete.
func (e *Engine) afterAction(f *frame, ctx Context, actingSeat int) stepOutcome {
	n := f.node.ActionStepNode
	f.hasActed = true
	if n.RepeatUntil != nil && !n.RepeatUntil(ctx) {
		names := availableActionNames(n.Actions, withSeat(ctx, actingSeat), e.lookup)
		if len(names) > 0 {
			return stepOutcome{await: &AwaitingInput{Player: actingSeat, Actions: names, Prompt: n.Prompt}}
		}
	}
	return stepOutcome{complete: true}
}

func (e *Engine) enterSimultaneous(f *frame, ctx Context) stepOutcome {
	n := f.node.SimultaneousActionStepNode
	var seats []int
	if n.Players != nil {
		seats = n.Players(ctx)
	}
	if seats == nil {
		for _, p := range ctx.Players().All() {
			seats = append(seats, p.Seat)
		}
	}
	playerActions := make(map[int][]string, len(seats))
	done := make(map[int]bool, len(seats))
	anyOpen := false
	for _, seat := range seats {
		names := availableActionNames(n.Actions, withSeat(ctx, seat), e.lookup)
		playerActions[seat] = names
		if len(names) == 0 {
			done[seat] = true
		} else {
			anyOpen = true
		}
	}
	if !anyOpen {
		return stepOutcome{complete: true}
	}
	return stepOutcome{await: &AwaitingInput{
		Simultaneous: true, Prompt: n.Prompt, PlayerActions: playerActions, Done: done,
	}}
}

// afterSimultaneousAction runs once Resume has performed one player's
// action within a simultaneous-action-step, recomputing that player's
// remaining actions and the overall completion state.
func (e *Engine) afterSimultaneousAction(f *frame, ctx Context, awaiting *AwaitingInput, actor int) stepOutcome {
	n := f.node.SimultaneousActionStepNode
	names := availableActionNames(n.Actions, withSeat(ctx, actor), e.lookup)
	// Default: one action per player finishes that player's turn at this
	// step. A custom PlayerDone lets a step allow a player to act again
	// (e.g. "keep trading until you pass").
	finishedActor := true
	if n.PlayerDone != nil {
		finishedActor = n.PlayerDone(actor, ctx)
	}
	awaiting.PlayerActions[actor] = names
	awaiting.Done[actor] = finishedActor

	allDone := true
	if n.AllDone != nil {
		allDone = n.AllDone(ctx)
	} else {
		for _, seat := range awaiting.Players() {
			if !awaiting.Done[seat] {
				allDone = false
				break
			}
		}
	}
	if allDone {
		return stepOutcome{complete: true}
	}
	return stepOutcome{await: awaiting}
}
