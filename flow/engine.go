// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package flow

import (
	"github.com/pkg/errors"

	"github.com/boardsmith/boardsmith/action"
)

// maxSteps bounds a single run() call: a misbehaving While/loop condition
// must not hang the host forever (spec §4.4, "a runaway loop must fail
// loudly rather than hang the process").
const maxSteps = 10000

// ErrStepCapExceeded is returned when a single resume/start tick chain
// exceeds maxSteps without reaching completion or suspension.
var ErrStepCapExceeded = errors.New("flow: exceeded maximum step count without suspending")

// Engine walks a Node tree, suspending at action-step and
// simultaneous-action-step nodes until the host supplies player input via
// Resume.
type Engine struct {
	root   *Node
	stack  []*frame
	vars   map[string]any
	lookup ActionLookup

	maxSteps int

	awaiting *AwaitingInput
	done     bool
}

// New builds an Engine rooted at root, resolving action-step/
// simultaneous-action-step node Actions names through lookup. The step cap
// defaults to maxSteps; override it with SetMaxSteps (e.g. from a host's
// loaded config.Config) before calling Start.
func New(root *Node, lookup ActionLookup) *Engine {
	return &Engine{root: root, vars: map[string]any{}, lookup: lookup, maxSteps: maxSteps}
}

// SetMaxSteps overrides the per-run() step cap. n <= 0 is ignored, leaving
// the previous cap in place.
func (e *Engine) SetMaxSteps(n int) {
	if n > 0 {
		e.maxSteps = n
	}
}

// Done reports whether the tree has run to completion.
func (e *Engine) Done() bool { return e.done }

// Awaiting returns the current suspension point, or nil if the engine is
// running or finished.
func (e *Engine) Awaiting() *AwaitingInput { return e.awaiting }

// wrap builds the concrete Context the node closures see, layering this
// engine's variables over the caller-supplied base action.Context. The
// seat the base context carries is irrelevant here; each-player,
// action-step and simultaneous-action-step nodes reseat it as needed via
// withSeat.
func (e *Engine) wrap(ctx action.Context) Context {
	return &engineContext{Context: ctx, vars: e.vars}
}

// Start pushes the root node and runs until the first suspension or
// completion.
func (e *Engine) Start(base action.Context) error {
	if len(e.stack) != 0 {
		return errors.New("flow: engine already started")
	}
	e.push(e.root)
	return e.run(e.wrap(base))
}

// Resume supplies the result of one player's chosen action at the current
// suspension point and runs until the next suspension or completion. actor
// is required for a simultaneous step (it names which awaited player just
// acted) and ignored for a plain action-step.
func (e *Engine) Resume(base action.Context, actionName string, args action.Args, actor int) error {
	if e.awaiting == nil {
		return errors.New("flow: engine is not awaiting input")
	}
	if len(e.stack) == 0 {
		return errors.New("flow: engine has no active frame")
	}
	ctx := e.wrap(base)
	top := e.stack[len(e.stack)-1]

	var seat int
	switch top.node.Type {
	case ActionStep:
		seat = e.awaiting.Player
	case SimultaneousActionStep:
		seat = actor
		if _, ok := e.awaiting.PlayerActions[seat]; !ok {
			return errors.Errorf("flow: seat %d is not awaited", seat)
		}
		if e.awaiting.Done[seat] {
			return errors.Errorf("flow: seat %d has already finished this step", seat)
		}
	default:
		return errors.New("flow: current frame is not an action step")
	}

	a, ok := e.lookup(actionName)
	if !ok {
		return errors.Errorf("flow: no such action %q", actionName)
	}
	allowed := e.awaiting.Actions
	if top.node.Type == SimultaneousActionStep {
		allowed = e.awaiting.PlayerActions[seat]
	}
	if !contains(allowed, actionName) {
		return errors.Errorf("flow: action %q is not available to seat %d", actionName, seat)
	}

	if err := action.Perform(a, args, withSeat(ctx, seat)); err != nil {
		// Position is unchanged: the same AwaitingInput stays active so the
		// host can re-prompt (spec §7, "action failures preserve position").
		return err
	}

	var outcome stepOutcome
	if top.node.Type == ActionStep {
		outcome = e.afterAction(top, ctx, seat)
	} else {
		outcome = e.afterSimultaneousAction(top, ctx, e.awaiting, seat)
	}
	e.awaiting = nil
	e.process(top, outcome)
	return e.run(ctx)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func (e *Engine) push(n *Node) {
	e.stack = append(e.stack, &frame{node: n})
}

func (e *Engine) pop() *frame {
	top := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return top
}

// process applies a stepOutcome to the frame that produced it.
func (e *Engine) process(f *frame, outcome stepOutcome) {
	switch {
	case outcome.await != nil:
		e.awaiting = outcome.await
	case outcome.push != nil:
		e.push(outcome.push)
	case outcome.complete:
		f.completed = true
	}
}

// run drives the stack until it empties (done), a node suspends (awaiting),
// or maxSteps ticks pass without either.
func (e *Engine) run(ctx Context) error {
	for steps := 0; ; steps++ {
		if steps > e.maxSteps {
			return ErrStepCapExceeded
		}
		if len(e.stack) == 0 {
			e.done = true
			return nil
		}
		top := e.stack[len(e.stack)-1]
		if top.completed {
			e.pop()
			if len(e.stack) == 0 {
				e.done = true
				return nil
			}
			parent := e.stack[len(e.stack)-1]
			e.process(parent, e.childDone(parent, ctx))
			continue
		}
		if !top.entered {
			top.entered = true
			e.process(top, e.enter(top, ctx))
			if e.awaiting != nil {
				return nil
			}
			continue
		}
		// Entered and not completed: the top frame is an action step that
		// Resume has just suspended again (process already set e.awaiting),
		// so there is nothing more to run.
		return nil
	}
}
