// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardsmith/boardsmith/action"
	"github.com/boardsmith/boardsmith/command"
	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/flow"
	"github.com/boardsmith/boardsmith/player"
	"github.com/boardsmith/boardsmith/rng"
)

type fixtureCtx struct {
	tree    *element.Tree
	players *player.Collection
	ex      *command.Executor
	seat    int
}

func (c *fixtureCtx) Tree() *element.Tree            { return c.tree }
func (c *fixtureCtx) Players() *player.Collection    { return c.players }
func (c *fixtureCtx) Executor() *command.Executor    { return c.ex }
func (c *fixtureCtx) Seat() int                      { return c.seat }

func newFixture(t *testing.T) *fixtureCtx {
	t.Helper()
	tree := element.New()
	players := player.New([]string{"alice", "bob"})
	ex := command.New(tree, players, rng.New(7))
	return &fixtureCtx{tree: tree, players: players, ex: ex}
}

func drawAction() action.Action {
	return action.Action{
		Name: "draw",
		Execute: func(args action.Args, ctx action.Context) error {
			root := ctx.Tree().Root()
			return ctx.Executor().SetAttribute(root, "draws", 1)
		},
	}
}

func registry(actions ...action.Action) flow.ActionLookup {
	byName := make(map[string]action.Action, len(actions))
	for _, a := range actions {
		byName[a.Name] = a
	}
	return func(name string) (action.Action, bool) {
		a, ok := byName[name]
		return a, ok
	}
}

// TestSequenceRunsToCompletion grounds a plain sequence of set-var, an
// action-step, and execute, end to end.
func TestSequenceRunsToCompletion(t *testing.T) {
	ctx := newFixture(t)
	require.NoError(t, ctx.ex.SetCurrentPlayer(0))

	var executed bool
	root := &flow.Node{Type: flow.Sequence, SequenceNode: &flow.SequenceNode{Steps: []*flow.Node{
		{Type: flow.SetVar, SetVarNode: &flow.SetVarNode{Name: "round", Value: 1}},
		{Type: flow.ActionStep, ActionStepNode: &flow.ActionStepNode{Actions: []string{"draw"}}},
		{Type: flow.Execute, ExecuteNode: &flow.ExecuteNode{Fn: func(flow.Context) { executed = true }}},
	}}}

	e := flow.New(root, registry(drawAction()))
	require.NoError(t, e.Start(ctx))
	require.NotNil(t, e.Awaiting())
	assert.Equal(t, 0, e.Awaiting().Player)
	assert.Equal(t, []string{"draw"}, e.Awaiting().Actions)

	require.NoError(t, e.Resume(ctx, "draw", action.Args{}, 0))
	assert.True(t, e.Done())
	assert.True(t, executed)

	drawn, ok := ctx.tree.AtID(ctx.tree.Root()).Attr("draws")
	require.True(t, ok)
	assert.Equal(t, 1, drawn)
}

func eachPlayerDrawTree() *flow.Node {
	return &flow.Node{Type: flow.EachPlayer, EachPlayerNode: &flow.EachPlayerNode{
		Do: &flow.Node{Type: flow.ActionStep, ActionStepNode: &flow.ActionStepNode{Actions: []string{"draw"}}},
	}}
}

// TestRestoreReproducesPosition grounds spec §8 scenario 6: capturing a
// Position mid each-player loop and restoring it into a fresh Engine yields
// the same suspension point and the same outcome on resume.
func TestRestoreReproducesPosition(t *testing.T) {
	ctx := newFixture(t)
	lookup := registry(drawAction())
	root := eachPlayerDrawTree()

	e := flow.New(root, lookup)
	require.NoError(t, e.Start(ctx))
	require.NotNil(t, e.Awaiting())
	assert.Equal(t, 0, e.Awaiting().Player)

	require.NoError(t, e.Resume(ctx, "draw", action.Args{}, 0))
	require.NotNil(t, e.Awaiting(), "second player should now be awaited")
	assert.Equal(t, 1, e.Awaiting().Player)

	pos := e.Capture(ctx)
	assert.Equal(t, []int{1, 0}, pos.Path)

	restored, err := flow.Restore(eachPlayerDrawTree(), lookup, pos, ctx)
	require.NoError(t, err)
	require.NotNil(t, restored.Awaiting())
	assert.Equal(t, e.Awaiting().Player, restored.Awaiting().Player)
	assert.Equal(t, e.Awaiting().Actions, restored.Awaiting().Actions)

	require.NoError(t, restored.Resume(ctx, "draw", action.Args{}, 1))
	assert.True(t, restored.Done())
}

func TestSimultaneousStepCompletesWhenAllDone(t *testing.T) {
	ctx := newFixture(t)
	root := &flow.Node{Type: flow.SimultaneousActionStep, SimultaneousActionStepNode: &flow.SimultaneousActionStepNode{
		Actions: []string{"draw"},
	}}
	e := flow.New(root, registry(drawAction()))
	require.NoError(t, e.Start(ctx))
	require.NotNil(t, e.Awaiting())
	assert.True(t, e.Awaiting().Simultaneous)
	assert.ElementsMatch(t, []int{0, 1}, e.Awaiting().Players())

	require.NoError(t, e.Resume(ctx, "draw", action.Args{}, 0))
	assert.False(t, e.Done(), "only one of two players has acted")
	require.NoError(t, e.Resume(ctx, "draw", action.Args{}, 1))
	assert.True(t, e.Done())
}

func TestIterationCapReportsError(t *testing.T) {
	ctx := newFixture(t)
	n := 0
	root := &flow.Node{Type: flow.Loop, LoopNode: &flow.LoopNode{
		While: func(flow.Context) bool { n++; return true },
		Do:    &flow.Node{Type: flow.Execute, ExecuteNode: &flow.ExecuteNode{Fn: func(flow.Context) {}}},
	}}
	e := flow.New(root, registry())
	err := e.Start(ctx)
	require.Error(t, err)
	assert.Equal(t, flow.ErrStepCapExceeded, err)
}
