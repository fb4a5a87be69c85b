// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardsmith/boardsmith/action"
	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/flow"
	"github.com/boardsmith/boardsmith/game"
)

func drawAction() action.Action {
	return action.Action{
		Name: "draw",
		Execute: func(args action.Args, ctx action.Context) error {
			return ctx.Executor().SetAttribute(ctx.Tree().Root(), "draws", 1)
		},
	}
}

func twoActionStepTree() *flow.Node {
	return &flow.Node{Type: flow.Sequence, SequenceNode: &flow.SequenceNode{Steps: []*flow.Node{
		{Type: flow.ActionStep, ActionStepNode: &flow.ActionStepNode{Actions: []string{"draw"}}},
		{Type: flow.ActionStep, ActionStepNode: &flow.ActionStepNode{Actions: []string{"draw"}}},
	}}}
}

func newTestGame(t *testing.T) *game.Game {
	t.Helper()
	g := game.New([]string{"alice", "bob"}, 42)
	require.NoError(t, g.Executor().SetCurrentPlayer(0))
	g.RegisterAction(drawAction())
	return g
}

func TestStartFlowSuspendsOnFirstActionStep(t *testing.T) {
	g := newTestGame(t)
	g.SetFlow(twoActionStepTree())
	require.NoError(t, g.StartFlow())

	require.True(t, g.IsAwaitingInput())
	state := g.GetFlowState()
	assert.Equal(t, 0, state.Player)
	assert.True(t, g.CanPlayerAct(0))
	assert.False(t, g.CanPlayerAct(1))
}

func TestPerformActionAdvancesFlowToCompletion(t *testing.T) {
	g := newTestGame(t)
	g.SetFlow(twoActionStepTree())
	require.NoError(t, g.StartFlow())

	require.NoError(t, g.PerformAction("draw", action.Args{}, 0))
	require.True(t, g.IsAwaitingInput(), "second action-step should now await")
	require.NoError(t, g.PerformAction("draw", action.Args{}, 0))
	assert.True(t, g.IsFinished())
}

func TestEndGameRecordsWinners(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.EndGame([]int{1}))
	assert.True(t, g.IsFinished())
	assert.Equal(t, []int{1}, g.GetWinners())
}

// TestPerPlayerViewRedactsOwnedHand grounds spec §8 scenario 3: a hand
// zoned Owner is fully visible to its owner; everyone else gets the hand
// with its cards withheld and only their count.
func TestPerPlayerViewRedactsOwnedHand(t *testing.T) {
	g := newTestGame(t)
	tree := g.Tree()
	ex := g.Executor()

	board, err := ex.Create(tree.Root(), element.KindSpace, "Space", "board", nil)
	require.NoError(t, err)
	hand, err := tree.CreateHand(board.ID(), "Hand", "alice-hand", 0)
	require.NoError(t, err)
	require.NoError(t, ex.SetZoneVisibility(hand.ID(), &element.Visibility{Mode: element.Owner}))
	_, err = ex.Create(hand.ID(), element.KindCard, "Card", "ace", nil)
	require.NoError(t, err)

	ownerView := g.ToJSONForPlayer(0)
	handView := findChild(t, ownerView.Root, hand.ID())
	assert.Len(t, handView.Children, 1, "owner should see their own hand contents")

	otherView := g.ToJSONForPlayer(1)
	otherHandView := findChild(t, otherView.Root, hand.ID())
	assert.Empty(t, otherHandView.Children)
	assert.Equal(t, 1, otherHandView.HiddenChildren, "Owner mode emits a childCount to non-owners")
}

func findChild(t *testing.T, v game.ElementView, id element.ID) game.ElementView {
	t.Helper()
	if v.ID == int(id) {
		return v
	}
	for _, c := range v.Children {
		if found := findChild(t, c, id); found.ID == int(id) {
			return found
		}
	}
	return game.ElementView{}
}

// TestSaveRestoreReproducesState grounds spec §8 scenario 6 at the game
// facade level: saving mid-flow and restoring reproduces both the tree
// state and the flow suspension point.
func TestSaveRestoreReproducesState(t *testing.T) {
	g := newTestGame(t)
	flowRoot := twoActionStepTree()
	g.SetFlow(flowRoot)
	require.NoError(t, g.StartFlow())
	require.NoError(t, g.PerformAction("draw", action.Args{}, 0))

	saved := g.Save()
	restored, err := game.Restore(saved, twoActionStepTree(), []action.Action{drawAction()})
	require.NoError(t, err)

	require.True(t, restored.IsAwaitingInput())
	assert.Equal(t, g.GetFlowState().Player, restored.GetFlowState().Player)

	drawn, ok := restored.Tree().AtID(restored.Tree().Root()).Attr("draws")
	require.True(t, ok)
	assert.Equal(t, 1, drawn)

	require.NoError(t, restored.PerformAction("draw", action.Args{}, 0))
	assert.True(t, restored.IsFinished())
}
