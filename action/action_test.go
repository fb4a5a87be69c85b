// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardsmith/boardsmith/action"
	"github.com/boardsmith/boardsmith/command"
	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/player"
	"github.com/boardsmith/boardsmith/rng"
)

type fixtureCtx struct {
	tree    *element.Tree
	players *player.Collection
	ex      *command.Executor
	seat    int
}

func (c *fixtureCtx) Tree() *element.Tree              { return c.tree }
func (c *fixtureCtx) Players() *player.Collection       { return c.players }
func (c *fixtureCtx) Executor() *command.Executor       { return c.ex }
func (c *fixtureCtx) Seat() int                         { return c.seat }

func newFixture(t *testing.T) (*fixtureCtx, *element.Element, *element.Element) {
	t.Helper()
	tree := element.New()
	players := player.New([]string{"alice", "bob"})
	ex := command.New(tree, players, rng.New(1))
	root := tree.Root()
	board, err := ex.Create(root, element.KindSpace, "Space", "board", nil)
	require.NoError(t, err)
	a, err := ex.Create(board.ID(), element.KindPiece, "Piece", "a", nil)
	require.NoError(t, err)
	b, err := ex.Create(board.ID(), element.KindPiece, "Piece", "b", nil)
	require.NoError(t, err)
	return &fixtureCtx{tree: tree, players: players, ex: ex}, a, b
}

// Scenario 4 from spec §8: action with filter dependency.
func moveAction() action.Action {
	return action.Action{
		Name: "move",
		Picks: []action.Pick{
			{Name: "p", Type: action.ElementPick, ElementClass: "Piece"},
			{
				Name: "dest", Type: action.ElementPick, ElementClass: "Piece",
				ElementFilter: func(e *element.Element, args action.Args, ctx action.Context) bool {
					p, _ := args["p"].(*element.Element)
					return p == nil || e.ID() != p.ID()
				},
			},
		},
		Execute: func(args action.Args, ctx action.Context) error { return nil },
	}
}

func TestActionAvailableWithTwoElements(t *testing.T) {
	ctx, _, _ := newFixture(t)
	a := moveAction()
	ok, err := action.IsAvailable(a, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestActionRejectsSameElement(t *testing.T) {
	ctx, a, _ := newFixture(t)
	mv := moveAction()
	err := action.Perform(mv, action.Args{"p": int(a.ID()), "dest": int(a.ID())}, ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dest")
}

func TestActionSucceedsWithDistinctElements(t *testing.T) {
	ctx, a, b := newFixture(t)
	mv := moveAction()
	err := action.Perform(mv, action.Args{"p": int(a.ID()), "dest": int(b.ID())}, ctx)
	assert.NoError(t, err)
}

// Scenario 5 from spec §8: a crashing filter is reported, not panicked.
func TestCrashingFilterReportsDomainError(t *testing.T) {
	ctx, _, _ := newFixture(t)
	crashy := action.Action{
		Name: "crashy",
		Picks: []action.Pick{
			{
				Name: "p", Type: action.ElementPick, ElementClass: "Piece",
				ElementFilter: func(e *element.Element, args action.Args, ctx action.Context) bool {
					var m map[string]int
					return m["missing"] == args["p"].(int) // panics: args["p"] not set yet, nil-asserted as int
				},
			},
		},
	}
	ok, err := action.IsAvailable(crashy, ctx)
	assert.False(t, ok)
	require.Error(t, err)
	var domainErr *action.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "p", domainErr.Pick)
}
