// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package element_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardsmith/boardsmith/element"
)

func TestCreateRefusesSpaceInsidePiece(t *testing.T) {
	tree := element.New()
	piece, err := tree.CreatePiece(tree.Root(), "Token", "", nil)
	require.NoError(t, err)

	_, err = tree.CreateSpace(piece.ID(), "Space", "inner")
	assert.Error(t, err)
}

func TestStackingOrderPrependsNewChildren(t *testing.T) {
	tree := element.New()
	cascade, err := tree.CreateSpace(tree.Root(), "Cascade", "c1")
	require.NoError(t, err)
	require.NoError(t, tree.SetOrder(cascade.ID(), element.OrderStacking))

	first, err := tree.CreatePiece(cascade.ID(), "Card", "first", nil)
	require.NoError(t, err)
	second, err := tree.CreatePiece(cascade.ID(), "Card", "second", nil)
	require.NoError(t, err)

	children := tree.AtID(cascade.ID()).Children()
	assert.Equal(t, []element.ID{second.ID(), first.ID()}, children)
}

func TestMoveRefusesCycle(t *testing.T) {
	tree := element.New()
	outer, err := tree.CreateSpace(tree.Root(), "Space", "outer")
	require.NoError(t, err)
	inner, err := tree.CreateSpace(outer.ID(), "Space", "inner")
	require.NoError(t, err)

	err = tree.Move(outer.ID(), inner.ID(), nil)
	assert.Error(t, err)
}

func TestRemoveSendsElementToPile(t *testing.T) {
	tree := element.New()
	card, err := tree.CreatePiece(tree.Root(), "Card", "ace", nil)
	require.NoError(t, err)

	require.NoError(t, tree.Remove(card.ID()))

	moved := tree.AtID(card.ID())
	require.NotNil(t, moved, "id stays resolvable after Remove, per the arena invariant")
	assert.Equal(t, tree.Pile(), moved.Parent())
}

func TestEffectiveVisibilityFallsBackToZoneThenDefault(t *testing.T) {
	tree := element.New()
	hand, err := tree.CreateHand(tree.Root(), "Hand", "alice-hand", 0)
	require.NoError(t, err)
	_, err = tree.SetZoneVisibility(hand.ID(), &element.Visibility{Mode: element.Hidden})
	require.NoError(t, err)
	card, err := tree.CreateCard(hand.ID(), "Card", "ace", nil)
	require.NoError(t, err)

	assert.Equal(t, element.Hidden, tree.EffectiveVisibility(card.ID()).Mode)
	assert.Equal(t, element.All, tree.EffectiveVisibility(hand.ID()).Mode,
		"a zone rule governs descendants, not the zone element itself")
}

func TestIsVisibleToResolvesOwnerFromNearestOwnedAncestor(t *testing.T) {
	tree := element.New()
	hand, err := tree.CreateHand(tree.Root(), "Hand", "alice-hand", 0)
	require.NoError(t, err)
	_, err = tree.SetZoneVisibility(hand.ID(), &element.Visibility{Mode: element.Owner})
	require.NoError(t, err)
	card, err := tree.CreateCard(hand.ID(), "Card", "ace", nil)
	require.NoError(t, err)

	assert.True(t, tree.IsVisibleTo(card.ID(), 0), "card has no owner of its own, inherits the hand's")
	assert.False(t, tree.IsVisibleTo(card.ID(), 1))
}

func TestIsVisibleToExplicitOverrideWinsOverZone(t *testing.T) {
	tree := element.New()
	hand, err := tree.CreateHand(tree.Root(), "Hand", "alice-hand", 0)
	require.NoError(t, err)
	_, err = tree.SetZoneVisibility(hand.ID(), &element.Visibility{Mode: element.Owner})
	require.NoError(t, err)
	card, err := tree.CreateCard(hand.ID(), "Card", "revealed", nil)
	require.NoError(t, err)
	_, err = tree.SetExplicitVisibility(card.ID(), &element.Visibility{Mode: element.All})
	require.NoError(t, err)

	assert.True(t, tree.IsVisibleTo(card.ID(), 1))
}

func TestAllFindsByClassAndAttrs(t *testing.T) {
	tree := element.New()
	board, err := tree.CreateSpace(tree.Root(), "Board", "board")
	require.NoError(t, err)
	_, err = tree.CreateCard(board.ID(), "Card", "ace", map[string]any{"rank": 1})
	require.NoError(t, err)
	_, err = tree.CreateCard(board.ID(), "Card", "king", map[string]any{"rank": 13})
	require.NoError(t, err)
	_, err = tree.CreatePiece(board.ID(), "Token", "marker", nil)
	require.NoError(t, err)

	cards := tree.All(board.ID(), "Card", element.QueryContext{})
	assert.Len(t, cards, 2)

	kings := tree.All(board.ID(), "Card", element.QueryContext{}, element.ByAttrs(map[string]any{"rank": 13}))
	require.Len(t, kings, 1)
	assert.Equal(t, "king", kings[0].Name())
}

func TestByAttrsMineComparesAgainstCurrentPlayer(t *testing.T) {
	tree := element.New()
	hand, err := tree.CreateHand(tree.Root(), "Hand", "alice-hand", 0)
	require.NoError(t, err)
	_, err = tree.CreateCard(hand.ID(), "Card", "ace", nil)
	require.NoError(t, err)

	ctx := element.QueryContext{CurrentPlayer: 0, HasCurrentPlayer: true}
	mine := tree.All(tree.Root(), "", ctx, element.ByAttrs(map[string]any{"mine": true}))
	assert.Len(t, mine, 1, "the hand itself is owned by seat 0")

	ctxOther := element.QueryContext{CurrentPlayer: 1, HasCurrentPlayer: true}
	notMine := tree.All(tree.Root(), "", ctxOther, element.ByAttrs(map[string]any{"mine": true}))
	assert.Empty(t, notMine)
}

func TestFirstNAndLastNRespectTreeOrder(t *testing.T) {
	tree := element.New()
	deck, err := tree.CreateDeck(tree.Root(), "Deck", "deck")
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err := tree.CreateCard(deck.ID(), "Card", "", map[string]any{"rank": i})
		require.NoError(t, err)
	}

	first2 := tree.FirstN(deck.ID(), 2, "Card", element.QueryContext{})
	require.Len(t, first2, 2)
	r, _ := first2[0].Attr("rank")
	assert.Equal(t, 1, r)

	last2 := tree.LastN(deck.ID(), 2, "Card", element.QueryContext{})
	require.Len(t, last2, 2)
	r0, _ := last2[0].Attr("rank")
	assert.Equal(t, 5, r0, "LastN returns nearest-to-end first")
}

func TestCollectionSortByAndSum(t *testing.T) {
	tree := element.New()
	deck, err := tree.CreateDeck(tree.Root(), "Deck", "deck")
	require.NoError(t, err)
	for _, rank := range []int{3, 1, 2} {
		_, err := tree.CreateCard(deck.ID(), "Card", "", map[string]any{"rank": rank})
		require.NoError(t, err)
	}

	cards := tree.All(deck.ID(), "Card", element.QueryContext{})
	rankOf := func(e *element.Element) float64 {
		r, _ := e.Attr("rank")
		return float64(r.(int))
	}

	sorted := cards.SortBy(rankOf, true)
	require.Len(t, sorted, 3)
	r0, _ := sorted[0].Attr("rank")
	r2, _ := sorted[2].Attr("rank")
	assert.Equal(t, 1, r0)
	assert.Equal(t, 3, r2)

	assert.Equal(t, float64(6), cards.Sum(rankOf))
}

func TestCountOnlyZoneWithholdsChildrenButCount(t *testing.T) {
	tree := element.New()
	deck, err := tree.CreateDeck(tree.Root(), "Deck", "deck")
	require.NoError(t, err)
	_, err = tree.SetZoneVisibility(deck.ID(), &element.Visibility{Mode: element.CountOnly})
	require.NoError(t, err)
	_, err = tree.CreateCard(deck.ID(), "Card", "ace", nil)
	require.NoError(t, err)

	assert.False(t, tree.IsVisibleTo(tree.AtID(deck.ID()).Children()[0], 0))
}
