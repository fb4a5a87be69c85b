// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package element

import "github.com/pkg/errors"

// Variant constructors are thin convenience wrappers over Create that also
// populate the kind-specific data (GridData/HexData/DieData). They exist so
// host code reads "create a grid cell at (r,c)" rather than threading
// GridData through a generic attrs map.

// CreateSpace creates a container element. Rolling a zone rule onto it is a
// separate call (SetZoneVisibility) since not every space is a zone.
func (t *Tree) CreateSpace(parent ID, class, name string) (*Element, error) {
	return t.Create(parent, KindSpace, class, name, nil)
}

// CreatePiece creates a leaf or piece-container element.
func (t *Tree) CreatePiece(parent ID, class, name string, attrs map[string]any) (*Element, error) {
	return t.Create(parent, KindPiece, class, name, attrs)
}

// CreateGrid creates a rows x cols grid space and its cells.
func (t *Tree) CreateGrid(parent ID, class, name string, rows, cols int) (*Element, error) {
	g, err := t.Create(parent, KindGrid, class, name, nil)
	if err != nil {
		return nil, err
	}
	g.grid = &GridData{Rows: rows, Cols: cols}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell, err := t.Create(g.id, KindGridCell, class+"Cell", "", nil)
			if err != nil {
				return g, err
			}
			cell.grid = &GridData{Row: r, Col: c}
		}
	}
	return g, nil
}

// CreateHexGrid creates a hex space; cells are added individually via
// CreateHexCell since hex layouts (rectangular, hexagonal, custom) vary.
func (t *Tree) CreateHexGrid(parent ID, class, name string) (*Element, error) {
	return t.Create(parent, KindHexGrid, class, name, nil)
}

// CreateHexCell creates a single axial-coordinate cell under a hex grid.
func (t *Tree) CreateHexCell(parent ID, class string, q, r int) (*Element, error) {
	c, err := t.Create(parent, KindHexCell, class, "", nil)
	if err != nil {
		return nil, err
	}
	c.hex = &HexData{Q: q, R: r}
	return c, nil
}

// CreateDie creates a die with the given number of sides, initial value 1.
func (t *Tree) CreateDie(parent ID, class, name string, sides int) (*Element, error) {
	d, err := t.Create(parent, KindDie, class, name, nil)
	if err != nil {
		return nil, err
	}
	d.die = &DieData{Value: 1, Sides: sides}
	return d, nil
}

// CreateDicePool creates a container of dice.
func (t *Tree) CreateDicePool(parent ID, class, name string) (*Element, error) {
	return t.Create(parent, KindDicePool, class, name, nil)
}

// CreateCard creates a card piece.
func (t *Tree) CreateCard(parent ID, class, name string, attrs map[string]any) (*Element, error) {
	return t.Create(parent, KindCard, class, name, attrs)
}

// CreateDeck creates a deck space (conventionally ordered, top card last).
func (t *Tree) CreateDeck(parent ID, class, name string) (*Element, error) {
	return t.Create(parent, KindDeck, class, name, nil)
}

// CreateHand creates a hand space owned by a seat.
func (t *Tree) CreateHand(parent ID, class, name string, owner int) (*Element, error) {
	h, err := t.Create(parent, KindHand, class, name, nil)
	if err != nil {
		return nil, err
	}
	h.owner = &owner
	return h, nil
}

// RollDie sets a die's face value using the given roll (1-based, <= sides).
// Returns the previous value so the command executor can invert the roll.
func (t *Tree) RollDie(id ID, value int) (prev int, err error) {
	e := t.nodes[id]
	if e == nil || e.die == nil {
		return 0, errors.Errorf("element: roll die: unknown or non-die element %d", id)
	}
	prev = e.die.Value
	e.die.Value = value
	return prev, nil
}
