// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package element implements BoardSmith's hierarchical, addressable tree of
// game entities: spaces, pieces, grid cells, cards, dice, and the game root.
//
// The tree is arena-backed (Design Notes §9): an Element never holds a
// pointer to its parent or its children, only ids, and the Tree resolves
// those ids through a slab it owns. This is what lets Remove retire an
// element into the pile without invalidating any id that a Command or a
// Branch address already refers to.
package element

import (
	"github.com/pkg/errors"
)

// Hook is an enter/exit callback fired when a piece is moved into or out of
// a space, keyed by the space's class tag.
type Hook func(space, piece *Element)

// Tree owns every Element reachable from its root, plus a parallel "pile"
// subtree that receives removed pieces (spec invariant 1: the id→element
// mapping is total over those two trees).
type Tree struct {
	nodes   map[ID]*Element
	nextID  ID
	root    ID
	pile    ID
	onEnter map[string]Hook
	onExit  map[string]Hook
}

// New creates a Tree with a fresh Root element and an attached pile.
func New() *Tree {
	t := &Tree{
		nodes:   make(map[ID]*Element),
		onEnter: make(map[string]Hook),
		onExit:  make(map[string]Hook),
	}
	root := t.allocate(KindRoot, "Game", "", NoID, OrderNormal)
	t.root = root.id
	pile := t.allocate(KindSpace, "Pile", "pile", NoID, OrderStacking)
	t.pile = pile.id
	root.children = append(root.children, pile.id)
	return t
}

// Root returns the id of the tree's single root element.
func (t *Tree) Root() ID { return t.root }

// Pile returns the id of the off-tree subtree that receives removed pieces.
func (t *Tree) Pile() ID { return t.pile }

// OnEnter registers a hook fired whenever a piece is moved into a space of
// the given class tag.
func (t *Tree) OnEnter(class string, h Hook) { t.onEnter[class] = h }

// OnExit registers a hook fired whenever a piece is moved out of a space of
// the given class tag.
func (t *Tree) OnExit(class string, h Hook) { t.onExit[class] = h }

func (t *Tree) allocate(kind Kind, class, name string, parent ID, order Order) *Element {
	t.nextID++
	e := &Element{
		id:     t.nextID,
		kind:   kind,
		class:  class,
		name:   name,
		parent: parent,
		order:  order,
		attrs:  make(map[string]any),
	}
	t.nodes[e.id] = e
	return e
}

// AtID returns the element with the given id, searching both the live tree
// and the pile, or nil if none exists.
func (t *Tree) AtID(id ID) *Element {
	return t.nodes[id]
}

// Create allocates the next id, assigns class/name/attrs, and inserts the
// new element into parent's ordered children — appended unless parent's
// order is OrderStacking, in which case prepended. Refuses to create a
// Space-family kind inside a Piece (spec §4.1 invariant).
func (t *Tree) Create(parent ID, kind Kind, class, name string, attrs map[string]any) (*Element, error) {
	p := t.nodes[parent]
	if p == nil {
		return nil, errors.Errorf("element: create: unknown parent id %d", parent)
	}
	if kind.IsSpace() && p.kind == KindPiece {
		return nil, errors.Errorf("element: create: cannot create space-kind %s inside piece %d", kind, parent)
	}
	e := t.allocate(kind, class, name, parent, OrderNormal)
	for k, v := range attrs {
		e.attrs[k] = v
	}
	t.insertChild(p, e.id)
	return e, nil
}

// CreateMany creates n elements under parent using the same class/name and
// either a shared attrs map or a per-index attrs function.
func (t *Tree) CreateMany(parent ID, kind Kind, class, name string, n int, attrsAt func(i int) map[string]any) ([]*Element, error) {
	out := make([]*Element, 0, n)
	for i := 0; i < n; i++ {
		var attrs map[string]any
		if attrsAt != nil {
			attrs = attrsAt(i)
		}
		e, err := t.Create(parent, kind, class, name, attrs)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (t *Tree) insertChild(parent *Element, child ID) {
	if parent.order == OrderStacking {
		parent.children = append([]ID{child}, parent.children...)
	} else {
		parent.children = append(parent.children, child)
	}
}

// Move detaches piece from its current parent and attaches it to
// destination at position (default: first if destination is stacking, else
// last). Fires exit/enter hooks when the old/new parent is a space. Refuses
// to create a cycle.
func (t *Tree) Move(piece, destination ID, position *int) error {
	e := t.nodes[piece]
	if e == nil {
		return errors.Errorf("element: move: unknown element id %d", piece)
	}
	dest := t.nodes[destination]
	if dest == nil {
		return errors.Errorf("element: move: unknown destination id %d", destination)
	}
	if t.isAncestor(piece, destination) {
		return errors.Errorf("element: move: %d is an ancestor of destination %d (would cycle)", piece, destination)
	}

	oldParent := t.nodes[e.parent]
	if oldParent != nil {
		t.detach(oldParent, piece)
		if oldParent.kind.IsSpace() {
			if h, ok := t.onExit[oldParent.class]; ok {
				h(oldParent, e)
			}
		}
	}

	e.parent = destination
	if position != nil && *position >= 0 && *position <= len(dest.children) {
		children := append([]ID{}, dest.children[:*position]...)
		children = append(children, piece)
		children = append(children, dest.children[*position:]...)
		dest.children = children
	} else {
		t.insertChild(dest, piece)
	}

	if dest.kind.IsSpace() {
		if h, ok := t.onEnter[dest.class]; ok {
			h(dest, e)
		}
	}
	return nil
}

func (t *Tree) detach(parent *Element, child ID) {
	for i, c := range parent.children {
		if c == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

func (t *Tree) isAncestor(candidate, of ID) bool {
	cur := of
	for cur != NoID {
		if cur == candidate {
			return true
		}
		n := t.nodes[cur]
		if n == nil {
			return false
		}
		cur = n.parent
	}
	return false
}

// Remove moves piece to the pile at the game root. The id is never reused.
func (t *Tree) Remove(piece ID) error {
	return t.Move(piece, t.pile, nil)
}

// Shuffle permutes space's children in place using rng, without touching
// any id.
func (t *Tree) Shuffle(space ID, shuffle func(n int, swap func(i, j int))) error {
	s := t.nodes[space]
	if s == nil {
		return errors.Errorf("element: shuffle: unknown space id %d", space)
	}
	shuffle(len(s.children), func(i, j int) {
		s.children[i], s.children[j] = s.children[j], s.children[i]
	})
	return nil
}

// SetOrder changes a space's child-insertion discipline.
func (t *Tree) SetOrder(space ID, order Order) error {
	s := t.nodes[space]
	if s == nil {
		return errors.Errorf("element: set order: unknown space id %d", space)
	}
	s.order = order
	return nil
}

// SetAttribute sets a single attribute and returns the previous value (and
// whether it was present), so the command executor can synthesize an
// inverse.
func (t *Tree) SetAttribute(id ID, key string, value any) (prev any, hadPrev bool, err error) {
	e := t.nodes[id]
	if e == nil {
		return nil, false, errors.Errorf("element: set attribute: unknown element id %d", id)
	}
	prev, hadPrev = e.attrs[key]
	e.attrs[key] = value
	return prev, hadPrev, nil
}

// DeleteAttribute removes an attribute entirely (used to invert a
// SET_ATTRIBUTE command that created a key which did not previously exist).
func (t *Tree) DeleteAttribute(id ID, key string) error {
	e := t.nodes[id]
	if e == nil {
		return errors.Errorf("element: delete attribute: unknown element id %d", id)
	}
	delete(e.attrs, key)
	return nil
}

// SetExplicitVisibility sets (or clears, with nil) an element's own
// visibility override and returns the previous rule.
func (t *Tree) SetExplicitVisibility(id ID, v *Visibility) (prev *Visibility, err error) {
	e := t.nodes[id]
	if e == nil {
		return nil, errors.Errorf("element: set visibility: unknown element id %d", id)
	}
	prev = e.explicit
	if v != nil {
		vv := *v
		vv.Explicit = true
		e.explicit = &vv
	} else {
		e.explicit = nil
	}
	return prev, nil
}

// SetZoneVisibility sets (or clears) a space's zone default and returns the
// previous rule.
func (t *Tree) SetZoneVisibility(id ID, v *Visibility) (prev *Visibility, err error) {
	e := t.nodes[id]
	if e == nil {
		return nil, errors.Errorf("element: set zone: unknown element id %d", id)
	}
	prev = e.zone
	e.zone = v
	return prev, nil
}

// AddVisibleTo appends seats to an element's explicit AddPlayers list,
// creating an explicit Hidden-mode rule if none existed, and returns the
// previous rule so the executor can invert the command.
func (t *Tree) AddVisibleTo(id ID, seats []int) (prev *Visibility, err error) {
	e := t.nodes[id]
	if e == nil {
		return nil, errors.Errorf("element: add visible to: unknown element id %d", id)
	}
	prev = e.explicit
	var next Visibility
	if e.explicit != nil {
		next = *e.explicit
	} else {
		next = Visibility{Mode: Hidden}
	}
	next.Explicit = true
	next.AddPlayers = append(append([]int{}, next.AddPlayers...), seats...)
	e.explicit = &next
	return prev, nil
}

// SetOwner sets (or clears, with nil) an element's owning seat.
func (t *Tree) SetOwner(id ID, owner *int) (prev *int, err error) {
	e := t.nodes[id]
	if e == nil {
		return nil, errors.Errorf("element: set owner: unknown element id %d", id)
	}
	prev = e.owner
	e.owner = owner
	return prev, nil
}

// EffectiveVisibility resolves an element's visibility rule per spec §4.1:
// its own explicit rule if set, else the nearest ancestor zone rule, else
// "visible to all".
func (t *Tree) EffectiveVisibility(id ID) Visibility {
	e := t.nodes[id]
	if e == nil {
		return defaultVisibility
	}
	if e.explicit != nil {
		return *e.explicit
	}
	cur := e.parent
	for cur != NoID {
		n := t.nodes[cur]
		if n == nil {
			break
		}
		if n.zone != nil {
			return *n.zone
		}
		cur = n.parent
	}
	return defaultVisibility
}

// effectiveOwner returns the seat VisibleTo's Owner-mode check treats id as
// belonging to: id's own owner if set, else the nearest owned ancestor's (a
// card dealt into a seat's hand is "owned" for visibility purposes without
// itself ever being stamped with an owner).
func (t *Tree) effectiveOwner(id ID) *int {
	cur := id
	for cur != NoID {
		n := t.nodes[cur]
		if n == nil {
			return nil
		}
		if n.owner != nil {
			return n.owner
		}
		cur = n.parent
	}
	return nil
}

// IsVisibleTo reports whether observer (a seat) may see id's contents.
func (t *Tree) IsVisibleTo(id ID, observer int) bool {
	if t.nodes[id] == nil {
		return false
	}
	return VisibleTo(t.EffectiveVisibility(id), t.effectiveOwner(id), observer)
}

// Branch returns the path of child indices from the root to id. Searches
// the pile subtree too (it hangs off the root).
func (t *Tree) Branch(id ID) (Branch, bool) {
	e := t.nodes[id]
	if e == nil {
		return nil, false
	}
	var path []int
	cur := id
	for cur != t.root {
		n := t.nodes[cur]
		if n == nil {
			return nil, false
		}
		parent := t.nodes[n.parent]
		if parent == nil {
			return nil, false
		}
		idx := -1
		for i, c := range parent.children {
			if c == cur {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, false
		}
		path = append([]int{idx}, path...)
		cur = n.parent
	}
	return path, true
}

// IndexInParent returns id's parent and its index within the parent's
// children, or ok=false if id is unknown or is the root.
func (t *Tree) IndexInParent(id ID) (parent ID, index int, ok bool) {
	e := t.nodes[id]
	if e == nil || e.parent == NoID {
		return NoID, 0, false
	}
	p := t.nodes[e.parent]
	if p == nil {
		return NoID, 0, false
	}
	for i, c := range p.children {
		if c == id {
			return e.parent, i, true
		}
	}
	return NoID, 0, false
}

// AtBranch resolves a Branch to its element, or (nil, false) if the path no
// longer exists (e.g. pointing into a pruned subtree).
func (t *Tree) AtBranch(b Branch) (*Element, bool) {
	cur := t.root
	for _, idx := range b {
		n := t.nodes[cur]
		if n == nil || idx < 0 || idx >= len(n.children) {
			return nil, false
		}
		cur = n.children[idx]
	}
	return t.nodes[cur], true
}
