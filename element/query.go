// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package element

import "reflect"

// QueryContext carries the ambient information a Finder may need beyond the
// element itself — currently just the reserved "mine" attribute key, which
// compares against the player running the query.
type QueryContext struct {
	CurrentPlayer    int
	HasCurrentPlayer bool
}

// Finder narrows a query's results. The three spec-named finder shapes
// (name string, predicate, attribute map) are all just constructors that
// produce a Finder.
type Finder func(e *Element, ctx QueryContext) bool

// ByName matches elements with the given (non-unique) name.
func ByName(name string) Finder {
	return func(e *Element, _ QueryContext) bool { return e.name == name }
}

// ByPredicate wraps an arbitrary predicate as a Finder.
func ByPredicate(pred func(*Element) bool) Finder {
	return func(e *Element, _ QueryContext) bool { return pred(e) }
}

// ByAttrs matches elements whose attributes equal every key in m. Two keys
// are reserved: "empty" (bool) matches elements with/without children, and
// "mine" (bool) matches elements owned by the querying player.
func ByAttrs(m map[string]any) Finder {
	return func(e *Element, ctx QueryContext) bool {
		for k, want := range m {
			switch k {
			case "empty":
				wantEmpty, _ := want.(bool)
				if (len(e.children) == 0) != wantEmpty {
					return false
				}
			case "mine":
				wantMine, _ := want.(bool)
				isMine := ctx.HasCurrentPlayer && e.owner != nil && *e.owner == ctx.CurrentPlayer
				if isMine != wantMine {
					return false
				}
			default:
				got, ok := e.attrs[k]
				if !ok || !reflect.DeepEqual(got, want) {
					return false
				}
			}
		}
		return true
	}
}

func matches(e *Element, class string, ctx QueryContext, finders []Finder) bool {
	if class != "" && e.class != class {
		return false
	}
	for _, f := range finders {
		if !f(e, ctx) {
			return false
		}
	}
	return true
}

// collect walks the subtree rooted at id in tree order, appending matches
// (but never id itself) to out.
func (t *Tree) collect(id ID, class string, ctx QueryContext, finders []Finder, out *Collection) {
	e := t.nodes[id]
	if e == nil {
		return
	}
	for _, c := range e.children {
		child := t.nodes[c]
		if child == nil {
			continue
		}
		if matches(child, class, ctx, finders) {
			*out = append(*out, child)
		}
		t.collect(c, class, ctx, finders, out)
	}
}

// All recursively descends from root (exclusive), preserving tree order,
// returning every descendant matching class (empty = any) and every finder.
func (t *Tree) All(root ID, class string, ctx QueryContext, finders ...Finder) Collection {
	var out Collection
	t.collect(root, class, ctx, finders, &out)
	return out
}

// First returns the first matching element in tree order, or nil.
func (t *Tree) First(root ID, class string, ctx QueryContext, finders ...Finder) *Element {
	all := t.All(root, class, ctx, finders...)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Last returns the last matching element, walking in reverse tree order.
func (t *Tree) Last(root ID, class string, ctx QueryContext, finders ...Finder) *Element {
	all := t.All(root, class, ctx, finders...)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// FirstN returns up to n matching elements from the front.
func (t *Tree) FirstN(root ID, n int, class string, ctx QueryContext, finders ...Finder) Collection {
	all := t.All(root, class, ctx, finders...)
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// LastN returns up to n matching elements from the back, in reverse tree
// order (nearest-to-end first).
func (t *Tree) LastN(root ID, n int, class string, ctx QueryContext, finders ...Finder) Collection {
	all := t.All(root, class, ctx, finders...)
	if n > len(all) {
		n = len(all)
	}
	out := make(Collection, n)
	for i := 0; i < n; i++ {
		out[i] = all[len(all)-1-i]
	}
	return out
}

// Has reports whether any element matches.
func (t *Tree) Has(root ID, class string, ctx QueryContext, finders ...Finder) bool {
	return t.First(root, class, ctx, finders...) != nil
}

// Count returns the number of matching elements.
func (t *Tree) Count(root ID, class string, ctx QueryContext, finders ...Finder) int {
	return len(t.All(root, class, ctx, finders...))
}
