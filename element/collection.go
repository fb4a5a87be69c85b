// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package element

import (
	"reflect"
	"sort"
)

// Collection is the result of a query: an ordered slice of elements with the
// aggregate helpers spec §4.1 names (sortBy, sum, min, max, unique, shuffle).
type Collection []*Element

// KeyFunc extracts a sortable/summable numeric key from an element.
type KeyFunc func(*Element) float64

// SortBy returns a new Collection ordered by key, stable on equal keys.
func (c Collection) SortBy(key KeyFunc, asc bool) Collection {
	out := make(Collection, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if asc {
			return ki < kj
		}
		return ki > kj
	})
	return out
}

// Sum totals key over every element.
func (c Collection) Sum(key KeyFunc) float64 {
	var total float64
	for _, e := range c {
		total += key(e)
	}
	return total
}

// Min returns the element with the smallest key, or nil if c is empty.
func (c Collection) Min(key KeyFunc) *Element {
	return c.extreme(key, func(a, b float64) bool { return a < b })
}

// Max returns the element with the largest key, or nil if c is empty.
func (c Collection) Max(key KeyFunc) *Element {
	return c.extreme(key, func(a, b float64) bool { return a > b })
}

func (c Collection) extreme(key KeyFunc, better func(a, b float64) bool) *Element {
	if len(c) == 0 {
		return nil
	}
	best := c[0]
	bestKey := key(best)
	for _, e := range c[1:] {
		k := key(e)
		if better(k, bestKey) {
			best, bestKey = e, k
		}
	}
	return best
}

// Unique returns elements with distinct values of keyOf, keeping the first
// occurrence of each value in tree order.
func (c Collection) Unique(keyOf func(*Element) any) Collection {
	seen := make([]any, 0, len(c))
	var out Collection
	for _, e := range c {
		k := keyOf(e)
		dup := false
		for _, s := range seen {
			if reflect.DeepEqual(s, k) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, k)
			out = append(out, e)
		}
	}
	return out
}

// Shuffle returns a new Collection with elements permuted by shuffle (the
// signature matches rng.Source.Shuffle so collections can be shuffled with
// the same deterministic source the tree uses).
func (c Collection) Shuffle(shuffle func(n int, swap func(i, j int))) Collection {
	out := make(Collection, len(c))
	copy(out, c)
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
