// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package element

// ID is the immutable numeric identity of an Element, assigned from a
// monotonically increasing counter owned by the Tree. IDs are never reused,
// even after Remove, so that a Command's recorded ids stay valid for replay
// against the pile.
type ID int

// NoID is the zero value, meaning "no element" — the root's parent, an
// empty attribute reference, a not-found query result.
const NoID ID = 0

// Branch is the path of child indices from the tree root to an element,
// stable only between mutations. branch[0] selects a child of the root,
// branch[1] a child of that child, and so on.
type Branch []int
