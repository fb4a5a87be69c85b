// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package flow

// frame is one entry of the engine's active-node stack. Each composite node
// (sequence, loop, each-player, for-each, if, switch) that is currently
// "open" holds exactly one frame; a frame is popped once its node has no
// more work to do.
type frame struct {
	node      *Node
	entered   bool // on-entry logic has already run once
	completed bool // ready to be popped

	// selector records which child this frame is currently running, in a
	// node-type-specific encoding (see childAt), so Position can capture
	// and Restore can replay the walk without re-evaluating conditions.
	selector int

	// iteration is a loop frame's running counter. Position records it
	// under "__iter_<depth>" for loop, each-player and for-each frames, but
	// only loop frames advance it; each-player and for-each progress is
	// held in selector.
	iteration int

	// playerOrder is the resolved, possibly filtered/reversed/rotated seat
	// sequence an each-player frame is walking.
	playerOrder []int

	// collection is the resolved item sequence a for-each frame is
	// walking, and savedVar/hadSavedVar let it restore whatever the named
	// variable held before the loop started.
	collection   []any
	savedVar     any
	hadSavedVar  bool

	// hasActed records whether an action-step's action has been performed
	// at least once, so RepeatUntil is only consulted after a first pass.
	hasActed bool
}

// stepOutcome is what on-entry or on-child-completion logic decides to do
// next.
type stepOutcome struct {
	push     *Node
	complete bool
	await    *AwaitingInput
}
