// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package game

import (
	"github.com/pkg/errors"

	"github.com/boardsmith/boardsmith/action"
	"github.com/boardsmith/boardsmith/command"
	"github.com/boardsmith/boardsmith/config"
	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/flow"
	"github.com/boardsmith/boardsmith/player"
	"github.com/boardsmith/boardsmith/rng"
)

// Game is the root object a host embeds: the tree, the players, the
// command log, the registered actions, and (once SetFlow is called) the
// flow engine driving them.
type Game struct {
	tree     *element.Tree
	players  *player.Collection
	executor *command.Executor
	seed     uint64
	cfg      config.Config

	actions  map[string]action.Action
	flowRoot *flow.Node
	flow     *flow.Engine

	finished bool
	winners  []int
}

// New builds a fresh Game for the given seat names, seeded for
// reproducible randomness (spec §5, "a game is fully determined by its
// seed and its command history"), using config.Defaults() for engine
// tunables. Use NewWithConfig to override them (e.g. from a loaded
// config.Config).
func New(names []string, seed uint64) *Game {
	return NewWithConfig(names, seed, config.Defaults())
}

// NewWithConfig is New with an explicit engine configuration, applied to
// the flow engine once SetFlow installs it.
func NewWithConfig(names []string, seed uint64, cfg config.Config) *Game {
	tree := element.New()
	players := player.New(names)
	g := &Game{
		tree:     tree,
		players:  players,
		executor: command.New(tree, players, rng.New(seed)),
		seed:     seed,
		cfg:      cfg,
		actions:  map[string]action.Action{},
	}
	return g
}

// Tree exposes the element tree for setup code (building the board,
// populating decks, etc).
func (g *Game) Tree() *element.Tree { return g.tree }

// Players exposes the player roster.
func (g *Game) Players() *player.Collection { return g.players }

// Executor exposes the command executor, e.g. for setup mutations issued
// before the flow starts.
func (g *Game) Executor() *command.Executor { return g.executor }

// Seed returns the RNG seed the game was constructed with.
func (g *Game) Seed() uint64 { return g.seed }

// ContextFor builds the action.Context / flow.Context a closure sees when
// acting as seat.
func (g *Game) ContextFor(seat int) seatContext { return seatContext{g: g, seat: seat} }

// RegisterAction adds a to the game's action registry, keyed by its Name.
func (g *Game) RegisterAction(a action.Action) { g.actions[a.Name] = a }

// RegisterActions adds every action in as to the registry.
func (g *Game) RegisterActions(as []action.Action) {
	for _, a := range as {
		g.RegisterAction(a)
	}
}

// GetAction looks up a registered action by name.
func (g *Game) GetAction(name string) (action.Action, bool) {
	a, ok := g.actions[name]
	return a, ok
}

// lookup adapts GetAction to flow.ActionLookup.
func (g *Game) lookup(name string) (action.Action, bool) { return g.GetAction(name) }

// GetAvailableActions returns every registered action currently available
// to seat.
func (g *Game) GetAvailableActions(seat int) []action.Action {
	all := make([]action.Action, 0, len(g.actions))
	for _, a := range g.actions {
		all = append(all, a)
	}
	return action.Available(all, g.ContextFor(seat))
}

// GetSelectionChoices returns the domain for one pick of a named action,
// given the raw selections chosen for earlier picks so far.
func (g *Game) GetSelectionChoices(actionName, pickName string, raw action.Args, seat int) ([]any, error) {
	a, ok := g.GetAction(actionName)
	if !ok {
		return nil, errors.Errorf("game: no such action %q", actionName)
	}
	return action.SelectionChoices(a, pickName, raw, g.ContextFor(seat))
}

// SetFlow installs the flow tree the game runs. Must be called before
// StartFlow; calling it twice replaces the tree (used by Restore).
func (g *Game) SetFlow(root *flow.Node) {
	g.flowRoot = root
	g.flow = flow.New(root, g.lookup)
	g.flow.SetMaxSteps(g.cfg.MaxFlowSteps)
}

// TrimHistory discards logged commands beyond g's configured HistoryLimit.
// A host calls this after its own Save, not before, since trimming makes
// command.Replay from game start impossible for the discarded prefix.
func (g *Game) TrimHistory() {
	if g.cfg.HistoryLimit > 0 {
		g.executor.TrimHistory(g.cfg.HistoryLimit)
	}
}

// StartFlow begins walking the installed flow tree.
func (g *Game) StartFlow() error {
	if g.flow == nil {
		return errors.New("game: no flow installed, call SetFlow first")
	}
	if err := g.executor.StartGame(); err != nil {
		return err
	}
	return g.flow.Start(g.ContextFor(0))
}

// IsFinished reports whether the game has ended, either because the flow
// tree ran to completion or because EndGame was called explicitly.
func (g *Game) IsFinished() bool {
	return g.finished || (g.flow != nil && g.flow.Done())
}

// GetWinners returns the recorded winning seats, if the game has ended via
// EndGame.
func (g *Game) GetWinners() []int { return g.winners }

// EndGame records the winners and logs an END_GAME command. Intended to be
// called from a flow execute node or an action body once a win condition is
// met.
func (g *Game) EndGame(winners []int) error {
	if err := g.executor.EndGame(winners); err != nil {
		return err
	}
	g.winners = winners
	g.finished = true
	return nil
}

// IsAwaitingInput reports whether the flow engine is suspended waiting for
// a player action.
func (g *Game) IsAwaitingInput() bool { return g.flow != nil && g.flow.Awaiting() != nil }

// CanPlayerAct reports whether seat currently has an action to perform at
// the flow's suspension point.
func (g *Game) CanPlayerAct(seat int) bool {
	a := g.flowAwaiting()
	if a == nil {
		return false
	}
	if !a.Simultaneous {
		return a.Player == seat
	}
	names, ok := a.PlayerActions[seat]
	return ok && len(names) > 0 && !a.Done[seat]
}

func (g *Game) flowAwaiting() *flow.AwaitingInput {
	if g.flow == nil {
		return nil
	}
	return g.flow.Awaiting()
}

// GetFlowState exposes the raw suspension descriptor, for a host building
// its own prompt UI.
func (g *Game) GetFlowState() *flow.AwaitingInput { return g.flowAwaiting() }

// PerformAction resolves and performs a registered action, routed through
// the flow engine's current suspension point. At a simultaneous step seat
// names the acting player; at a plain action-step the awaited player acts
// and seat is not consulted.
func (g *Game) PerformAction(name string, raw action.Args, seat int) error {
	if g.flow == nil {
		return errors.New("game: no flow installed")
	}
	return g.flow.Resume(g.ContextFor(seat), name, raw, seat)
}

// SerializedAction is the wire shape PerformSerializedAction accepts: an
// action name, its raw (unresolved) argument map, and the acting seat.
type SerializedAction struct {
	Action string      `json:"action"`
	Args   action.Args `json:"args"`
	Seat   int         `json:"seat"`
}

// PerformSerializedAction is PerformAction for a host that only has the
// wire-shaped request (e.g. deserialized from a network message).
func (g *Game) PerformSerializedAction(req SerializedAction) error {
	return g.PerformAction(req.Action, req.Args, req.Seat)
}
