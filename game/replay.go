// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package game

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/boardsmith/boardsmith/action"
	"github.com/boardsmith/boardsmith/command"
	"github.com/boardsmith/boardsmith/config"
	"github.com/boardsmith/boardsmith/flow"
	"github.com/boardsmith/boardsmith/player"
)

// SavedGame is everything needed to reconstruct a Game: the seat names and
// seed a fresh tree/RNG are rebuilt from, the full command history to
// replay against them, and — if a flow is running — its captured Position
// (spec §6). The flow tree's *shape* is host code, not data, and is never
// part of a SavedGame; Restore's caller supplies it.
type SavedGame struct {
	Names        []string          `json:"names" yaml:"names"`
	Seed         uint64            `json:"seed" yaml:"seed"`
	History      []command.Command `json:"history" yaml:"history"`
	FlowPosition *flow.Position    `json:"flowPosition,omitempty" yaml:"flowPosition,omitempty"`
	Finished     bool              `json:"finished" yaml:"finished"`
	Winners      []int             `json:"winners,omitempty" yaml:"winners,omitempty"`
}

// Save captures everything needed to reconstruct the game later: command
// history plus, if a flow is installed, its current Position.
func (g *Game) Save() SavedGame {
	names := make([]string, 0, g.players.Len())
	for _, p := range g.players.All() {
		names = append(names, p.Name)
	}
	saved := SavedGame{
		Names:    names,
		Seed:     g.seed,
		History:  g.executor.History(),
		Finished: g.finished,
		Winners:  g.winners,
	}
	if g.flow != nil {
		pos := g.flow.Capture(g.ContextFor(0))
		saved.FlowPosition = &pos
	}
	return saved
}

// Marshal encodes saved as YAML, mirroring save.go's local persistence
// format — a host that wants the spec's JSON wire format instead uses
// Game.ToJSON/ToJSONForPlayer, which is what a network peer receives.
func (saved SavedGame) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(&saved)
	if err != nil {
		return nil, errors.Wrap(err, "game: marshal saved game")
	}
	return data, nil
}

// UnmarshalSavedGame decodes a SavedGame previously produced by
// SavedGame.Marshal.
func UnmarshalSavedGame(data []byte) (SavedGame, error) {
	var saved SavedGame
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return SavedGame{}, errors.Wrap(err, "game: unmarshal saved game")
	}
	return saved, nil
}

// Restore rebuilds a Game by replaying saved's command history against a
// fresh tree and RNG, then, if saved carries a flow Position, resuming the
// flow tree at exactly that point without re-running any already-executed
// node (spec §6). flowRoot must be the same tree shape the game originally
// ran; actions must register the same names the flow tree and history
// reference.
func Restore(saved SavedGame, flowRoot *flow.Node, actions []action.Action) (*Game, error) {
	return RestoreWithConfig(saved, flowRoot, actions, config.Defaults())
}

// RestoreWithConfig is Restore with an explicit engine configuration,
// applied to the rebuilt flow engine's step cap the same way
// NewWithConfig/SetFlow apply it to a fresh Game.
func RestoreWithConfig(saved SavedGame, flowRoot *flow.Node, actions []action.Action, cfg config.Config) (*Game, error) {
	players := player.New(saved.Names)
	ex, err := command.Replay(players, saved.Seed, saved.History)
	if err != nil {
		return nil, errors.Wrap(err, "game: restore: replay history")
	}

	g := &Game{
		tree:     ex.Tree(),
		players:  players,
		executor: ex,
		seed:     saved.Seed,
		cfg:      cfg,
		actions:  map[string]action.Action{},
		finished: saved.Finished,
		winners:  saved.Winners,
	}
	g.RegisterActions(actions)

	if flowRoot == nil {
		return g, nil
	}
	g.flowRoot = flowRoot
	if saved.FlowPosition == nil {
		g.flow = flow.New(flowRoot, g.lookup)
		g.flow.SetMaxSteps(cfg.MaxFlowSteps)
		return g, nil
	}
	restored, err := flow.Restore(flowRoot, g.lookup, *saved.FlowPosition, g.ContextFor(0))
	if err != nil {
		return nil, errors.Wrap(err, "game: restore: flow position")
	}
	restored.SetMaxSteps(cfg.MaxFlowSteps)
	g.flow = restored
	return g, nil
}
