// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Command demo runs a two-player card-draw game over stdin/stdout, exercising
// the engine end to end: tree construction, a flow tree alternating
// players, per-player filtered views, and save/restore.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/boardsmith/boardsmith/action"
	"github.com/boardsmith/boardsmith/config"
	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/flow"
	"github.com/boardsmith/boardsmith/game"
)

// setLogging sends structured logs to stderr so stdout stays reserved for
// the game transcript.
var setLogging = func() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func main() {
	configPath := flag.String("config", "demo.yaml", "path to engine config YAML")
	savePath := flag.String("save", "demo-save.yaml", "path to write/read a saved game")
	resume := flag.Bool("resume", false, "resume from -save instead of starting a new game")
	flag.Parse()

	setLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	var g *game.Game
	flowRoot := drawGameFlow()

	if *resume {
		g, err = resumeGame(*savePath, flowRoot, cfg)
	} else {
		g, err = newGame(cfg, flowRoot)
	}
	if err != nil {
		slog.Error("start game", "err", err)
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	runLoop(g, in, *savePath)
}

// drawGameFlow builds the turn structure: while the deck has cards, each
// seated player draws one in turn order.
func drawGameFlow() *flow.Node {
	return &flow.Node{Type: flow.Loop, LoopNode: &flow.LoopNode{
		While: func(ctx flow.Context) bool { return deckSize(ctx) > 0 },
		Do: &flow.Node{Type: flow.EachPlayer, EachPlayerNode: &flow.EachPlayerNode{
			Do: &flow.Node{Type: flow.ActionStep, ActionStepNode: &flow.ActionStepNode{
				Actions: []string{"draw"},
				Prompt:  "draw a card from the deck",
				SkipIf:  func(ctx flow.Context) bool { return deckSize(ctx) == 0 },
			}},
		}},
	}}
}

func deckSize(ctx action.Context) int {
	root := ctx.Tree().Root()
	for _, id := range ctx.Tree().AtID(root).Children() {
		if ctx.Tree().AtID(id).Kind() == element.KindDeck {
			return len(ctx.Tree().AtID(id).Children())
		}
	}
	return 0
}

func handFor(g *game.Game, seat int) element.ID {
	root := g.Tree().Root()
	for _, id := range g.Tree().AtID(root).Children() {
		e := g.Tree().AtID(id)
		if owner, ok := e.Owner(); ok && e.Kind() == element.KindHand && owner == seat {
			return id
		}
	}
	return element.NoID
}

func drawAction() action.Action {
	return action.Action{
		Name:   "draw",
		Prompt: "draw the top card of the deck",
		Condition: func(ctx action.Context) bool {
			return deckSize(ctx) > 0
		},
		Execute: func(args action.Args, ctx action.Context) error {
			root := ctx.Tree().Root()
			var deckID element.ID
			for _, id := range ctx.Tree().AtID(root).Children() {
				if ctx.Tree().AtID(id).Kind() == element.KindDeck {
					deckID = id
				}
			}
			top := ctx.Tree().AtID(deckID).Children()
			if len(top) == 0 {
				return nil
			}
			card := top[len(top)-1]
			var hand element.ID
			for _, id := range ctx.Tree().AtID(root).Children() {
				e := ctx.Tree().AtID(id)
				if owner, ok := e.Owner(); ok && e.Kind() == element.KindHand && owner == ctx.Seat() {
					hand = id
				}
			}
			return ctx.Executor().Move(card, hand, nil)
		},
	}
}

func newGame(cfg config.Config, flowRoot *flow.Node) (*game.Game, error) {
	g := game.NewWithConfig([]string{"alice", "bob"}, cfg.DefaultSeed, cfg)
	g.RegisterAction(drawAction())

	tree := g.Tree()
	ex := g.Executor()

	deck, err := ex.Create(tree.Root(), element.KindDeck, "Deck", "deck", nil)
	if err != nil {
		return nil, err
	}
	for i := 1; i <= 16; i++ {
		if _, err := ex.Create(deck.ID(), element.KindCard, "Card", fmt.Sprintf("card-%d", i), map[string]any{"rank": i}); err != nil {
			return nil, err
		}
	}
	if err := ex.Shuffle(deck.ID()); err != nil {
		return nil, err
	}

	for seat, name := range []string{"alice-hand", "bob-hand"} {
		hand, err := tree.CreateHand(tree.Root(), "Hand", name, seat)
		if err != nil {
			return nil, err
		}
		if err := ex.SetZoneVisibility(hand.ID(), &element.Visibility{Mode: element.Owner}); err != nil {
			return nil, err
		}
	}

	g.SetFlow(flowRoot)
	if err := g.StartFlow(); err != nil {
		return nil, err
	}
	return g, nil
}

func resumeGame(path string, flowRoot *flow.Node, cfg config.Config) (*game.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	saved, err := game.UnmarshalSavedGame(data)
	if err != nil {
		return nil, err
	}
	return game.RestoreWithConfig(saved, flowRoot, []action.Action{drawAction()}, cfg)
}

func runLoop(g *game.Game, in *bufio.Scanner, savePath string) {
	for !g.IsFinished() {
		state := g.GetFlowState()
		if state == nil {
			break
		}
		seat := state.Player
		fmt.Printf("seat %d's turn, deck has %d cards left\n", seat, deckSize(g.ContextFor(seat)))
		printHands(g.ToJSONForPlayer(seat))

		fmt.Printf("seat %d> (draw/save/quit) ", seat)
		if !in.Scan() {
			return
		}
		switch in.Text() {
		case "draw":
			if err := g.PerformAction("draw", action.Args{}, seat); err != nil {
				fmt.Println("error:", err)
			}
		case "save":
			if err := saveGame(g, savePath); err != nil {
				fmt.Println("save failed:", err)
			} else {
				fmt.Println("saved to", savePath)
			}
		case "quit":
			return
		default:
			fmt.Println("unknown command")
		}
	}

	winners := tallyWinners(g)
	if err := g.EndGame(winners); err != nil {
		slog.Error("end game", "err", err)
	}
	fmt.Println("game over, winners:", winners)
}

// printHands shows every hand as this observer's view redacts it: a hand
// whose children the view lists prints its card count; a hand the view
// lists no children for (another seat's Owner-zoned hand, whose cards are
// withheld, or an empty hand) prints "hidden".
func printHands(view game.Snapshot) {
	for _, child := range view.Root.Children {
		if child.Kind != "Hand" {
			continue
		}
		if child.Children == nil {
			fmt.Printf("  %s: hidden\n", child.Name)
			continue
		}
		fmt.Printf("  %s: %d card(s)\n", child.Name, len(child.Children))
	}
}

func tallyWinners(g *game.Game) []int {
	best, bestCount := -1, -1
	var winners []int
	for _, p := range g.Players().All() {
		hand := handFor(g, p.Seat)
		n := len(g.Tree().AtID(hand).Children())
		if n > bestCount {
			best, bestCount = p.Seat, n
			winners = []int{best}
		} else if n == bestCount {
			winners = append(winners, p.Seat)
		}
	}
	return winners
}

func saveGame(g *game.Game, path string) error {
	data, err := g.Save().Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
