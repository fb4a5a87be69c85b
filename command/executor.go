// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package command

import (
	"github.com/pkg/errors"

	"github.com/boardsmith/boardsmith/element"
	"github.com/boardsmith/boardsmith/player"
	"github.com/boardsmith/boardsmith/rng"
)

// Executor is the single point of mutation: every command flows through
// here so that History is complete and replayable (spec §4.2). Callers (the
// action system, the flow engine, the game facade) mutate through
// Executor's typed command methods; the tree returned by Tree is for
// read-only queries.
type Executor struct {
	tree    *element.Tree
	players *player.Collection
	rand    *rng.Source

	history []Command
	nextSeq int
}

// New builds an Executor over an already-constructed tree, player roster,
// and seeded RNG. All three are owned by the game root and passed here by
// reference (Design Notes §9: "the PRNG is a first-class field of the game
// root").
func New(tree *element.Tree, players *player.Collection, rand *rng.Source) *Executor {
	return &Executor{tree: tree, players: players, rand: rand}
}

// History returns a copy of the command log in application order.
func (ex *Executor) History() []Command {
	out := make([]Command, len(ex.history))
	copy(out, ex.history)
	return out
}

// Len returns the number of commands currently logged.
func (ex *Executor) Len() int { return len(ex.history) }

// TrimHistory discards the oldest logged commands beyond keep, e.g. a host
// enforcing config.Config.HistoryLimit after taking its own snapshot.
// Trimming breaks command.Replay from game start: only call it once the
// discarded prefix is no longer needed to reconstruct state (a host that
// saves via game.Save's full-history SavedGame should not trim it).
func (ex *Executor) TrimHistory(keep int) {
	if keep <= 0 || len(ex.history) <= keep {
		return
	}
	ex.history = ex.history[len(ex.history)-keep:]
}

func (ex *Executor) append(c Command) {
	ex.nextSeq++
	c.Seq = ex.nextSeq
	ex.history = append(ex.history, c)
}

// Create applies a CREATE command.
func (ex *Executor) Create(parent element.ID, kind element.Kind, class, name string, attrs map[string]any) (*element.Element, error) {
	e, err := ex.tree.Create(parent, kind, class, name, attrs)
	if err != nil {
		return nil, errors.Wrap(err, "command: create")
	}
	ex.append(Command{Type: Create, CreateParams: &CreateParams{
		Parent: parent, Kind: kind, Class: class, Name: name, Attrs: attrs, Created: e.ID(),
	}})
	return e, nil
}

// CreateMany applies a CREATE_MANY command.
func (ex *Executor) CreateMany(parent element.ID, kind element.Kind, class, name string, count int, attrsAt func(i int) map[string]any) ([]*element.Element, error) {
	elems, err := ex.tree.CreateMany(parent, kind, class, name, count, attrsAt)
	if err != nil {
		return elems, errors.Wrap(err, "command: create many")
	}
	ids := make([]element.ID, len(elems))
	attrsList := make([]map[string]any, len(elems))
	for i, e := range elems {
		ids[i] = e.ID()
		if attrsAt != nil {
			attrsList[i] = attrsAt(i)
		}
	}
	ex.append(Command{Type: CreateMany, CreateManyParams: &CreateManyParams{
		Parent: parent, Kind: kind, Class: class, Name: name, Count: count, Attrs: attrsList, Created: ids,
	}})
	return elems, nil
}

// Move applies a MOVE command, capturing the pre-move parent and position so
// the command can be inverted.
func (ex *Executor) Move(id, destination element.ID, position *int) error {
	prevParent, prevIndex, _ := ex.tree.IndexInParent(id)
	if err := ex.tree.Move(id, destination, position); err != nil {
		return errors.Wrap(err, "command: move")
	}
	ex.append(Command{Type: Move, MoveParams: &MoveParams{
		Element: id, Destination: destination, Position: position,
		PrevParent: prevParent, PrevPosition: prevIndex,
	}})
	return nil
}

// Remove applies a REMOVE command, capturing the pre-remove parent/position.
func (ex *Executor) Remove(id element.ID) error {
	prevParent, prevIndex, _ := ex.tree.IndexInParent(id)
	if err := ex.tree.Remove(id); err != nil {
		return errors.Wrap(err, "command: remove")
	}
	ex.append(Command{Type: Remove, RemoveParams: &RemoveParams{
		Element: id, PrevParent: prevParent, PrevPosition: prevIndex,
	}})
	return nil
}

// Shuffle applies a SHUFFLE command. Not invertible.
func (ex *Executor) Shuffle(space element.ID) error {
	if err := ex.tree.Shuffle(space, ex.rand.Shuffle); err != nil {
		return errors.Wrap(err, "command: shuffle")
	}
	ex.append(Command{Type: Shuffle, ShuffleParams: &ShuffleParams{Space: space}})
	return nil
}

// SetAttribute applies a SET_ATTRIBUTE command, capturing the previous
// value.
func (ex *Executor) SetAttribute(id element.ID, key string, value any) error {
	prev, had, err := ex.tree.SetAttribute(id, key, value)
	if err != nil {
		return errors.Wrap(err, "command: set attribute")
	}
	ex.append(Command{Type: SetAttribute, SetAttributeParams: &SetAttributeParams{
		Element: id, Key: key, Value: value, PrevValue: prev, PrevPresent: had,
	}})
	return nil
}

// SetVisibility applies a SET_VISIBILITY command, capturing the previous
// explicit rule. Passing nil clears the element's explicit override.
func (ex *Executor) SetVisibility(id element.ID, v *element.Visibility) error {
	prev, err := ex.tree.SetExplicitVisibility(id, v)
	if err != nil {
		return errors.Wrap(err, "command: set visibility")
	}
	ex.append(Command{Type: SetVisibility, SetVisibilityParams: &SetVisibilityParams{
		Element: id, Visibility: v, Prev: prev,
	}})
	return nil
}

// SetZoneVisibility applies a SET_ZONE_VISIBILITY command, capturing the
// previous zone default. Passing nil clears the zone rule.
func (ex *Executor) SetZoneVisibility(id element.ID, v *element.Visibility) error {
	prev, err := ex.tree.SetZoneVisibility(id, v)
	if err != nil {
		return errors.Wrap(err, "command: set zone visibility")
	}
	ex.append(Command{Type: SetZoneVisibility, SetZoneVisibilityParams: &SetZoneVisibilityParams{
		Element: id, Visibility: v, Prev: prev,
	}})
	return nil
}

// AddVisibleTo applies an ADD_VISIBLE_TO command, capturing the previous
// rule.
func (ex *Executor) AddVisibleTo(id element.ID, players []int) error {
	prev, err := ex.tree.AddVisibleTo(id, players)
	if err != nil {
		return errors.Wrap(err, "command: add visible to")
	}
	ex.append(Command{Type: AddVisibleTo, AddVisibleToParams: &AddVisibleToParams{
		Element: id, Players: players, Prev: prev,
	}})
	return nil
}

// SetOrder applies a SET_ORDER command, capturing the previous order.
func (ex *Executor) SetOrder(space element.ID, order element.Order) error {
	e := ex.tree.AtID(space)
	if e == nil {
		return errors.Errorf("command: set order: unknown space %d", space)
	}
	prevOrder := e.Order()
	if err := ex.tree.SetOrder(space, order); err != nil {
		return errors.Wrap(err, "command: set order")
	}
	ex.append(Command{Type: SetOrder, SetOrderParams: &SetOrderParams{
		Space: space, Order: order, PrevOrder: prevOrder,
	}})
	return nil
}

// SetCurrentPlayer applies a SET_CURRENT_PLAYER command, capturing the
// previous current seat.
func (ex *Executor) SetCurrentPlayer(seat int) error {
	var prevSeat int
	prevHad := false
	if cur := ex.players.Current(); cur != nil {
		prevSeat, prevHad = cur.Seat, true
	}
	if err := ex.players.SetCurrent(seat); err != nil {
		return errors.Wrap(err, "command: set current player")
	}
	ex.append(Command{Type: SetCurrentPlayer, SetCurrentPlayerParams: &SetCurrentPlayerParams{
		Seat: seat, PrevSeat: prevSeat, PrevHadSeat: prevHad,
	}})
	return nil
}

// Message appends a MESSAGE command to the log. Carries no tree mutation.
func (ex *Executor) Message(text string, data map[string]any) error {
	ex.append(Command{Type: Message, MessageParams: &MessageParams{Text: text, Data: data}})
	return nil
}

// StartGame applies a START_GAME command. Not invertible.
func (ex *Executor) StartGame() error {
	ex.append(Command{Type: StartGame, StartGameParams: &StartGameParams{}})
	return nil
}

// EndGame applies an END_GAME command. Not invertible.
func (ex *Executor) EndGame(winners []int) error {
	ex.append(Command{Type: EndGame, EndGameParams: &EndGameParams{Winners: winners}})
	return nil
}

// Tree exposes the underlying element tree for read-only queries. Mutating
// through it instead of through Executor's command methods breaks the
// replay/undo guarantee; see package doc.
func (ex *Executor) Tree() *element.Tree { return ex.tree }

// Players exposes the player roster for read-only queries.
func (ex *Executor) Players() *player.Collection { return ex.players }

// Rand exposes the RNG source, e.g. for action `execute` bodies that need to
// roll dice outside the tree-shuffle path.
func (ex *Executor) Rand() *rng.Source { return ex.rand }
