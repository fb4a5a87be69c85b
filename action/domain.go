// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package action

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/boardsmith/boardsmith/element"
)

// DomainError wraps a panic or failure recovered from a pick's filter
// function, tagged with the offending pick's name, so isAvailable stays
// total instead of crashing the host (spec §4.3, §9 "Exceptions for control
// flow in action filters").
type DomainError struct {
	Pick  string
	Cause error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("action: pick %q: %v", e.Pick, e.Cause)
}

func (e *DomainError) Unwrap() error { return e.Cause }

// Domain computes the enumerable domain for a pick, given the values chosen
// for earlier picks so far. Text and number picks have no enumerable
// domain and always return (nil, nil).
func Domain(p Pick, ctx Context, args Args) (values []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = errors.Errorf("%v", r)
			}
			values, err = nil, &DomainError{Pick: p.Name, Cause: cause}
		}
	}()

	var raw []any
	switch p.Type {
	case ChoicePick:
		if p.Choices != nil {
			raw = p.Choices(ctx, args)
		}
	case PlayerPick:
		for _, pl := range ctx.Players().All() {
			if p.PlayerFilter == nil || p.PlayerFilter(pl, args, ctx) {
				raw = append(raw, pl)
			}
		}
	case ElementPick, ElementsPick:
		var source []*element.Element
		if p.ElementSource != nil {
			source = p.ElementSource(ctx, args)
		} else {
			source = ctx.Tree().All(ctx.Tree().Root(), p.ElementClass, element.QueryContext{})
		}
		for _, e := range source {
			if p.ElementClass != "" && e.Class() != p.ElementClass {
				continue
			}
			if p.ElementFilter == nil || p.ElementFilter(e, args, ctx) {
				raw = append(raw, e)
			}
		}
	default:
		return nil, nil // text/number: no enumerable domain
	}

	if p.FilterBy != nil {
		if earlier, ok := args[p.FilterBy.PickName]; ok {
			want, _ := fieldValue(earlier, p.FilterBy.Key)
			filtered := raw[:0:0]
			for _, v := range raw {
				got, ok := fieldValue(v, p.FilterBy.Key)
				if ok && reflect.DeepEqual(got, want) {
					filtered = append(filtered, v)
				}
			}
			raw = filtered
		}
	}
	return raw, nil
}

// fieldValue extracts a named field/attribute from a domain value: an
// *element.Element's attribute, a *player.Player's exported field, or a
// map's key. Returns ok=false if the value has no such field.
func fieldValue(v any, key string) (any, bool) {
	switch t := v.(type) {
	case *element.Element:
		return t.Attr(key)
	case map[string]any:
		val, ok := t[key]
		return val, ok
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr {
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return nil, false
		}
		f := rv.FieldByName(key)
		if !f.IsValid() {
			return nil, false
		}
		return f.Interface(), true
	}
}
