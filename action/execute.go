// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package action

import (
	"fmt"

	"github.com/pkg/errors"
)

// Perform resolves raw arguments, imputes any skip-if-only-one picks,
// validates the whole selection, and invokes the action's Execute body.
// Resolution happens pick by pick, in order, so a later pick's domain or
// filter can see an earlier pick's already-resolved value.
func Perform(a Action, raw Args, ctx Context) error {
	args := make(Args, len(a.Picks))
	for _, p := range a.Picks {
		if v, has := raw[p.Name]; has {
			resolved, err := resolveOne(p, v, ctx)
			if err != nil {
				return errors.Wrapf(err, "action %q: resolve pick %q", a.Name, p.Name)
			}
			args[p.Name] = resolved
			continue
		}
		if p.SkipIfOnlyOne && p.HasEnumerableDomain() {
			domain, err := Domain(p, ctx, args)
			if err == nil && len(domain) == 1 {
				args[p.Name] = domain[0]
			}
		}
	}

	if err := ValidateAction(a, args, ctx); err != nil {
		return errors.Wrapf(err, "action %q: validation failed", a.Name)
	}

	return safeExecute(a, args, ctx)
}

// safeExecute catches panics from the action body and converts them to a
// failure result, per spec §4.3 ("catch thrown errors and convert to a
// failure result").
func safeExecute(a Action, args Args, ctx Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrapf(e, "action %q: execute panicked", a.Name)
			} else {
				err = errors.Errorf("action %q: execute panicked: %v", a.Name, fmt.Sprint(r))
			}
		}
	}()
	if a.Execute == nil {
		return nil
	}
	return a.Execute(args, ctx)
}

// SelectionChoices returns the domain for a single pick given the raw
// (partially resolved) arguments chosen so far — the data a host needs to
// render the next prompt.
func SelectionChoices(a Action, pickName string, raw Args, ctx Context) ([]any, error) {
	args := make(Args, len(a.Picks))
	for _, p := range a.Picks {
		if p.Name == pickName {
			break
		}
		v, has := raw[p.Name]
		if !has {
			continue
		}
		resolved, err := resolveOne(p, v, ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "action %q: resolve pick %q", a.Name, p.Name)
		}
		args[p.Name] = resolved
	}
	for _, p := range a.Picks {
		if p.Name == pickName {
			return Domain(p, ctx, args)
		}
	}
	return nil, errors.Errorf("action %q: no such pick %q", a.Name, pickName)
}
