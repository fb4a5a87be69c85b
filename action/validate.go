// SPDX-FileCopyrightText : © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package action

import (
	"math"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ValidateSelection checks one pick's resolved value against its domain (for
// choice/player/element picks), its text/number constraints, and finally
// its custom Validate function.
func ValidateSelection(p Pick, value any, args Args, ctx Context) error {
	if p.HasEnumerableDomain() {
		if err := validateInDomain(p, value, args, ctx); err != nil {
			return err
		}
	}

	switch p.Type {
	case TextPick:
		if err := validateText(p, value); err != nil {
			return err
		}
	case NumberPick:
		if err := validateNumber(p, value); err != nil {
			return err
		}
	}

	if p.Validate != nil {
		ok, msg := p.Validate(value, args, ctx)
		if !ok {
			if msg == "" {
				msg = "custom validation failed"
			}
			return errors.Errorf("pick %q: %s", p.Name, msg)
		}
	}
	return nil
}

func validateInDomain(p Pick, value any, args Args, ctx Context) error {
	domain, err := Domain(p, ctx, args)
	if err != nil {
		return err
	}
	values := value
	if isMultiSelect(p) {
		items, ok := value.([]any)
		if !ok {
			return errors.Errorf("pick %q: expected an array of selections", p.Name)
		}
		if p.MultiSelect != nil {
			min, max := p.MultiSelect.Min(ctx, args), p.MultiSelect.Max(ctx, args)
			if len(items) < min || (max > 0 && len(items) > max) {
				return errors.Errorf("pick %q: selected %d items, want between %d and %d", p.Name, len(items), min, max)
			}
		}
		for _, v := range items {
			if !inDomain(domain, v) {
				return errors.Errorf("pick %q: value not in domain", p.Name)
			}
		}
		return nil
	}
	if !inDomain(domain, values) {
		return errors.Errorf("pick %q: value not in domain", p.Name)
	}
	return nil
}

func inDomain(domain []any, value any) bool {
	for _, v := range domain {
		if reflect.DeepEqual(v, value) {
			return true
		}
	}
	return false
}

func validateText(p Pick, value any) error {
	s, ok := value.(string)
	if !ok {
		return errors.Errorf("pick %q: expected a string", p.Name)
	}
	if p.MinLen > 0 && len(s) < p.MinLen {
		return errors.Errorf("pick %q: too short (min %d)", p.Name, p.MinLen)
	}
	if p.MaxLen > 0 && len(s) > p.MaxLen {
		return errors.Errorf("pick %q: too long (max %d)", p.Name, p.MaxLen)
	}
	if p.Pattern != nil && !p.Pattern.MatchString(s) {
		return errors.Errorf("pick %q: does not match required pattern", p.Name)
	}
	return nil
}

func validateNumber(p Pick, value any) error {
	n, ok := asFloat(value)
	if !ok || math.IsNaN(n) {
		return errors.Errorf("pick %q: expected a number", p.Name)
	}
	if p.Integer && n != math.Trunc(n) {
		return errors.Errorf("pick %q: expected an integer", p.Name)
	}
	if p.Min != nil && n < *p.Min {
		return errors.Errorf("pick %q: below minimum %v", p.Name, *p.Min)
	}
	if p.Max != nil && n > *p.Max {
		return errors.Errorf("pick %q: above maximum %v", p.Name, *p.Max)
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ValidateAction checks a whole action invocation: the condition must hold,
// every non-optional pick must have a value, and every individual
// validation must pass. Errors are aggregated with go-multierror so the
// host can show every problem at once rather than one at a time.
func ValidateAction(a Action, args Args, ctx Context) error {
	var errs *multierror.Error
	if a.Condition != nil && !a.Condition(ctx) {
		errs = multierror.Append(errs, errors.Errorf("action %q: condition not satisfied", a.Name))
	}
	for _, p := range a.Picks {
		value, has := args[p.Name]
		if !has {
			if !p.Optional {
				errs = multierror.Append(errs, errors.Errorf("pick %q: missing required value", p.Name))
			}
			continue
		}
		if err := ValidateSelection(p, value, args, ctx); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
