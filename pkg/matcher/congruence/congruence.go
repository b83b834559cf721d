// Poland Schedule
// Copyright (c) 2025 The Poland Schedule Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Poland Schedule.
//
// Poland Schedule is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Poland Schedule is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Poland Schedule.  If not, see <http://www.gnu.org/licenses/>.

// Package congruence classifies how two scalar values relate to each other:
// identical, different only in spacing or case, equal after coercing a string
// to the other value's type, matched by a typed placeholder, or unrelated.
//
// Arguments are always passed as (received, expected). Placeholders are
// usually written on the expected side but are honoured on either side.
package congruence

import (
	"strings"

	"github.com/willi84/poland-schedule/pkg/records"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the relationship between two values. Kinds are listed in the order
// Classify checks them.
type Kind int

const (
	Unrelated Kind = iota
	Equal
	Spaces
	Case
	Value
	TypeCoerced
	Placeholder
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Spaces:
		return "spaces"
	case Case:
		return "case"
	case Value:
		return "value"
	case TypeCoerced:
		return "type"
	case Placeholder:
		return "placeholder"
	case Unrelated:
		return "unrelated"
	}
	return "unrelated"
}

// Congruent reports whether k is an accepted but non-exact relationship.
func (k Kind) Congruent() bool {
	return k != Unrelated && k != Equal
}

// Lower folds s to lower case using Unicode rules.
func Lower(s string) string {
	// cases.Caser is stateful and must not be shared between goroutines
	return cases.Lower(language.Und).String(s)
}

// Classify returns the relationship between received and expected.
//
// Both strings: Equal, then Spaces (equal after trimming), Case (equal after
// lower casing), Value (equal after both) and Placeholder. Exactly one string:
// TypeCoerced when the trimmed, lower cased string equals the other value
// stringified, then Placeholder when the string is a placeholder for the
// other value's type. Anything else is Equal or Unrelated.
func Classify(received, expected any) Kind {
	if records.Equal(received, expected) {
		return Equal
	}
	if records.IsComposite(received) || records.IsComposite(expected) {
		return Unrelated
	}

	rs, rok := records.String(received)
	es, eok := records.String(expected)

	switch {
	case rok && eok:
		return classifyStrings(rs, es)
	case eok:
		return classifyMixed(es, received)
	case rok:
		return classifyMixed(rs, expected)
	default:
		return Unrelated
	}
}

func classifyStrings(received, expected string) Kind {
	if strings.TrimSpace(received) == strings.TrimSpace(expected) {
		return Spaces
	}
	lr, le := Lower(received), Lower(expected)
	if lr == le {
		return Case
	}
	if strings.TrimSpace(lr) == strings.TrimSpace(le) {
		return Value
	}
	if HasPlaceholder(expected) && MatchesPlaceholder(expected, received) {
		return Placeholder
	}
	if HasPlaceholder(received) && MatchesPlaceholder(received, expected) {
		return Placeholder
	}
	return Unrelated
}

func classifyMixed(s string, other any) Kind {
	if IsCoerced(s, other) {
		return TypeCoerced
	}
	if MatchesPlaceholder(s, other) {
		return Placeholder
	}
	return Unrelated
}

// IsCoerced reports whether s spells out other, ignoring case and
// surrounding whitespace ("True" and true, " 123" and 123, "null" and nil).
func IsCoerced(s string, other any) bool {
	want := strings.TrimSpace(Lower(s))
	got := strings.TrimSpace(Lower(records.Stringify(other)))
	return want == got
}
