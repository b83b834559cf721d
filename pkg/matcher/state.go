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

package matcher

import "fmt"

// FieldState classifies one field of a candidate against the expected record.
// For a whole candidate it is the aggregate of its field states.
type FieldState int

const (
	StateEqual FieldState = iota
	StateCongruent
	StateDifferent
	StateMissing
	StateExtra
	StateMixed
)

var fieldStateNames = map[FieldState]string{
	StateEqual:     "equal",
	StateCongruent: "congruent",
	StateDifferent: "different",
	StateMissing:   "missing",
	StateExtra:     "extra",
	StateMixed:     "mixed",
}

func (s FieldState) String() string {
	if name, ok := fieldStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("FieldState(%d)", int(s))
}

// MarshalText encodes the state as its lower case name.
func (s FieldState) MarshalText() ([]byte, error) {
	name, ok := fieldStateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown field state: %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a lower case state name.
func (s *FieldState) UnmarshalText(text []byte) error {
	for state, name := range fieldStateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown field state: %q", text)
}
