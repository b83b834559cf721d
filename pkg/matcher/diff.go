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

import (
	"fmt"

	"github.com/willi84/poland-schedule/pkg/matcher/accuracy"
	"github.com/willi84/poland-schedule/pkg/records"
)

// FieldDiff is the comparison of one key of a candidate. Expected and Received
// hold records.Undefined when the key is absent on that side.
type FieldDiff struct {
	Expected any        `json:"expected"`
	Received any        `json:"received"`
	Key      string     `json:"key"`
	State    FieldState `json:"state"`
	Accuracy float64    `json:"accuracy"`
}

// DiffFields compares received against expected key by key, one entry per
// key of either record in sorted key order.
//
// Both sides null or absent is Equal. A null or absent expected value is
// Extra, a null or absent received value is Missing, both scoring 0.
// Otherwise the field is scored with accuracy.ValueAccuracy: 100 is Equal,
// 50 and above Congruent, anything lower Different. Records that cannot be
// normalized fail with records.ErrInvalidInput.
func DiffFields(expected, received records.Record) ([]FieldDiff, error) {
	exp, err := records.NormalizeRecord(expected, "expected")
	if err != nil {
		return nil, err
	}
	rec, err := records.NormalizeRecord(received, "received")
	if err != nil {
		return nil, err
	}
	return diffFields(exp, rec)
}

func diffFields(expected, received records.Record) ([]FieldDiff, error) {
	keys := records.UnionKeys(expected, received)
	diffs := make([]FieldDiff, 0, len(keys))
	for _, key := range keys {
		d, err := diffField(key, records.Get(expected, key), records.Get(received, key))
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d)
	}
	return diffs, nil
}

func diffField(key string, expected, received any) (FieldDiff, error) {
	d := FieldDiff{
		Key:      key,
		Expected: expected,
		Received: received,
	}
	switch {
	case records.IsNullish(expected) && records.IsNullish(received):
		d.State = StateEqual
		d.Accuracy = accuracy.Full
	case records.IsNullish(expected):
		d.State = StateExtra
	case records.IsNullish(received):
		d.State = StateMissing
	default:
		acc, err := accuracy.ValueAccuracy(received, expected)
		if err != nil {
			return FieldDiff{}, fmt.Errorf("failed to score field %q: %w", key, err)
		}
		d.Accuracy = acc
		d.State = stateForAccuracy(acc)
	}
	return d, nil
}

func stateForAccuracy(acc float64) FieldState {
	switch {
	case acc == accuracy.Full:
		return StateEqual
	case acc >= accuracy.CongruentScore:
		return StateCongruent
	default:
		return StateDifferent
	}
}

// AggregateState folds field states into one: Equal when all fields are
// equal, the shared state when every non-equal field has the same state and
// Mixed when two or more different non-equal states occur.
func AggregateState(diffs []FieldDiff) FieldState {
	state := StateEqual
	for _, d := range diffs {
		switch {
		case d.State == StateEqual:
		case state == StateEqual:
			state = d.State
		case state != d.State:
			return StateMixed
		}
	}
	return state
}

// PropertyCheck lists how the keys of two records relate.
type PropertyCheck struct {
	Missing   []string `json:"missing"`
	Extra     []string `json:"extra"`
	Different []string `json:"different"`
	Same      []string `json:"same"`
	Status    bool     `json:"status"`
}

// CompareKeys checks the key sets of two records. A key of expected that is
// absent on received is missing, a key of received absent on expected is
// extra. Present keys are same when their values are deeply equal and
// different otherwise. Status is true when nothing is missing, extra or
// different.
func CompareKeys(expected, received records.Record) PropertyCheck {
	var check PropertyCheck
	for _, key := range records.Keys(expected) {
		rv := records.Get(received, key)
		switch {
		case records.KindOf(rv) == records.KindUndefined:
			check.Missing = append(check.Missing, key)
		case records.DeepEqual(records.Get(expected, key), rv):
			check.Same = append(check.Same, key)
		default:
			check.Different = append(check.Different, key)
		}
	}
	for _, key := range records.Keys(received) {
		if records.KindOf(records.Get(expected, key)) == records.KindUndefined {
			check.Extra = append(check.Extra, key)
		}
	}
	check.Status = len(check.Missing)+len(check.Extra)+len(check.Different) == 0
	return check
}
