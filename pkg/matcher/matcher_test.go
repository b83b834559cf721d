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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willi84/poland-schedule/pkg/records"
)

func TestFieldState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "equal", StateEqual.String())
	assert.Equal(t, "mixed", StateMixed.String())
	assert.Equal(t, "FieldState(42)", FieldState(42).String())

	text, err := StateCongruent.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "congruent", string(text))

	_, err = FieldState(42).MarshalText()
	require.Error(t, err)

	var s FieldState
	require.NoError(t, s.UnmarshalText([]byte("missing")))
	assert.Equal(t, StateMissing, s)
	require.Error(t, s.UnmarshalText([]byte("nope")))
}

func TestDiffFields(t *testing.T) {
	t.Parallel()

	expected := records.Record{"id": 1, "name": "Test", "age": 30, "note": nil}
	received := records.Record{"id": 1, "name": "test", "nick": "x"}

	diffs, err := DiffFields(expected, received)
	require.NoError(t, err)
	require.Len(t, diffs, 5)

	byKey := make(map[string]FieldDiff, len(diffs))
	keys := make([]string, 0, len(diffs))
	for _, d := range diffs {
		byKey[d.Key] = d
		keys = append(keys, d.Key)
	}

	assert.Equal(t, []string{"age", "id", "name", "nick", "note"}, keys)

	assert.Equal(t, StateMissing, byKey["age"].State)
	assert.InDelta(t, 0.0, byKey["age"].Accuracy, 1e-9)
	assert.Equal(t, records.Undefined, byKey["age"].Received)

	assert.Equal(t, StateEqual, byKey["id"].State)
	assert.InDelta(t, 100.0, byKey["id"].Accuracy, 1e-9)

	assert.Equal(t, StateCongruent, byKey["name"].State)
	assert.InDelta(t, 87.5, byKey["name"].Accuracy, 1e-9)

	assert.Equal(t, StateExtra, byKey["nick"].State)
	assert.InDelta(t, 0.0, byKey["nick"].Accuracy, 1e-9)

	assert.Equal(t, StateEqual, byKey["note"].State, "null expected and absent received")
	assert.InDelta(t, 100.0, byKey["note"].Accuracy, 1e-9)
}

func TestDiffFieldsStates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expected any
		received any
		name     string
		want     FieldState
		accuracy float64
	}{
		{name: "equal", expected: "a", received: "a", want: StateEqual, accuracy: 100},
		{name: "placeholder", expected: "{number}", received: 7, want: StateEqual, accuracy: 100},
		{name: "coerced", expected: true, received: "true", want: StateCongruent, accuracy: 50},
		{name: "different", expected: "Test", received: "Different", want: StateDifferent, accuracy: 0},
		{name: "null received", expected: "a", received: nil, want: StateMissing, accuracy: 0},
		{name: "null expected", expected: nil, received: "a", want: StateExtra, accuracy: 0},
		{name: "both null", expected: nil, received: nil, want: StateEqual, accuracy: 100},
		{
			name:     "nested partly",
			expected: records.Record{"a": 1, "b": 2},
			received: records.Record{"a": 1, "b": 3},
			want:     StateCongruent,
			accuracy: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diffs, err := DiffFields(records.Record{"k": tt.expected}, records.Record{"k": tt.received})
			require.NoError(t, err)
			require.Len(t, diffs, 1)
			assert.Equal(t, tt.want, diffs[0].State)
			assert.InDelta(t, tt.accuracy, diffs[0].Accuracy, 1e-9)
		})
	}
}

func TestDiffFieldsInvalidInput(t *testing.T) {
	t.Parallel()

	bad := records.Record{"id": 1, "fn": func() {}}
	good := records.Record{"id": 1}

	_, err := DiffFields(good, bad)
	require.ErrorIs(t, err, records.ErrInvalidInput)
	assert.Contains(t, err.Error(), "received.fn")

	_, err = DiffFields(bad, good)
	require.ErrorIs(t, err, records.ErrInvalidInput)
	assert.Contains(t, err.Error(), "expected.fn")
}

func TestAggregateState(t *testing.T) {
	t.Parallel()

	fields := func(states ...FieldState) []FieldDiff {
		out := make([]FieldDiff, len(states))
		for i, s := range states {
			out[i] = FieldDiff{State: s}
		}
		return out
	}

	assert.Equal(t, StateEqual, AggregateState(nil))
	assert.Equal(t, StateEqual, AggregateState(fields(StateEqual, StateEqual)))
	assert.Equal(t, StateDifferent, AggregateState(fields(StateEqual, StateDifferent)))
	assert.Equal(t, StateMissing, AggregateState(fields(StateMissing, StateEqual, StateMissing)))
	assert.Equal(t, StateMixed, AggregateState(fields(StateMissing, StateExtra)))
	assert.Equal(t, StateMixed, AggregateState(fields(StateCongruent, StateEqual, StateDifferent)))
}

func TestCompareKeys(t *testing.T) {
	t.Parallel()

	expected := records.Record{"id": 1, "name": "a", "age": 2, "meta": records.Record{"x": 1}}
	received := records.Record{"id": 1, "name": "b", "meta": records.Record{"x": 1}, "extra": true}

	check := CompareKeys(expected, received)
	assert.Equal(t, []string{"age"}, check.Missing)
	assert.Equal(t, []string{"extra"}, check.Extra)
	assert.Equal(t, []string{"name"}, check.Different)
	assert.Equal(t, []string{"id", "meta"}, check.Same)
	assert.False(t, check.Status)

	same := CompareKeys(expected, expected)
	assert.Empty(t, same.Missing)
	assert.Empty(t, same.Extra)
	assert.Empty(t, same.Different)
	assert.True(t, same.Status)
}

func TestRankSelectsExactCandidate(t *testing.T) {
	t.Parallel()

	expected := records.Record{"id": 1, "name": "Test"}
	candidates := []records.Record{
		{"id": 2, "name": "Test"},
		{"id": 1, "name": "Test"},
	}

	ranked, err := Rank(expected, candidates)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, 1, ranked[0].Index)
	assert.InDelta(t, 100.0, ranked[0].Accuracy, 1e-9)
	assert.Equal(t, StateEqual, ranked[0].State)

	assert.Equal(t, 0, ranked[1].Index)
	assert.InDelta(t, 50.0, ranked[1].Accuracy, 1e-9)
	assert.Equal(t, StateDifferent, ranked[1].State)
}

func TestRankStableTieBreak(t *testing.T) {
	t.Parallel()

	expected := records.Record{"id": 1}
	candidates := []records.Record{{"id": 2}, {"id": 3}, {"id": 1}, {"id": 4}}

	ranked, err := Rank(expected, candidates)
	require.NoError(t, err)

	indexes := make([]int, 0, len(ranked))
	for _, r := range ranked {
		indexes = append(indexes, r.Index)
	}
	assert.Equal(t, []int{2, 0, 1, 3}, indexes)
}

func TestRankEmptyRecords(t *testing.T) {
	t.Parallel()

	ranked, err := Rank(records.Record{}, []records.Record{{}})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.InDelta(t, 100.0, ranked[0].Accuracy, 1e-9)
	assert.Equal(t, StateEqual, ranked[0].State)
	assert.Empty(t, ranked[0].Fields)
}

func TestRankInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Rank(records.Record{"id": 1}, []records.Record{{"id": 1}, {"fn": func() {}}})
	require.ErrorIs(t, err, records.ErrInvalidInput)
	assert.Contains(t, err.Error(), "candidates[1]")

	_, err = Rank(records.Record{"ch": make(chan int)}, nil)
	require.ErrorIs(t, err, records.ErrInvalidInput)
	assert.Contains(t, err.Error(), "expected")

	_, err = Rank(records.Record{"x": 1}, []records.Record{{"x": math.NaN()}})
	require.ErrorIs(t, err, records.ErrInvalidInput)
	assert.Contains(t, err.Error(), "candidates[0].x")
}

func TestRankDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	expected := records.Record{"id": 1, "name": "{string}"}
	candidates := []records.Record{{"id": 1, "name": "Bob", "tags": []any{"a"}}}

	_, err := Rank(expected, candidates)
	require.NoError(t, err)

	assert.Equal(t, records.Record{"id": 1, "name": "{string}"}, expected)
	assert.Equal(t, []records.Record{{"id": 1, "name": "Bob", "tags": []any{"a"}}}, candidates)
}

func TestDecide(t *testing.T) {
	t.Parallel()

	t.Run("exact candidate passes", func(t *testing.T) {
		t.Parallel()
		outcome, err := Decide(
			records.Record{"id": 1, "name": "{string}"},
			[]records.Record{{"id": 2, "name": "Ann"}, {"id": 1, "name": "Bob"}},
		)
		require.NoError(t, err)
		assert.True(t, outcome.Pass)

		best, ok := outcome.Best()
		require.True(t, ok)
		assert.Equal(t, 1, best.Index)

		matches := outcome.Matches()
		require.Len(t, matches, 1)
		assert.Equal(t, 1, matches[0].Index)
	})

	t.Run("case difference fails", func(t *testing.T) {
		t.Parallel()
		outcome, err := Decide(
			records.Record{"id": 1, "name": "Test"},
			[]records.Record{{"id": 1, "name": "test"}},
		)
		require.NoError(t, err)
		assert.False(t, outcome.Pass)
		require.Len(t, outcome.Ranked, 1)
		assert.InDelta(t, 93.8, outcome.Ranked[0].Accuracy, 1e-9)
		assert.Equal(t, StateCongruent, outcome.Ranked[0].State)
		assert.Empty(t, outcome.Matches())
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		outcome, err := Decide(records.Record{"id": 1}, nil)
		require.NoError(t, err)
		assert.False(t, outcome.Pass)
		assert.Empty(t, outcome.Ranked)
		_, ok := outcome.Best()
		assert.False(t, ok)
	})

	t.Run("normalizes numbers", func(t *testing.T) {
		t.Parallel()
		outcome, err := Decide(
			records.Record{"count": int64(3)},
			[]records.Record{{"count": uint8(3)}},
		)
		require.NoError(t, err)
		assert.True(t, outcome.Pass)
		assert.Equal(t, records.Record{"count": 3.0}, outcome.Expected)
	})
}

func TestCandidateResultJSON(t *testing.T) {
	t.Parallel()

	ranked, err := Rank(records.Record{"id": 1}, []records.Record{{"name": "x"}})
	require.NoError(t, err)

	data, err := json.Marshal(ranked[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"index": 0,
		"accuracy": 0,
		"state": "mixed",
		"fields": [
			{"key": "id", "expected": 1, "received": null, "state": "missing", "accuracy": 0},
			{"key": "name", "expected": null, "received": "x", "state": "extra", "accuracy": 0}
		]
	}`, string(data))
}
