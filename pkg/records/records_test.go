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

package records

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedString string

func TestKindOf(t *testing.T) {
	t.Parallel()

	var nilPtr *int
	n := 3

	tests := []struct {
		value any
		name  string
		want  Kind
	}{
		{name: "nil", value: nil, want: KindNull},
		{name: "undefined", value: Undefined, want: KindUndefined},
		{name: "string", value: "a", want: KindString},
		{name: "named string", value: namedString("a"), want: KindString},
		{name: "float", value: 1.5, want: KindNumber},
		{name: "int", value: 42, want: KindNumber},
		{name: "uint8", value: uint8(7), want: KindNumber},
		{name: "bool", value: true, want: KindBoolean},
		{name: "record", value: Record{"a": 1}, want: KindRecord},
		{name: "typed map", value: map[string]int{"a": 1}, want: KindRecord},
		{name: "list", value: []any{1, 2}, want: KindList},
		{name: "typed slice", value: []string{"a"}, want: KindList},
		{name: "nil pointer", value: nilPtr, want: KindNull},
		{name: "pointer", value: &n, want: KindNumber},
		{name: "func", value: func() {}, want: KindInvalid},
		{name: "int keyed map", value: map[int]string{1: "a"}, want: KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b any
		name string
		want bool
	}{
		{name: "same strings", a: "hello", b: "hello", want: true},
		{name: "different strings", a: "hello", b: "world", want: false},
		{name: "int and float", a: 42, b: float64(42), want: true},
		{name: "number and string", a: 42, b: "42", want: false},
		{name: "bools", a: true, b: true, want: true},
		{name: "different bools", a: true, b: false, want: false},
		{name: "nil both", a: nil, b: nil, want: true},
		{name: "undefined both", a: Undefined, b: Undefined, want: true},
		{name: "nil vs undefined", a: nil, b: Undefined, want: false},
		{name: "nil vs value", a: nil, b: "value", want: false},
		{name: "records", a: Record{"a": 1}, b: Record{"a": 1.0}, want: true},
		{name: "record vs list", a: Record{"0": 1}, b: []any{1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestDeepEqual(t *testing.T) {
	t.Parallel()

	a := Record{"id": 1, "detail": Record{"name": "Test", "tags": []any{"x", "y"}}}
	b := Record{"detail": Record{"tags": []string{"x", "y"}, "name": "Test"}, "id": 1.0}
	assert.True(t, DeepEqual(a, b))

	b["detail"].(Record)["name"] = "test"
	assert.False(t, DeepEqual(a, b))

	assert.True(t, DeepEqual(Record{"a": Undefined}, Record{}), "undefined entries count as absent")
	assert.False(t, DeepEqual(Record{"a": nil}, Record{}))
}

func TestGet(t *testing.T) {
	t.Parallel()

	rec := Record{"a": 1, "n": nil}
	assert.Equal(t, 1, Get(rec, "a"))
	assert.Nil(t, Get(rec, "n"))
	assert.Equal(t, Undefined, Get(rec, "missing"))

	list := []any{"x", "y"}
	assert.Equal(t, "y", Get(list, "1"))
	assert.Equal(t, Undefined, Get(list, "2"))
	assert.Equal(t, Undefined, Get(list, "nope"))

	assert.Equal(t, 2, Get(map[string]int{"b": 2}, "b"))
	assert.Equal(t, "z", Get([]string{"z"}, "0"))
	assert.Equal(t, Undefined, Get("scalar", "0"))
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, Keys(Record{"c": 1, "a": 2, "b": Record{}}))
	assert.Equal(t, []string{"a"}, Keys(Record{"a": 1, "b": Undefined}))
	assert.Equal(t, []string{"0", "1", "2"}, Keys([]any{1, 2, 3}))
	assert.Empty(t, Keys("scalar"))
	assert.Equal(t, []string{"a", "b", "c"}, UnionKeys(Record{"b": 1, "a": 1}, Record{"c": 1, "a": 2}))
}

func TestStringify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "null", Stringify(nil))
	assert.Equal(t, "undefined", Stringify(Undefined))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "123", Stringify(123))
	assert.Equal(t, "123", Stringify(float64(123)))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "-0.25", Stringify(-0.25))
	assert.Equal(t, "abc", Stringify("abc"))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	in := map[string]any{
		"id":     int64(7),
		"tags":   []string{"a", "b"},
		"person": person{Name: "Ann", Age: 30},
		"ptr":    &person{Name: "Bob"},
		"gone":   Undefined,
		"nested": map[string]int{"x": 1},
	}

	out, err := Normalize(in)
	require.NoError(t, err)

	want := Record{
		"id":     float64(7),
		"tags":   []any{"a", "b"},
		"person": map[string]any{"name": "Ann", "age": float64(30)},
		"ptr":    map[string]any{"name": "Bob", "age": float64(0)},
		"nested": Record{"x": float64(1)},
	}
	assert.Equal(t, want, out)
	assert.Equal(t, int64(7), in["id"], "input must not be modified")
}

func TestNormalizeInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		name  string
		path  string
	}{
		{name: "func", value: func() {}, path: "$"},
		{name: "nested chan", value: Record{"a": Record{"b": make(chan int)}}, path: "$.a.b"},
		{name: "complex in list", value: []any{1, complex(1, 2)}, path: "$[1]"},
		{name: "int keys", value: map[int]any{1: "a"}, path: "$"},
		{name: "struct with func", value: struct{ F func() }{F: func() {}}, path: "$"},
		{name: "nan field", value: Record{"x": math.NaN()}, path: "$.x"},
		{name: "infinite in list", value: []any{1, math.Inf(-1)}, path: "$[1]"},
		{name: "infinite float32", value: Record{"x": float32(math.Inf(1))}, path: "$.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestNormalizeRecords(t *testing.T) {
	t.Parallel()

	recs, err := NormalizeRecords([]Record{{"a": 1}, {"b": int32(2)}}, "candidates")
	require.NoError(t, err)
	assert.Equal(t, []Record{{"a": float64(1)}, {"b": float64(2)}}, recs)

	_, err = NormalizeRecords([]Record{{"a": 1}, {"b": func() {}}}, "candidates")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "candidates[1].b")

	_, err = NormalizeRecord([]any{1}, "expected")
	require.ErrorIs(t, err, ErrInvalidInput)
}
