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

// Package accuracy scores how similar a received value is to an expected one
// on a 0-100 scale, rounded to one decimal. Strings are compared word by word
// and character by character, scalars through their congruence, and records
// by averaging the scores of all their keys.
//
// Every function takes (received, expected) in that order. The scores are not
// symmetric: extra received characters and words are penalised, placeholders
// are read from the expected side.
package accuracy

import (
	"math"
	"unicode"

	"github.com/willi84/poland-schedule/pkg/matcher/congruence"
	"github.com/willi84/poland-schedule/pkg/records"
)

const (
	// Full is the score of an exact match.
	Full = 100.0
	// CongruentScore is the score of a value that only matches after
	// coercing it to the other side's type.
	CongruentScore = 50.0
	// PartialWordScore is the lowest character score at which two different
	// words are still paired up.
	PartialWordScore = 75.0
)

// Round rounds v to one decimal, halves rounding up.
func Round(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Mean returns the average of scores rounded to one decimal, or 0 when there
// are no scores.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return Round(sum / float64(len(scores)))
}

// CharAccuracy compares two strings position by position. Every position of
// expected scores 100 for the same character, 50 for the same character in a
// different case and 0 otherwise. Each received character past the end of
// expected adds a 0. A received string that is shorter than expected is only
// penalised through the positions it cannot match.
//
//	CharAccuracy("Tests", "Tests")     → 100
//	CharAccuracy("Tests2", "Tests")    → 83.3
//	CharAccuracy("Test", "Different")  → 0
func CharAccuracy(received, expected string) float64 {
	r := []rune(received)
	e := []rune(expected)

	scores := make([]float64, 0, max(len(r), len(e)))
	for i, ec := range e {
		switch {
		case i >= len(r):
			scores = append(scores, 0)
		case r[i] == ec:
			scores = append(scores, Full)
		case unicode.ToLower(r[i]) == unicode.ToLower(ec):
			scores = append(scores, CongruentScore)
		default:
			scores = append(scores, 0)
		}
	}
	for range len(r) - len(e) {
		scores = append(scores, 0)
	}

	return Mean(scores)
}

// ScalarAccuracy scores two scalar values.
//
// Two strings are scored with StringAccuracy. Equal values score 100. When
// exactly one side is a string, a placeholder for the other side's type
// scores 100 and a type coerced match ("true" and true) scores 50. Anything
// else scores 0, including null against undefined. Values that cannot be
// normalized fail with records.ErrInvalidInput.
func ScalarAccuracy(received, expected any) (float64, error) {
	r, e, err := normalizePair(received, expected)
	if err != nil {
		return 0, err
	}
	return scalarAccuracy(r, e), nil
}

func scalarAccuracy(received, expected any) float64 {
	rs, rok := records.String(received)
	es, eok := records.String(expected)

	switch {
	case rok && eok:
		return StringAccuracy(rs, es)
	case records.Equal(received, expected):
		return Full
	case rok != eok:
		switch congruence.Classify(received, expected) {
		case congruence.Placeholder:
			return Full
		case congruence.TypeCoerced:
			return CongruentScore
		case congruence.Unrelated, congruence.Equal, congruence.Spaces,
			congruence.Case, congruence.Value:
			return 0
		}
		return 0
	default:
		return 0
	}
}

// ValueAccuracy scores any two values. Two records (or lists) that are deeply
// equal score 100; otherwise every key of either side is scored and the
// scores are averaged. Nested records recurse, scalars use ScalarAccuracy and
// a record against a scalar scores 0.
//
// A key that exists on one side only scores 100 when the value present is
// null or undefined, since an absent key reads as undefined. Values that
// cannot be normalized fail with records.ErrInvalidInput.
func ValueAccuracy(received, expected any) (float64, error) {
	r, e, err := normalizePair(received, expected)
	if err != nil {
		return 0, err
	}
	return valueAccuracy(r, e), nil
}

// RecordAccuracy scores a received record against an expected record.
func RecordAccuracy(received, expected records.Record) (float64, error) {
	r, err := records.NormalizeRecord(received, "received")
	if err != nil {
		return 0, err
	}
	e, err := records.NormalizeRecord(expected, "expected")
	if err != nil {
		return 0, err
	}
	return valueAccuracy(r, e), nil
}

func normalizePair(received, expected any) (r, e any, err error) {
	r, err = records.NormalizeAt(received, "received")
	if err != nil {
		return nil, nil, err
	}
	e, err = records.NormalizeAt(expected, "expected")
	if err != nil {
		return nil, nil, err
	}
	return r, e, nil
}

func valueAccuracy(received, expected any) float64 {
	switch {
	case records.IsComposite(received) && records.IsComposite(expected):
		if records.DeepEqual(received, expected) {
			return Full
		}
		keys := records.UnionKeys(received, expected)
		scores := make([]float64, 0, len(keys))
		for _, key := range keys {
			scores = append(scores, keyAccuracy(records.Get(received, key), records.Get(expected, key)))
		}
		return Mean(scores)
	case records.IsScalar(received) && records.IsScalar(expected):
		return scalarAccuracy(received, expected)
	default:
		return 0
	}
}

func keyAccuracy(received, expected any) float64 {
	rk, ek := records.KindOf(received), records.KindOf(expected)
	if (rk == records.KindUndefined && records.IsNullish(expected)) ||
		(ek == records.KindUndefined && records.IsNullish(received)) {
		return Full
	}
	return valueAccuracy(received, expected)
}
