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

// Package matcher searches a list of candidate records for one that matches
// an expected record, tolerating case, spacing, type coercion and typed
// placeholders. Candidates are ranked by accuracy and the best ones are
// explained in a diagnostic report when no candidate matches exactly.
package matcher

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/willi84/poland-schedule/pkg/matcher/accuracy"
	"github.com/willi84/poland-schedule/pkg/records"
)

// CandidateResult is the score of one candidate. Index is the position of
// the candidate in the input list.
type CandidateResult struct {
	Fields   []FieldDiff `json:"fields"`
	Index    int         `json:"index"`
	Accuracy float64     `json:"accuracy"`
	State    FieldState  `json:"state"`
}

// Rank scores every candidate against expected and returns the results sorted
// by accuracy, best first. Candidates with the same accuracy keep their input
// order. Inputs are normalized first and never modified; a value that is not
// a record, list or scalar fails with records.ErrInvalidInput.
func Rank(expected records.Record, candidates []records.Record) ([]CandidateResult, error) {
	exp, cands, err := normalizeInput(expected, candidates)
	if err != nil {
		return nil, err
	}
	return rank(exp, cands)
}

func normalizeInput(
	expected records.Record,
	candidates []records.Record,
) (records.Record, []records.Record, error) {
	exp, err := records.NormalizeRecord(expected, "expected")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to normalize expected record: %w", err)
	}
	cands, err := records.NormalizeRecords(candidates, "candidates")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to normalize candidates: %w", err)
	}
	return exp, cands, nil
}

func rank(expected records.Record, candidates []records.Record) ([]CandidateResult, error) {
	results := make([]CandidateResult, 0, len(candidates))
	for i, candidate := range candidates {
		result, err := scoreCandidate(i, expected, candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to score candidate %d: %w", i, err)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Accuracy > results[j].Accuracy
	})

	return results, nil
}

// scoreCandidate averages the field accuracies of one candidate. Two empty
// records have no fields and count as equal.
func scoreCandidate(index int, expected, candidate records.Record) (CandidateResult, error) {
	fields, err := diffFields(expected, candidate)
	if err != nil {
		return CandidateResult{}, err
	}

	acc := accuracy.Full
	if len(fields) > 0 {
		scores := make([]float64, len(fields))
		for i, f := range fields {
			scores[i] = f.Accuracy
		}
		acc = accuracy.Mean(scores)
	}

	result := CandidateResult{
		Index:    index,
		Fields:   fields,
		Accuracy: acc,
		State:    AggregateState(fields),
	}

	log.Debug().
		Int("index", index).
		Float64("accuracy", result.Accuracy).
		Str("state", result.State.String()).
		Msg("candidate scored")

	return result, nil
}
