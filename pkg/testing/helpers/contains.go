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

package helpers

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/willi84/poland-schedule/pkg/matcher"
	"github.com/willi84/poland-schedule/pkg/records"
)

// MatchResult is the result of searching a candidate list for an expected
// record. Message renders the failure report for Pass == false and the pass
// report otherwise; it is only built when called.
type MatchResult struct {
	Message func() string
	Outcome matcher.Outcome
	Pass    bool
}

// CheckContains decides whether candidates contain a record matching
// expected. Invalid input is returned as an error wrapping
// records.ErrInvalidInput.
func CheckContains(candidates []records.Record, expected records.Record) (MatchResult, error) {
	return CheckContainsWithOptions(candidates, expected, matcher.DefaultReportOptions())
}

// CheckContainsWithOptions is CheckContains with custom report options.
func CheckContainsWithOptions(
	candidates []records.Record,
	expected records.Record,
	opts matcher.ReportOptions,
) (MatchResult, error) {
	outcome, err := matcher.Decide(expected, candidates)
	if err != nil {
		return MatchResult{}, fmt.Errorf("failed to check candidates: %w", err)
	}
	res := MatchResult{
		Outcome: outcome,
		Pass:    outcome.Pass,
	}
	if outcome.Pass {
		res.Message = func() string { return matcher.PassReport(outcome) }
	} else {
		res.Message = func() string { return outcome.Report(opts) }
	}
	return res, nil
}

type tHelper interface {
	Helper()
}

// ContainsItem asserts that at least one candidate matches expected with
// full accuracy.
//
//	helpers.ContainsItem(t, users, records.Record{"id": 1, "name": "{string}"})
func ContainsItem(t assert.TestingT, candidates []records.Record, expected records.Record, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	res, err := CheckContains(candidates, expected)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	if !res.Pass {
		return assert.Fail(t, res.Message(), msgAndArgs...)
	}
	return true
}

// NotContainsItem asserts that no candidate matches expected with full
// accuracy.
func NotContainsItem(t assert.TestingT, candidates []records.Record, expected records.Record, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	res, err := CheckContains(candidates, expected)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	if res.Pass {
		return assert.Fail(t, res.Message(), msgAndArgs...)
	}
	return true
}
