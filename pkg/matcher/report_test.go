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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willi84/poland-schedule/pkg/records"
)

func decide(t *testing.T, expected records.Record, candidates ...records.Record) Outcome {
	t.Helper()
	outcome, err := Decide(expected, candidates)
	require.NoError(t, err)
	return outcome
}

func TestReport(t *testing.T) {
	t.Parallel()

	outcome := decide(t,
		records.Record{"id": 1, "name": "Test", "age": "{number}"},
		records.Record{"id": 2, "name": "Test", "age": 30},
		records.Record{"id": 1, "name": "Tests", "age": 31},
	)
	require.False(t, outcome.Pass)

	report := Report(outcome)

	assert.True(t, strings.HasPrefix(report, "ContainsItem(candidates, expected)\n\n"))
	assert.Contains(t, report, "Expected item has different values than received (93.3%)")
	assert.Contains(t, report, "matches: 2\n"+
		"        - index=1 (93.3%)\n"+
		"        - index=0 (66.7%)\n")
	assert.Contains(t, report, "Keys: age, id, name\n")
	assert.NotContains(t, report, "missing keys")
	assert.NotContains(t, report, "extra keys")
	assert.Contains(t, report, "\ndiff:\n- Expected\n+ Received\n")
	assert.Contains(t, report, "Tests")
}

func TestReportSubstitutesPlaceholders(t *testing.T) {
	t.Parallel()

	outcome := decide(t,
		records.Record{"id": 1, "name": "{string}", "count": "{number}"},
		records.Record{"id": 2, "name": "Bob", "count": 12345},
	)
	require.False(t, outcome.Pass)

	var gotExpected, gotReceived any
	opts := DefaultReportOptions()
	opts.Renderer = RenderFunc(func(expected, received any) string {
		gotExpected, gotReceived = expected, received
		return CmpRenderer{}.RenderDiff(expected, received)
	})

	report := outcome.Report(opts)

	assert.Equal(t, records.Record{"id": 1.0, "name": "{string}", "count": "{number}"}, gotExpected)
	assert.Equal(t, records.Record{"id": 2.0, "name": "{string}", "count": "{number}"}, gotReceived)
	assert.NotContains(t, report, "Bob")
	assert.NotContains(t, report, "12345")
	assert.Contains(t, report, "id")

	// the candidate itself is left alone
	assert.Equal(t, "Bob", outcome.Candidates[0]["name"])
}

func TestReportKeyHints(t *testing.T) {
	t.Parallel()

	outcome := decide(t,
		records.Record{"id": 1, "userName": "bob"},
		records.Record{"id": 1, "username": "bob"},
	)
	require.False(t, outcome.Pass)

	report := Report(outcome)
	assert.Contains(t, report, "Keys: id, userName, username\n")
	assert.Contains(t, report, "missing keys: userName\n")
	assert.Contains(t, report, "extra keys: username\n")
	assert.Contains(t, report, `hint: expected key "userName" looks like received key "username"`)

	opts := DefaultReportOptions()
	opts.KeyHints = false
	assert.NotContains(t, outcome.Report(opts), "hint:")
}

func TestReportMaxCandidates(t *testing.T) {
	t.Parallel()

	candidates := make([]records.Record, 0, 7)
	for i := range 7 {
		candidates = append(candidates, records.Record{"id": i + 10})
	}
	outcome := decide(t, records.Record{"id": 1}, candidates...)

	assert.Contains(t, Report(outcome), "matches: 5\n")

	opts := DefaultReportOptions()
	opts.MaxCandidates = 2
	report := outcome.Report(opts)
	assert.Contains(t, report, "matches: 2\n        - index=0 (0%)\n        - index=1 (0%)\n\n")
	assert.NotContains(t, report, "index=2")
}

func TestReportCustomRenderer(t *testing.T) {
	t.Parallel()

	outcome := decide(t, records.Record{"id": 1}, records.Record{"id": 2})
	opts := ReportOptions{Renderer: RenderFunc(func(_, _ any) string { return "DIFF" })}

	report := outcome.Report(opts)
	assert.True(t, strings.HasSuffix(report, "\ndiff:\nDIFF"))
	assert.Contains(t, report, "matches: 1\n", "zero MaxCandidates falls back to the default")
}

func TestReportNoCandidates(t *testing.T) {
	t.Parallel()

	outcome := decide(t, records.Record{"id": 1})
	report := Report(outcome)

	assert.Contains(t, report, "ContainsItem(candidates, expected)")
	assert.Contains(t, report, "there are no candidates")
	assert.NotContains(t, report, "diff:")
}

func TestPassReport(t *testing.T) {
	t.Parallel()

	outcome := decide(t,
		records.Record{"id": 1},
		records.Record{"id": 2},
		records.Record{"id": 1},
		records.Record{"id": 1},
	)
	require.True(t, outcome.Pass)

	report := PassReport(outcome)
	assert.True(t, strings.HasPrefix(report, "NotContainsItem(candidates, expected)\n\n"))
	assert.Contains(t, report, "candidate index=1 matches (100%)")
	assert.Contains(t, report, "also matching: index=2\n")
	assert.Contains(t, report, "Keys: id\n")

	failed := decide(t, records.Record{"id": 1}, records.Record{"id": 2})
	assert.Contains(t, PassReport(failed), "Expected item was not found")
}

func TestFormatPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expected any
		received any
		want     any
		name     string
	}{
		{
			name:     "typed placeholders",
			expected: records.Record{"name": "{string}", "n": "{number}", "ok": "{boolean}", "x": "plain"},
			received: records.Record{"name": "Bob", "n": 5, "ok": true, "x": "other", "extra": 1},
			want:     records.Record{"name": "{string}", "n": "{number}", "ok": "{boolean}", "x": "other", "extra": 1},
		},
		{
			name:     "type mismatch keeps value",
			expected: records.Record{"n": "{number}"},
			received: records.Record{"n": "five"},
			want:     records.Record{"n": "five"},
		},
		{
			name:     "absent key stays absent",
			expected: records.Record{"id": 1, "name": "{string}"},
			received: records.Record{"id": 1},
			want:     records.Record{"id": 1},
		},
		{
			name:     "nested",
			expected: records.Record{"meta": records.Record{"at": "{number}"}},
			received: records.Record{"meta": records.Record{"at": 1700000000, "by": "x"}},
			want:     records.Record{"meta": records.Record{"at": "{number}", "by": "x"}},
		},
		{
			name:     "lists",
			expected: records.Record{"tags": []any{"{string}", "b"}},
			received: records.Record{"tags": []any{"a", "c", "d"}},
			want:     records.Record{"tags": []any{"{string}", "c", "d"}},
		},
		{
			name:     "record against scalar",
			expected: records.Record{"a": 1},
			received: "text",
			want:     "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatPlaceholders(tt.expected, tt.received))
		})
	}
}

func TestKeyHints(t *testing.T) {
	t.Parallel()

	hints := KeyHints(PropertyCheck{
		Missing: []string{"name", "userName"},
		Extra:   []string{"Name", "username", "zip"},
	}, DefaultKeyHintSimilarity)

	require.Len(t, hints, 2)
	assert.Equal(t, "name", hints[0].Expected)
	assert.Equal(t, "Name", hints[0].Received)
	assert.Equal(t, "userName", hints[1].Expected)
	assert.Equal(t, "username", hints[1].Received)
	assert.Greater(t, hints[1].Similarity, float32(0.9))

	assert.Empty(t, KeyHints(PropertyCheck{Missing: []string{"name"}, Extra: []string{"zip"}}, 0.8))
	assert.Empty(t, KeyHints(PropertyCheck{Missing: []string{"name"}}, 0.8))
}
