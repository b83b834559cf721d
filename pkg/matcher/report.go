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
	"strconv"
	"strings"

	"github.com/willi84/poland-schedule/pkg/matcher/accuracy"
	"github.com/willi84/poland-schedule/pkg/records"
)

const (
	containsHint    = "ContainsItem(candidates, expected)"
	notContainsHint = "NotContainsItem(candidates, expected)"

	// DefaultMaxCandidates is the number of ranked candidates listed in a
	// failure report.
	DefaultMaxCandidates = 5
)

// ReportOptions controls the failure report.
type ReportOptions struct {
	Renderer          DiffRenderer
	MaxCandidates     int
	KeyHintSimilarity float32
	KeyHints          bool
}

// DefaultReportOptions lists five candidates, adds key hints and renders the
// diff with go-cmp.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Renderer:          CmpRenderer{},
		MaxCandidates:     DefaultMaxCandidates,
		KeyHints:          true,
		KeyHintSimilarity: DefaultKeyHintSimilarity,
	}
}

// Report explains a failed match with DefaultReportOptions.
func Report(o Outcome) string {
	return o.Report(DefaultReportOptions())
}

// Report explains why no candidate matched: the accuracy of the best
// candidate, the best non-perfect candidates, the keys involved and a diff
// between expected and the best candidate. Fields of the best candidate that
// were matched by a placeholder show the placeholder in the diff.
func (o Outcome) Report(opts ReportOptions) string {
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultMaxCandidates
	}
	if opts.Renderer == nil {
		opts.Renderer = CmpRenderer{}
	}

	var b strings.Builder
	b.WriteString(containsHint)
	b.WriteString("\n\n")

	top, ok := o.Best()
	if !ok {
		b.WriteString("Expected item was not found: there are no candidates\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Expected item has different values than received (%s%%)\n\n", formatPercent(top.Accuracy))

	listed := make([]CandidateResult, 0, opts.MaxCandidates)
	for _, r := range o.Ranked {
		if len(listed) == opts.MaxCandidates {
			break
		}
		if r.Accuracy < accuracy.Full {
			listed = append(listed, r)
		}
	}
	fmt.Fprintf(&b, "matches: %d\n", len(listed))
	for _, r := range listed {
		fmt.Fprintf(&b, "        - index=%d (%s%%)\n", r.Index, formatPercent(r.Accuracy))
	}
	b.WriteString("\n")

	received := o.candidate(top)
	if keys := records.UnionKeys(o.Expected, received); len(keys) > 0 {
		fmt.Fprintf(&b, "Keys: %s\n", strings.Join(keys, ", "))
	}

	check := CompareKeys(o.Expected, received)
	if len(check.Missing) > 0 {
		fmt.Fprintf(&b, "missing keys: %s\n", strings.Join(check.Missing, ", "))
	}
	if len(check.Extra) > 0 {
		fmt.Fprintf(&b, "extra keys: %s\n", strings.Join(check.Extra, ", "))
	}
	if opts.KeyHints {
		for _, h := range KeyHints(check, opts.KeyHintSimilarity) {
			b.WriteString(h.String())
			b.WriteString("\n")
		}
	}

	b.WriteString("\ndiff:\n")
	b.WriteString(opts.Renderer.RenderDiff(o.Expected, FormatPlaceholders(o.Expected, received)))

	return b.String()
}

// PassReport explains a successful match, for assertions that expect no
// candidate to match.
func PassReport(o Outcome) string {
	var b strings.Builder
	b.WriteString(notContainsHint)
	b.WriteString("\n\n")

	matches := o.Matches()
	if len(matches) == 0 {
		b.WriteString("Expected item was not found\n")
		return b.String()
	}

	first := matches[0]
	fmt.Fprintf(&b, "Expected item not to be found, but candidate index=%d matches (%s%%)\n",
		first.Index, formatPercent(first.Accuracy))
	if len(matches) > 1 {
		indexes := make([]string, 0, len(matches)-1)
		for _, m := range matches[1:] {
			indexes = append(indexes, strconv.Itoa(m.Index))
		}
		fmt.Fprintf(&b, "also matching: index=%s\n", strings.Join(indexes, ", index="))
	}
	if keys := records.Keys(o.candidate(first)); len(keys) > 0 {
		fmt.Fprintf(&b, "Keys: %s\n", strings.Join(keys, ", "))
	}
	return b.String()
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
