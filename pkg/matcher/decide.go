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
	"github.com/rs/zerolog/log"
	"github.com/willi84/poland-schedule/pkg/matcher/accuracy"
	"github.com/willi84/poland-schedule/pkg/records"
)

// Outcome is the result of searching candidates for expected. Expected and
// Candidates hold the normalized inputs, Ranked the scored candidates best
// first. Pass is true when at least one candidate scored 100.
type Outcome struct {
	Expected   records.Record    `json:"expected"`
	Candidates []records.Record  `json:"-"`
	Ranked     []CandidateResult `json:"ranked"`
	Pass       bool              `json:"pass"`
}

// Decide ranks the candidates and decides whether expected was found.
// An empty candidate list never passes.
func Decide(expected records.Record, candidates []records.Record) (Outcome, error) {
	exp, cands, err := normalizeInput(expected, candidates)
	if err != nil {
		return Outcome{}, err
	}

	ranked, err := rank(exp, cands)
	if err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{
		Expected:   exp,
		Candidates: cands,
		Ranked:     ranked,
	}
	for _, r := range ranked {
		if r.Accuracy == accuracy.Full {
			outcome.Pass = true
			break
		}
	}

	log.Debug().
		Int("candidates", len(cands)).
		Bool("pass", outcome.Pass).
		Msg("match decided")

	return outcome, nil
}

// Best returns the highest ranked candidate.
func (o Outcome) Best() (CandidateResult, bool) {
	if len(o.Ranked) == 0 {
		return CandidateResult{}, false
	}
	return o.Ranked[0], true
}

// Matches returns the candidates that scored 100, in input order.
func (o Outcome) Matches() []CandidateResult {
	var out []CandidateResult
	for _, r := range o.Ranked {
		if r.Accuracy == accuracy.Full {
			out = append(out, r)
		}
	}
	return out
}

// candidate returns the normalized candidate record for a ranked result.
func (o Outcome) candidate(r CandidateResult) records.Record {
	if r.Index < 0 || r.Index >= len(o.Candidates) {
		return nil
	}
	return o.Candidates[r.Index]
}
