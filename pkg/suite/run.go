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

package suite

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/willi84/poland-schedule/pkg/config"
	"github.com/willi84/poland-schedule/pkg/matcher"
	"golang.org/x/sync/errgroup"
)

// RunOptions controls a suite run. Report configures the diagnostic report of
// failed checks and Workers caps how many checks run at once, falling back to
// config.DefaultWorkers when not positive.
type RunOptions struct {
	Report  matcher.ReportOptions
	Workers int
}

// Result is the evaluation of one check. Err is set when the check could
// not be evaluated, for example because its candidates file is missing; such
// a check has not passed.
type Result struct {
	Err     error
	Name    string
	Message string
	Outcome matcher.Outcome
	Passed  bool
}

// Run evaluates every check of s with at most opts.Workers checks in
// flight. Results are returned in suite order. Only cancellation of ctx
// aborts the run.
func Run(ctx context.Context, fs afero.Fs, s *Suite, opts RunOptions) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = config.DefaultWorkers
	}

	results := make([]Result, len(s.Checks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range s.Checks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("check %q: %w", c.Name, err)
			}
			results[i] = s.runCheck(fs, c, opts.Report)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Suite) runCheck(fs afero.Fs, c Check, opts matcher.ReportOptions) Result {
	res := Result{Name: c.Name}

	candidates, err := s.candidates(fs, c)
	if err != nil {
		res.Err = err
		res.Message = err.Error()
		log.Debug().Err(err).Str("check", c.Name).Msg("check failed to load")
		return res
	}

	outcome, err := matcher.Decide(c.Expected, candidates)
	if err != nil {
		res.Err = err
		res.Message = err.Error()
		return res
	}
	res.Outcome = outcome
	res.Passed = outcome.Pass != c.Negate

	switch {
	case res.Passed:
	case c.Negate:
		res.Message = matcher.PassReport(outcome)
	default:
		res.Message = outcome.Report(opts)
	}

	log.Debug().
		Str("check", c.Name).
		Bool("passed", res.Passed).
		Bool("negate", c.Negate).
		Msg("check evaluated")
	return res
}

// Summary counts passed and failed results.
func Summary(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
