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

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/willi84/poland-schedule/pkg/fixtures"
	"github.com/willi84/poland-schedule/pkg/matcher"
	"github.com/willi84/poland-schedule/pkg/matcher/accuracy"
	"github.com/willi84/poland-schedule/pkg/records"
	"github.com/willi84/poland-schedule/pkg/suite"
)

type inputFlags struct {
	expected   string
	candidates string
	json       bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.expected, "expected", "", "file holding the expected record")
	cmd.Flags().StringVar(&f.candidates, "candidates", "", "file holding the candidate records")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("expected")
	_ = cmd.MarkFlagRequired("candidates")
}

func (a *App) decide(f *inputFlags) (matcher.Outcome, error) {
	expected, err := fixtures.LoadRecord(a.fs, f.expected)
	if err != nil {
		return matcher.Outcome{}, fmt.Errorf("error loading expected record: %w", err)
	}
	candidates, err := fixtures.LoadCandidates(a.fs, f.candidates)
	if err != nil {
		return matcher.Outcome{}, fmt.Errorf("error loading candidates: %w", err)
	}
	outcome, err := matcher.Decide(expected, candidates)
	if err != nil {
		return matcher.Outcome{}, fmt.Errorf("error matching candidates: %w", err)
	}
	return outcome, nil
}

func newCheckCommand(app *App) *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that a candidate matches the expected record",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			outcome, err := app.decide(&f)
			if err != nil {
				return err
			}

			if f.json {
				if err := writeJSON(app.stdout, outcome); err != nil {
					return err
				}
			} else if outcome.Pass {
				m := outcome.Matches()[0]
				_, _ = fmt.Fprintf(app.stdout, "PASS: candidate index=%d matches (%s%%)\n",
					m.Index, formatPercent(m.Accuracy))
			} else {
				_, _ = io.WriteString(app.stdout, outcome.Report(app.reportOptions()))
			}

			if !outcome.Pass {
				return ErrCheckFailed
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newRankCommand(app *App) *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank candidates by accuracy against the expected record",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			outcome, err := app.decide(&f)
			if err != nil {
				return err
			}
			if f.json {
				return writeJSON(app.stdout, outcome.Ranked)
			}
			for _, r := range outcome.Ranked {
				_, _ = fmt.Fprintf(app.stdout, "index=%d (%s%%) %s\n",
					r.Index, formatPercent(r.Accuracy), r.State)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newScoreCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "score RECEIVED EXPECTED",
		Short: "Score a received value against an expected value",
		Long: `Both values are parsed as JSON. Arguments that are not valid JSON are
used as plain strings, so 'itemmatch score "hello world" "hello {string}"'
works without extra quoting.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			received, err := parseValue(args[0], "received")
			if err != nil {
				return err
			}
			expected, err := parseValue(args[1], "expected")
			if err != nil {
				return err
			}
			score, err := accuracy.ValueAccuracy(received, expected)
			if err != nil {
				return fmt.Errorf("failed to score values: %w", err)
			}
			_, _ = fmt.Fprintln(app.stdout, formatPercent(score))
			return nil
		},
	}
}

func newSuiteCommand(app *App) *cobra.Command {
	var (
		asJSON bool
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "suite FILE",
		Short: "Run every check of a suite file",
		Long: `Runs every check of a suite file and prints the result of each one.

With --watch the suite is run again whenever the suite file or one of the
candidate files it referenced at startup changes, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.runSuite(ctx, args[0], asJSON)
			if !watch || s == nil {
				return err
			}

			paths := append([]string{args[0]}, s.Files()...)
			return suite.Watch(ctx, paths, suite.DefaultDebounce, func() {
				_, _ = fmt.Fprintln(app.stdout)
				if _, err := app.runSuite(ctx, args[0], asJSON); err != nil && !errors.Is(err, ErrCheckFailed) {
					_, _ = fmt.Fprintf(app.stderr, "Error: %s\n", err)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "run again when the suite or its candidate files change")
	return cmd
}

// runSuite loads and runs the suite at path and prints the results. The
// loaded suite is returned even when checks fail.
func (a *App) runSuite(ctx context.Context, path string, asJSON bool) (*suite.Suite, error) {
	s, err := suite.Load(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("error loading suite: %w", err)
	}
	results, err := suite.Run(ctx, a.fs, s, suite.RunOptions{
		Workers: a.cfg.RunnerWorkers(),
		Report:  a.reportOptions(),
	})
	if err != nil {
		return nil, fmt.Errorf("error running suite: %w", err)
	}

	passed, failed := suite.Summary(results)
	if asJSON {
		if err := writeJSON(a.stdout, suiteJSON(results, passed, failed)); err != nil {
			return s, err
		}
	} else {
		printResults(a.stdout, results, passed, failed)
	}

	if failed > 0 {
		return s, ErrCheckFailed
	}
	return s, nil
}

func printResults(w io.Writer, results []suite.Result, passed, failed int) {
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", status, r.Name)
		if r.Message != "" {
			_, _ = fmt.Fprintf(w, "%s\n", indent(r.Message))
		}
	}
	_, _ = fmt.Fprintf(w, "%d passed, %d failed\n", passed, failed)
}

type resultJSON struct {
	Name    string  `json:"name"`
	Error   string  `json:"error,omitempty"`
	Message string  `json:"message,omitempty"`
	Best    float64 `json:"best_accuracy"`
	Passed  bool    `json:"passed"`
}

type suiteResultJSON struct {
	Checks []resultJSON `json:"checks"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
}

func suiteJSON(results []suite.Result, passed, failed int) suiteResultJSON {
	out := suiteResultJSON{
		Checks: make([]resultJSON, 0, len(results)),
		Passed: passed,
		Failed: failed,
	}
	for _, r := range results {
		item := resultJSON{
			Name:    r.Name,
			Message: r.Message,
			Passed:  r.Passed,
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		if best, ok := r.Outcome.Best(); ok {
			item.Best = best.Accuracy
		}
		out.Checks = append(out.Checks, item)
	}
	return out
}

// parseValue decodes a JSON literal, falling back to the raw text.
func parseValue(arg, path string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		v = arg
	}
	n, err := records.NormalizeAt(v, path)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return n, nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
