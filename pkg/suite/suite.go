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

// Package suite loads and runs expectation suites: YAML files listing
// expected records and the candidates each one should (or should not) be
// found in.
package suite

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/willi84/poland-schedule/pkg/fixtures"
	"github.com/willi84/poland-schedule/pkg/records"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoChecks is returned for a suite file without checks.
	ErrNoChecks = errors.New("suite has no checks")
	// ErrInvalidSuite wraps suite validation failures.
	ErrInvalidSuite = errors.New("invalid suite")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Check is one expectation. Candidates come either from CandidatesFile,
// resolved relative to the suite file, or inline from Candidates. A negated
// check passes when no candidate matches.
type Check struct {
	Expected       records.Record   `yaml:"expected" validate:"required"`
	Name           string           `yaml:"name" validate:"required"`
	CandidatesFile string           `yaml:"candidates_file" validate:"required_without=Candidates,excluded_with=Candidates"`
	Candidates     []records.Record `yaml:"candidates"`
	Negate         bool             `yaml:"negate"`
}

// Suite is a list of checks loaded from a YAML file.
type Suite struct {
	// Dir is the directory candidate files are resolved against.
	Dir    string  `yaml:"-"`
	Checks []Check `yaml:"checks" validate:"dive"`
}

// Load reads and validates a suite file. Expected records and inline
// candidates are normalized.
func Load(fs afero.Fs, path string) (*Suite, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes a suite from YAML. Candidate files of the returned suite are
// resolved against the working directory until Dir is set.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}
	if len(s.Checks) == 0 {
		return nil, ErrNoChecks
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSuite, err)
	}

	for i := range s.Checks {
		c := &s.Checks[i]
		expected, err := records.NormalizeRecord(c.Expected, fmt.Sprintf("checks[%d].expected", i))
		if err != nil {
			return nil, err
		}
		c.Expected = expected
		if c.Candidates != nil {
			candidates, err := records.NormalizeRecords(c.Candidates, fmt.Sprintf("checks[%d].candidates", i))
			if err != nil {
				return nil, err
			}
			c.Candidates = candidates
		}
	}
	return &s, nil
}

// candidates returns the inline candidates of c or loads its candidates file.
func (s *Suite) candidates(fs afero.Fs, c Check) ([]records.Record, error) {
	if c.CandidatesFile == "" {
		return c.Candidates, nil
	}
	path := c.CandidatesFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, path)
	}
	return fixtures.LoadCandidates(fs, path)
}
