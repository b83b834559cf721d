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

package config

const (
	DefaultMaxCandidates             = 5
	DefaultKeyHintSimilarity float32 = 0.8
)

type Report struct {
	MaxCandidates     int     `toml:"max_candidates" validate:"min=1,max=50"`
	KeyHintSimilarity float32 `toml:"key_hint_similarity" validate:"gte=0,lte=1"`
	KeyHints          bool    `toml:"key_hints"`
}

// ReportMaxCandidates is the number of ranked candidates listed in a failure
// report.
func (c *Instance) ReportMaxCandidates() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Report.MaxCandidates
}

func (c *Instance) SetReportMaxCandidates(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Report.MaxCandidates = n
}

func (c *Instance) ReportKeyHints() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Report.KeyHints
}

func (c *Instance) SetReportKeyHints(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Report.KeyHints = enabled
}

// ReportKeyHintSimilarity is the lowest Jaro-Winkler similarity at which a
// missing key is reported as a likely rename of an extra key.
func (c *Instance) ReportKeyHintSimilarity() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Report.KeyHintSimilarity
}
