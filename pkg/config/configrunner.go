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

const DefaultWorkers = 4

type Runner struct {
	Workers int `toml:"workers" validate:"min=1,max=64"`
}

// RunnerWorkers is the number of suite checks evaluated in parallel.
func (c *Instance) RunnerWorkers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Runner.Workers
}

func (c *Instance) SetRunnerWorkers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Runner.Workers = n
}
