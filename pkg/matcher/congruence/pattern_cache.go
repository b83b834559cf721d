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

package congruence

import (
	"fmt"
	"regexp"

	"github.com/willi84/poland-schedule/pkg/helpers/syncutil"
)

// patternCache keeps compiled placeholder patterns. Expected records are
// compared against many candidates, so the same pattern is looked up over and
// over. The cache never changes what a pattern matches.
type patternCache struct {
	cache map[string]*regexp.Regexp
	mu    syncutil.RWMutex
}

var patterns = newPatternCache()

func newPatternCache() *patternCache {
	return &patternCache{
		cache: make(map[string]*regexp.Regexp),
	}
}

// compile returns the anchored regex for a placeholder pattern, compiling it
// on first use.
func (pc *patternCache) compile(pattern string) (*regexp.Regexp, error) {
	pc.mu.RLock()
	if re, exists := pc.cache[pattern]; exists {
		pc.mu.RUnlock()
		return re, nil
	}
	pc.mu.RUnlock()

	pc.mu.Lock()
	defer pc.mu.Unlock()

	// another goroutine may have compiled it while we waited
	if re, exists := pc.cache[pattern]; exists {
		return re, nil
	}

	re, err := regexp.Compile(placeholderRegex(pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to compile placeholder pattern %q: %w", pattern, err)
	}

	pc.cache[pattern] = re
	return re, nil
}

func (pc *patternCache) size() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return len(pc.cache)
}
