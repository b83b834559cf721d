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
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

// DefaultKeyHintSimilarity is the lowest Jaro-Winkler similarity at which a
// missing key is reported as a likely misspelling of an extra key.
const DefaultKeyHintSimilarity float32 = 0.8

// KeyHint pairs a key missing from a candidate with the extra key it most
// likely corresponds to.
type KeyHint struct {
	Expected   string  `json:"expected"`
	Received   string  `json:"received"`
	Similarity float32 `json:"similarity"`
}

func (h KeyHint) String() string {
	return "hint: expected key \"" + h.Expected + "\" looks like received key \"" + h.Received + "\""
}

// KeyHints pairs every missing key of check with the most similar extra key.
// Jaro-Winkler favours a shared prefix, which fits renamed fields such as
// "userName" and "username". Keys below minSimilarity get no hint. On equal
// similarity the first extra key in sorted order wins.
func KeyHints(check PropertyCheck, minSimilarity float32) []KeyHint {
	if len(check.Missing) == 0 || len(check.Extra) == 0 {
		return nil
	}

	var hints []KeyHint
	for _, missing := range check.Missing {
		best := KeyHint{Expected: missing}
		for _, extra := range check.Extra {
			similarity := edlib.JaroWinklerSimilarity(missing, extra)
			if similarity > best.Similarity {
				best.Received = extra
				best.Similarity = similarity
			}
		}

		if best.Received == "" || best.Similarity < minSimilarity {
			continue
		}

		log.Debug().
			Str("expected", best.Expected).
			Str("received", best.Received).
			Float32("similarity", best.Similarity).
			Msg("key hint")

		hints = append(hints, best)
	}
	return hints
}
