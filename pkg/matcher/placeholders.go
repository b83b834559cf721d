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
	"github.com/willi84/poland-schedule/pkg/matcher/congruence"
	"github.com/willi84/poland-schedule/pkg/records"
)

// FormatPlaceholders returns a copy of received in which every value matched
// by a placeholder of expected is replaced by the placeholder itself, so a
// diff against expected does not report wildcard fields. Records recurse over
// the keys of both sides, lists over the received elements. received is not
// modified.
func FormatPlaceholders(expected, received any) any {
	ek, rk := records.KindOf(expected), records.KindOf(received)

	switch {
	case ek == records.KindRecord && rk == records.KindRecord:
		out := make(records.Record)
		for _, key := range records.UnionKeys(expected, received) {
			v := FormatPlaceholders(records.Get(expected, key), records.Get(received, key))
			if records.KindOf(v) == records.KindUndefined {
				continue
			}
			out[key] = v
		}
		return out
	case ek == records.KindList && rk == records.KindList:
		keys := records.Keys(received)
		out := make([]any, 0, len(keys))
		for _, key := range keys {
			out = append(out, FormatPlaceholders(records.Get(expected, key), records.Get(received, key)))
		}
		return out
	case records.IsScalar(expected) && records.IsScalar(received):
		s, ok := records.String(expected)
		if ok && congruence.HasPlaceholder(s) && congruence.MatchesPlaceholder(s, received) {
			return s
		}
		return received
	default:
		return received
	}
}
