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
	"github.com/google/go-cmp/cmp"
)

// DiffRenderer renders the structural difference between two values as
// line oriented text. It returns "" when there is no difference.
type DiffRenderer interface {
	RenderDiff(expected, received any) string
}

// RenderFunc adapts a plain function to DiffRenderer.
type RenderFunc func(expected, received any) string

func (f RenderFunc) RenderDiff(expected, received any) string {
	return f(expected, received)
}

// CmpRenderer renders diffs with go-cmp. Lines only in expected are prefixed
// with "-", lines only in received with "+".
type CmpRenderer struct{}

const cmpDiffHeader = "- Expected\n+ Received\n\n"

func (CmpRenderer) RenderDiff(expected, received any) string {
	d := cmp.Diff(expected, received)
	if d == "" {
		return ""
	}
	return cmpDiffHeader + d
}
