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
	"regexp"
	"strings"

	"github.com/willi84/poland-schedule/pkg/records"
)

// Placeholder tokens are typed wildcards inside expected values. They may
// stand alone ("{number}") or be embedded in a longer string
// ("room {number}b"), in which case the literal parts must match verbatim.
const (
	TokenString  = "{string}"
	TokenNumber  = "{number}"
	TokenBoolean = "{boolean}"
)

var tokenRe = regexp.MustCompile(`\{(string|number|boolean)\}`)

var tokenKinds = map[string]records.Kind{
	"string":  records.KindString,
	"number":  records.KindNumber,
	"boolean": records.KindBoolean,
}

var typePatterns = map[records.Kind]string{
	records.KindString:  `[^\s]+`,
	records.KindNumber:  `\d+`,
	records.KindBoolean: `(?:true|false)`,
}

// HasPlaceholder reports whether s contains a placeholder token.
func HasPlaceholder(s string) bool {
	return tokenRe.MatchString(s)
}

// PlaceholderType returns the type named by the first placeholder token in s.
func PlaceholderType(s string) (records.Kind, bool) {
	m := tokenRe.FindStringSubmatch(s)
	if m == nil {
		return records.KindInvalid, false
	}
	return tokenKinds[m[1]], true
}

// TokenFor returns the standalone placeholder token for a kind, or "" when
// the kind has none.
func TokenFor(k records.Kind) string {
	switch k {
	case records.KindString:
		return TokenString
	case records.KindNumber:
		return TokenNumber
	case records.KindBoolean:
		return TokenBoolean
	default:
		return ""
	}
}

// placeholderRegex turns a pattern into an anchored regex: every token is
// replaced by its type pattern, everything else is quoted.
func placeholderRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range tokenRe.FindAllStringSubmatchIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		b.WriteString(typePatterns[tokenKinds[pattern[loc[2]:loc[3]]]])
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteString("$")
	return b.String()
}

// MatchWord reports whether input satisfies pattern. Without placeholders
// this is plain equality.
func MatchWord(pattern, input string) bool {
	if !HasPlaceholder(pattern) {
		return pattern == input
	}
	re, err := patterns.compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(input)
}

// MatchesPlaceholder reports whether value is matched by the placeholder
// string pattern. Strings must match the anchored pattern. Other values must
// have the runtime type of the first token; a pattern that is exactly one
// number or boolean token accepts any value of that type, longer patterns
// must also match the stringified value.
func MatchesPlaceholder(pattern string, value any) bool {
	typ, ok := PlaceholderType(pattern)
	if !ok {
		return false
	}
	kind := records.KindOf(value)
	if kind == records.KindString {
		s, _ := records.String(value)
		return MatchWord(pattern, s)
	}
	if kind != typ {
		return false
	}
	if pattern == TokenFor(typ) {
		return true
	}
	return MatchWord(pattern, records.Stringify(value))
}
