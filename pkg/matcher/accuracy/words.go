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

package accuracy

import (
	"strings"

	"github.com/willi84/poland-schedule/pkg/matcher/congruence"
)

// Word is one whitespace separated token of a string.
type Word struct {
	Text  string
	Lower string
	Index int
}

// SplitWords splits s on runs of whitespace, dropping empty tokens.
func SplitWords(s string) []string {
	return strings.Fields(s)
}

// Words tokenizes s into Words that keep their position.
func Words(s string) []Word {
	fields := SplitWords(s)
	words := make([]Word, len(fields))
	for i, f := range fields {
		words[i] = Word{
			Text:  f,
			Lower: congruence.Lower(f),
			Index: i,
		}
	}
	return words
}

// alignment is a partial pairing of expected words with received words.
type alignment struct {
	expected map[int]float64
	received map[int]struct{}
}

func newAlignment() alignment {
	return alignment{
		expected: make(map[int]float64),
		received: make(map[int]struct{}),
	}
}

func (a alignment) pair(expectedIdx, receivedIdx int, score float64) {
	a.expected[expectedIdx] = score
	a.received[receivedIdx] = struct{}{}
}

func (a alignment) hasExpected(i int) bool {
	_, ok := a.expected[i]
	return ok
}

func (a alignment) hasReceived(i int) bool {
	_, ok := a.received[i]
	return ok
}

// scoreWordPair decides whether candidate is accepted as a match for pattern
// and with which score: the same word, the same word in another case, a
// placeholder match (always 100) or a character score in [75, 100).
func scoreWordPair(candidate, pattern Word) (float64, bool) {
	score := CharAccuracy(candidate.Text, pattern.Text)
	switch {
	case candidate.Text == pattern.Text:
		return score, true
	case candidate.Lower == pattern.Lower:
		return score, true
	case congruence.MatchWord(pattern.Text, candidate.Text):
		return Full, true
	case score >= PartialWordScore && score < Full:
		return score, true
	default:
		return 0, false
	}
}

// alignSamePosition pairs words that sit at the same index on both sides.
func alignSamePosition(received, expected []Word) alignment {
	out := newAlignment()
	for _, ew := range expected {
		if ew.Index >= len(received) {
			continue
		}
		rw := received[ew.Index]
		if score, ok := scoreWordPair(rw, ew); ok {
			out.pair(ew.Index, rw.Index, score)
		}
	}
	return out
}

// alignLeftovers pairs every received word left over by the first pass with
// the first free expected word it is accepted against. Here the received word
// acts as the pattern, so a placeholder in a leftover expected word is not
// expanded. There is no backtracking.
func alignLeftovers(received, expected []Word, first alignment) alignment {
	out := newAlignment()
	for _, rw := range received {
		if first.hasReceived(rw.Index) {
			continue
		}
		for _, ew := range expected {
			if first.hasExpected(ew.Index) || out.hasExpected(ew.Index) {
				continue
			}
			if score, ok := scoreWordPair(ew, rw); ok {
				out.pair(ew.Index, rw.Index, score)
				break
			}
		}
	}
	return out
}

// mergeScores lists the score of every expected word (0 when unpaired) and
// one 0 for every received word beyond the expected word count.
func mergeScores(first, second alignment, expectedCount, receivedCount int) []float64 {
	scores := make([]float64, 0, max(expectedCount, receivedCount))
	for i := range expectedCount {
		switch {
		case first.hasExpected(i):
			scores = append(scores, first.expected[i])
		case second.hasExpected(i):
			scores = append(scores, second.expected[i])
		default:
			scores = append(scores, 0)
		}
	}
	for range receivedCount - expectedCount {
		scores = append(scores, 0)
	}
	return scores
}

// StringAccuracy scores two strings by aligning their words. Words are first
// paired by position, then the remaining received words are matched against
// the remaining expected words regardless of position. The result is the
// mean of the expected word scores, with a 0 for every surplus received word.
//
// A perfect word score for strings that are not identical (extra whitespace,
// for example) is replaced by CharAccuracy, unless expected holds a
// placeholder.
//
//	StringAccuracy("I have 10 Item", "I have 10 Items")                → 95
//	StringAccuracy("He has 100 balls.", "He has {number} balls.")      → 100
func StringAccuracy(received, expected string) float64 {
	if received == expected {
		return Full
	}

	rw := Words(received)
	ew := Words(expected)

	first := alignSamePosition(rw, ew)
	second := alignLeftovers(rw, ew, first)

	result := Mean(mergeScores(first, second, len(ew), len(rw)))
	if result == Full && !congruence.HasPlaceholder(expected) {
		result = CharAccuracy(received, expected)
	}
	return result
}

// WordAccuracy looks for a single expected word inside received: 100 when the
// word occurs as is, its CharAccuracy when it only occurs in another case,
// 100 when a received word matches it as a placeholder pattern, else 0.
func WordAccuracy(received, expectedWord string) float64 {
	words := Words(received)
	for _, w := range words {
		if w.Text == expectedWord {
			return Full
		}
	}

	lower := congruence.Lower(expectedWord)
	for _, w := range words {
		if w.Lower == lower {
			return CharAccuracy(w.Text, expectedWord)
		}
	}

	for _, w := range words {
		if congruence.MatchWord(expectedWord, w.Text) {
			return Full
		}
	}
	return 0
}
