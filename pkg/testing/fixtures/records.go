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

package fixtures

import (
	"github.com/willi84/poland-schedule/pkg/records"
)

// Common test record fixtures for use in tests

// NewUser creates a sample user record with typical values
func NewUser() records.Record {
	return records.Record{
		"id":     1,
		"name":   "Alice Smith",
		"email":  "alice@example.com",
		"age":    30,
		"active": true,
	}
}

// NewOtherUser creates a second user that shares no values with NewUser
func NewOtherUser() records.Record {
	return records.Record{
		"id":     2,
		"name":   "Bob Jones",
		"email":  "bob@example.com",
		"age":    25,
		"active": false,
	}
}

// NewNestedUser creates a user with a nested address and a tag list
func NewNestedUser() records.Record {
	return records.Record{
		"id":   3,
		"name": "Carol White",
		"address": records.Record{
			"street": "1 Main Street",
			"city":   "Berlin",
		},
		"tags": []any{"admin", "owner"},
	}
}

// NewUserPattern creates an expectation matching NewUser through
// placeholders
func NewUserPattern() records.Record {
	return records.Record{
		"id":     "{number}",
		"name":   "Alice {string}",
		"email":  "{string}",
		"age":    "{number}",
		"active": "{boolean}",
	}
}

// NewCoercedUser creates NewUser with every scalar converted to a string,
// as read from a CSV export
func NewCoercedUser() records.Record {
	return records.Record{
		"id":     "1",
		"name":   "Alice Smith",
		"email":  "alice@example.com",
		"age":    "30",
		"active": "true",
	}
}

// NewUsers returns the standard candidate list: NewOtherUser, NewUser and
// NewNestedUser, in that order
func NewUsers() []records.Record {
	return []records.Record{
		NewOtherUser(),
		NewUser(),
		NewNestedUser(),
	}
}
