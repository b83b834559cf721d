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

// Package records defines the value model shared by the matcher packages:
// string keyed records, lists and the scalar kinds (string, number, boolean,
// null and undefined) that are compared against each other.
package records

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// ErrInvalidInput is returned when a value is neither a scalar, a list nor a
// record, e.g. a func or a channel.
var ErrInvalidInput = errors.New("invalid input")

// Record is a string keyed mapping of scalars and nested records. It is an
// alias so that decoded JSON and YAML objects can be used directly.
type Record = map[string]any

// UndefinedValue is the type of Undefined.
type UndefinedValue struct{}

func (UndefinedValue) String() string {
	return "undefined"
}

// MarshalJSON encodes undefined as null.
func (UndefinedValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Undefined is the value of a key that is not present. Looking up a missing
// key with Get returns Undefined, and a key holding Undefined counts as absent.
var Undefined = UndefinedValue{}

// Kind is the runtime type of a value as the matcher sees it.
type Kind int

const (
	KindInvalid Kind = iota
	KindUndefined
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindRecord
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	case KindInvalid:
		return "invalid"
	}
	return "invalid"
}

// KindOf reports the Kind of v. All Go numeric kinds are numbers, nil and nil
// pointers are null, maps are records and slices or arrays are lists.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case UndefinedValue:
		return KindUndefined
	case string:
		return KindString
	case bool:
		return KindBoolean
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case map[string]any:
		return KindRecord
	case []any:
		return KindList
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Map:
		switch rv.Type().Key().Kind() {
		case reflect.String, reflect.Interface:
			return KindRecord
		default:
			return KindInvalid
		}
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return KindOf(rv.Elem().Interface())
	default:
		return KindInvalid
	}
}

// IsScalar reports whether v is a string, number, boolean, null or undefined.
func IsScalar(v any) bool {
	switch KindOf(v) {
	case KindUndefined, KindNull, KindString, KindNumber, KindBoolean:
		return true
	default:
		return false
	}
}

// IsComposite reports whether v is a record or a list.
func IsComposite(v any) bool {
	k := KindOf(v)
	return k == KindRecord || k == KindList
}

// IsNullish reports whether v is null or undefined.
func IsNullish(v any) bool {
	k := KindOf(v)
	return k == KindNull || k == KindUndefined
}

// Number returns the float64 value of a numeric v.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return Number(rv.Elem().Interface())
	default:
		return 0, false
	}
}

func str(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// String returns the string value of v when v is a string.
func String(v any) (string, bool) {
	return str(v)
}

func boolean(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Bool {
		return rv.Bool(), true
	}
	return false, false
}

// Equal reports strict equality of two values: same kind and same value.
// Numbers of different Go types are equal when their float64 values are.
// Composite values are compared with DeepEqual.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindUndefined, KindNull:
		return true
	case KindString:
		sa, _ := str(a)
		sb, _ := str(b)
		return sa == sb
	case KindNumber:
		na, _ := Number(a)
		nb, _ := Number(b)
		return na == nb
	case KindBoolean:
		ba, _ := boolean(a)
		bb, _ := boolean(b)
		return ba == bb
	case KindRecord, KindList:
		return DeepEqual(a, b)
	case KindInvalid:
		return false
	}
	return false
}

// DeepEqual reports whether a and b hold the same structure. Records and
// lists are never equal to each other, undefined entries are ignored.
func DeepEqual(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	if ka != KindRecord && ka != KindList {
		return Equal(a, b)
	}

	keysA := Keys(a)
	keysB := Keys(b)
	if len(keysA) != len(keysB) {
		return false
	}
	for i, key := range keysA {
		if keysB[i] != key {
			return false
		}
		if !DeepEqual(Get(a, key), Get(b, key)) {
			return false
		}
	}
	return true
}

// Get returns the value stored under key in a record or list, or Undefined
// when v holds no such key.
func Get(v any, key string) any {
	if m, ok := v.(map[string]any); ok {
		val, exists := m[key]
		if !exists {
			return Undefined
		}
		return val
	}
	if l, ok := v.([]any); ok {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(l) {
			return Undefined
		}
		return l[i]
	}

	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map:
		for _, mk := range rv.MapKeys() {
			if mapKey(mk) == key {
				return rv.MapIndex(mk).Interface()
			}
		}
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err == nil && i >= 0 && i < rv.Len() {
			return rv.Index(i).Interface()
		}
	default:
	}
	return Undefined
}

// Keys returns the sorted own keys of a record or list. Keys holding
// Undefined are left out. Scalars have no keys.
func Keys(v any) []string {
	var keys []string
	switch KindOf(v) {
	case KindRecord:
		if m, ok := v.(map[string]any); ok {
			keys = make([]string, 0, len(m))
			for k, val := range m {
				if _, undef := val.(UndefinedValue); !undef {
					keys = append(keys, k)
				}
			}
			break
		}
		rv := indirect(reflect.ValueOf(v))
		for _, mk := range rv.MapKeys() {
			if _, undef := rv.MapIndex(mk).Interface().(UndefinedValue); !undef {
				keys = append(keys, mapKey(mk))
			}
		}
	case KindList:
		rv := indirect(reflect.ValueOf(v))
		keys = make([]string, 0, rv.Len())
		for i := range rv.Len() {
			if _, undef := rv.Index(i).Interface().(UndefinedValue); !undef {
				keys = append(keys, strconv.Itoa(i))
			}
		}
		return keys
	default:
		return nil
	}
	sort.Strings(keys)
	return keys
}

// UnionKeys returns the sorted union of the keys of a and b.
func UnionKeys(a, b any) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, src := range [2]any{a, b} {
		for _, k := range Keys(src) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Stringify renders a scalar the way string interpolation would: null is
// "null", undefined is "undefined" and numbers use the shortest form.
func Stringify(v any) string {
	switch KindOf(v) {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		s, _ := str(v)
		return s
	case KindBoolean:
		b, _ := boolean(v)
		return strconv.FormatBool(b)
	case KindNumber:
		n, _ := Number(v)
		return formatNumber(n)
	case KindRecord:
		return "[object Object]"
	case KindList:
		return "[list]"
	case KindInvalid:
		return ""
	}
	return ""
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	case math.Abs(n) >= 1e21 || math.Abs(n) < 1e-6:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}

func mapKey(k reflect.Value) string {
	k = indirect(k)
	if k.Kind() == reflect.String {
		return k.String()
	}
	return Stringify(k.Interface())
}
