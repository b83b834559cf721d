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

package records

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Normalize returns a copy of v in canonical form: records become Record,
// lists become []any, every number becomes float64 and pointers are
// dereferenced. Structs are converted through their JSON encoding. Values
// that cannot be represented (funcs, channels, complex numbers, NaN and
// infinities, maps with non-string keys) fail with ErrInvalidInput. v itself is never modified.
func Normalize(v any) (any, error) {
	return normalize(v, "$")
}

// NormalizeAt is Normalize with a caller supplied path used in error messages.
func NormalizeAt(v any, path string) (any, error) {
	return normalize(v, path)
}

// NormalizeRecord normalizes v and requires the result to be a record.
func NormalizeRecord(v any, path string) (Record, error) {
	n, err := normalize(v, path)
	if err != nil {
		return nil, err
	}
	rec, ok := n.(Record)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected a record, got %s", ErrInvalidInput, path, KindOf(n))
	}
	return rec, nil
}

// NormalizeRecords normalizes every element of a candidate collection.
func NormalizeRecords(items []Record, path string) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := NormalizeRecord(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func normalize(v any, path string) (any, error) {
	switch val := v.(type) {
	case nil, UndefinedValue, string, bool:
		return val, nil
	case float64:
		return finite(val, path)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, path, err)
		}
		return finite(f, path)
	case map[string]any:
		out := make(Record, len(val))
		for k, elem := range val {
			n, err := normalize(elem, path+"."+k)
			if err != nil {
				return nil, err
			}
			if _, undef := n.(UndefinedValue); undef {
				continue
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			n, err := normalize(elem, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64:
		n, _ := Number(v)
		return finite(n, path)
	case reflect.Map:
		return normalizeMap(rv, path)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			n, err := normalize(rv.Index(i).Interface(), path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem().Interface(), path)
	case reflect.Struct:
		return normalizeStruct(v, path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported type %T", ErrInvalidInput, path, v)
	}
}

// finite rejects NaN and infinities, which have no JSON form and never
// compare equal to themselves.
func finite(f float64, path string) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s: non-finite number %v", ErrInvalidInput, path, f)
	}
	return f, nil
}

func normalizeMap(rv reflect.Value, path string) (any, error) {
	if rv.IsNil() {
		return nil, nil
	}
	out := make(Record, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := indirect(iter.Key())
		if k.Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %s: non-string key %v", ErrInvalidInput, path, iter.Key().Interface())
		}
		key := k.String()
		n, err := normalize(iter.Value().Interface(), path+"."+key)
		if err != nil {
			return nil, err
		}
		if _, undef := n.(UndefinedValue); undef {
			continue
		}
		out[key] = n
	}
	return out, nil
}

func normalizeStruct(v any, path string) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, path, err)
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, path, err)
	}
	return decoded, nil
}
