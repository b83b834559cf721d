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

// Package fixtures loads expected records and candidate collections from
// JSON, YAML, CSV, TOML and INI files.
package fixtures

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/willi84/poland-schedule/pkg/records"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Fixture formats, named after their file extensions.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatTOML = "toml"
	FormatINI  = "ini"
)

// tomlItemsKey holds the candidate array of a TOML fixture.
const tomlItemsKey = "items"

// ErrUnsupportedFormat is returned for a file extension or format name with no
// decoder.
var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// FormatFromPath returns the fixture format for a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "toml":
		return FormatTOML, nil
	case "ini":
		return FormatINI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// LoadCandidates reads a candidate collection. A file holding a single
// record yields a collection of one.
func LoadCandidates(fs afero.Fs, path string) ([]records.Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}
	items, err := parseCandidates(format, data, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("count", len(items)).Msg("loaded candidates")
	return items, nil
}

// LoadRecord reads a file holding exactly one record.
func LoadRecord(fs afero.Fs, path string) (records.Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	return parseRecord(format, data, filepath.Base(path))
}

// ParseCandidates decodes a candidate collection from data.
func ParseCandidates(format string, data []byte) ([]records.Record, error) {
	return parseCandidates(format, data, "candidates")
}

// ParseRecord decodes a single record from data.
func ParseRecord(format string, data []byte) (records.Record, error) {
	return parseRecord(format, data, "expected")
}

func parseCandidates(format string, data []byte, path string) ([]records.Record, error) {
	v, err := decode(format, data, true)
	if err != nil {
		return nil, err
	}
	n, err := records.NormalizeAt(v, path)
	if err != nil {
		return nil, err
	}

	switch val := n.(type) {
	case nil:
		return []records.Record{}, nil
	case records.Record:
		return []records.Record{val}, nil
	case []any:
		out := make([]records.Record, 0, len(val))
		for i, item := range val {
			rec, ok := item.(records.Record)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d]: expected a record, got %s",
					records.ErrInvalidInput, path, i, records.KindOf(item))
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s: expected a list of records, got %s",
			records.ErrInvalidInput, path, records.KindOf(n))
	}
}

func parseRecord(format string, data []byte, path string) (records.Record, error) {
	v, err := decode(format, data, false)
	if err != nil {
		return nil, err
	}
	if rows, ok := v.([]any); ok && (format == FormatCSV || format == FormatINI) {
		if len(rows) != 1 {
			return nil, fmt.Errorf("%w: %s: expected one row, got %d", records.ErrInvalidInput, path, len(rows))
		}
		v = rows[0]
	}
	return records.NormalizeRecord(v, path)
}

// decode returns the raw document. For TOML candidate files the [[items]]
// array is unwrapped when present. INI files yield one record per named
// section, or the keys outside any section when there are none.
func decode(format string, data []byte, candidates bool) (any, error) {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse JSON: unexpected data after top-level value")
		}
		return v, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return v, nil
	case FormatCSV:
		rows, err := gocsv.CSVToMaps(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		out := make([]any, 0, len(rows))
		for _, row := range rows {
			rec := make(records.Record, len(row))
			for k, v := range row {
				rec[k] = v
			}
			out = append(out, rec)
		}
		return out, nil
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if candidates {
			if items, ok := doc[tomlItemsKey]; ok {
				return items, nil
			}
			if len(doc) == 0 {
				return nil, nil
			}
		}
		return doc, nil
	case FormatINI:
		return decodeINI(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeINI(data []byte) (any, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	var sections []any
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		sections = append(sections, iniRecord(sec.KeysHash()))
	}
	if len(sections) > 0 {
		return sections, nil
	}

	keys := f.Section(ini.DefaultSection).KeysHash()
	if len(keys) == 0 {
		return nil, nil
	}
	return []any{iniRecord(keys)}, nil
}

func iniRecord(keys map[string]string) records.Record {
	rec := make(records.Record, len(keys))
	for k, v := range keys {
		rec[k] = v
	}
	return rec
}
