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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/willi84/poland-schedule/pkg/helpers/syncutil"
)

const (
	SchemaVersion = 1
	CfgEnv        = "ITEMMATCH_CFG"
)

var (
	ErrSchemaMismatch = errors.New("schema version mismatch")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrNoConfigPath   = errors.New("config path not set")
)

type Values struct {
	LogFile      string `toml:"log_file,omitempty"`
	Report       Report `toml:"report"`
	Runner       Runner `toml:"runner"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Report: Report{
		MaxCandidates:     DefaultMaxCandidates,
		KeyHints:          true,
		KeyHintSimilarity: DefaultKeyHintSimilarity,
	},
	Runner: Runner{
		Workers: DefaultWorkers,
	},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the value ranges of every section.
//
//nolint:gocritic // config struct copied for immutability
func (v Values) Validate() error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or from the path in the
// ITEMMATCH_CFG environment variable. A missing file is created with the
// defaults.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads the config file on top of the defaults. Fields missing from the
// file keep their default values.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return ErrNoConfigPath
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return fmt.Errorf("%w: got %d, expecting %d", ErrSchemaMismatch, newVals.ConfigSchema, SchemaVersion)
	}

	if err := newVals.Validate(); err != nil {
		return err
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return ErrNoConfigPath
	}

	c.vals.ConfigSchema = SchemaVersion

	if err := c.vals.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

// LogFile returns the path of the rotated log file, or "" when logging to
// a file is disabled.
func (c *Instance) LogFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.LogFile
}

func (c *Instance) SetLogFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.LogFile = path
}
