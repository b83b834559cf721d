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

// Package cli implements the itemmatch command line: checking expected
// records against candidate files, ranking candidates, scoring single values
// and running expectation suites.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/willi84/poland-schedule/pkg/config"
	"github.com/willi84/poland-schedule/pkg/helpers"
	"github.com/willi84/poland-schedule/pkg/matcher"
)

// ErrCheckFailed is returned by commands whose expectation did not hold.
// The report has already been printed when it is returned.
var ErrCheckFailed = errors.New("check failed")

// Flags holds the global flags shared by all subcommands.
type Flags struct {
	ConfigDir string
	Debug     bool
}

// App carries what subcommands need once the root command has set up
// config and logging.
type App struct {
	fs     afero.Fs
	cfg    *config.Instance
	stdout io.Writer
	stderr io.Writer
	flags  Flags
}

// NewRootCommand builds the command tree. Config is read from fs; logs go to
// stderr through a console writer.
func NewRootCommand(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	app := &App{
		fs:     fs,
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Find expected records among candidates, tolerating small differences",
		Long: `itemmatch searches a list of candidate records for one that matches an
expected record. Values match when they are equal, differ only in case or
spacing, are the same value in another type, or fill a {string}, {number}
or {boolean} placeholder. When nothing matches, the closest candidates are
ranked and explained.`,
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&app.flags.ConfigDir, "config", "",
		"config directory (default "+helpers.ConfigDir()+")")
	root.PersistentFlags().BoolVar(&app.flags.Debug, "debug", false,
		"enable debug logging")

	root.AddCommand(
		newCheckCommand(app),
		newRankCommand(app),
		newScoreCommand(app),
		newSuiteCommand(app),
	)
	return root
}

// setup loads the config and initializes logging. The --debug flag
// overrides the configured log level without being saved.
func (a *App) setup() error {
	dir := a.flags.ConfigDir
	if dir == "" {
		dir = helpers.ConfigDir()
	}

	cfg, err := config.NewConfig(a.fs, dir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if a.flags.Debug {
		cfg.SetDebugLogging(true)
	}

	console := zerolog.ConsoleWriter{Out: a.stderr, NoColor: true}
	if err := helpers.InitLogging(cfg, []io.Writer{console}); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	log.Debug().Str("config", cfg.Path()).Msg("config loaded")
	a.cfg = cfg
	return nil
}

// reportOptions builds the failure report options from the config.
func (a *App) reportOptions() matcher.ReportOptions {
	opts := matcher.DefaultReportOptions()
	opts.MaxCandidates = a.cfg.ReportMaxCandidates()
	opts.KeyHints = a.cfg.ReportKeyHints()
	opts.KeyHintSimilarity = a.cfg.ReportKeyHintSimilarity()
	return opts
}
