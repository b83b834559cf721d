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

package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/willi84/poland-schedule/pkg/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogging points the global logger at writers and, when the config names
// a log file, at a rotated file. The debug_logging option enables debug
// output, which includes per candidate scores.
func InitLogging(cfg *config.Instance, writers []io.Writer) error {
	logWriters := make([]io.Writer, 0, len(writers)+1)

	if path := cfg.LogFile(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logWriters = append(logWriters, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    1,
			MaxBackups: 2,
		})
	}

	logWriters = append(logWriters, writers...)
	if len(logWriters) == 0 {
		logWriters = append(logWriters, io.Discard)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = log.Output(io.MultiWriter(logWriters...)).
		With().Timestamp().Caller().Logger()

	return nil
}
