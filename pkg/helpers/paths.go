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
	"os"
	"path/filepath"
	"sync"

	"github.com/willi84/poland-schedule/pkg/config"
)

// UserDir is the portable config directory looked up next to the binary.
const UserDir = "user"

var (
	userDirOnce  sync.Once
	userDirCache string
	userDirFound bool
)

// HasUserDir checks if a "user" directory exists next to the itemmatch
// binary. The result is cached for the life of the process.
func HasUserDir() (string, bool) {
	userDirOnce.Do(func() {
		exe, err := os.Executable()
		if err != nil {
			return
		}
		userDir := filepath.Join(filepath.Dir(exe), UserDir)
		info, err := os.Stat(userDir)
		if err != nil || !info.IsDir() {
			return
		}
		userDirCache = userDir
		userDirFound = true
	})
	return userDirCache, userDirFound
}

// ConfigDir returns the directory holding the config file: the portable
// user directory when present, otherwise the platform config directory.
func ConfigDir() string {
	if v, ok := HasUserDir(); ok {
		return v
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", config.AppName)
	}
	return filepath.Join(base, config.AppName)
}
