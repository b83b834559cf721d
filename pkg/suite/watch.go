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

package suite

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Files returns the suite file dependencies: every distinct candidates
// file, resolved against Dir.
func (s *Suite) Files() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range s.Checks {
		if c.CandidatesFile == "" {
			continue
		}
		path := c.CandidatesFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.Dir, path)
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	return out
}

// Watch calls onChange after any of paths is written, created, renamed or
// removed, until ctx is done. The parent directories are watched so files
// replaced by editors are still seen. Events closer together than debounce
// result in a single call.
func Watch(ctx context.Context, paths []string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Error().Err(err).Msg("error closing file watcher")
		}
	}()

	names := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		names[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		log.Debug().Msgf("adding watcher for directory: %s", dir)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, watched := names[filepath.Clean(event.Name)]; !watched || !event.Op.Has(watchedOps) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("suite file changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			onChange()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Msgf("error in watcher: %s", watchErr)
		}
	}
}
