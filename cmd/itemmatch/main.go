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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/willi84/poland-schedule/pkg/cli"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrCheckFailed) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("itemmatch: %w", err)
	}
	return nil
}
