// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package run

import (
	"context"
	"log/slog"
	"sync"

	"fillmore-labs.com/minver/internal/stdlib"
)

var (
	// histories caches the API history per directory, packages are analyzed concurrently.
	histories sync.Map // map[string]func() (*stdlib.History, error)

	// missing holds the directories without history a warning has been logged for.
	missing sync.Map // map[string]struct{}
)

// history returns the API history of the configured directory. When it can't
// be loaded, an empty history is returned together with false, so library
// usages go undetected.
func (r *Options) history() (*stdlib.History, bool) {
	h, err := loadHistory(r.APIDir)
	if err == nil {
		return h, true
	}

	if _, warned := missing.LoadOrStore(r.APIDir, struct{}{}); !warned {
		level := slog.LevelWarn
		if r.Server != "" {
			level = slog.LevelDebug // the collecting process warns for the whole run
		}

		r.logger().Log(context.Background(), level, "Standard library usages not checked",
			slog.String("api_dir", r.APIDir),
			slog.Any("error", err))
	}

	return stdlib.NewHistory(), false
}

func loadHistory(dir string) (*stdlib.History, error) {
	if dir == "" {
		return stdlib.LoadDefault()
	}

	load, ok := histories.Load(dir)
	if !ok {
		load, _ = histories.LoadOrStore(dir, sync.OnceValues(func() (*stdlib.History, error) {
			return stdlib.Load(dir)
		}))
	}

	return load.(func() (*stdlib.History, error))()
}
