// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from the embedded JSON file.

package config

import (
	"encoding/json"
	"sync"

	"github.com/simon0302010/codecache/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
	embeddedErr  error
)

// embeddedSystemDefaults returns the parsed defaults from codecache.json.
func embeddedSystemDefaults() (Config, error) {
	embeddedOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedErr = err
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			embeddedErr = err
			return
		}
		embedded = cfg
	})
	return embedded, embeddedErr
}

// defaultSystemConfig returns a copy of the embedded defaults, or an empty
// config if they cannot be parsed.
func defaultSystemConfig() Config {
	cfg, err := embeddedSystemDefaults()
	if err != nil || cfg == nil {
		return make(Config)
	}
	return Clone(cfg)
}
