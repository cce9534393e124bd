// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and first-run logic for the config store.

package config

import "log"

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve config path: %v", err)
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read config %s: %v", path, readErr)
		cfg = make(Config)
	}

	switch {
	case exists && len(cfg) == 0 && readErr == nil:
		// An empty file is treated as a request to restore defaults.
		cfg = defaultSystemConfig()
		applySystemDefaults(cfg)
		readErr = persist(path, cfg, "default")
	case exists:
		applySystemDefaults(cfg)
	default:
		cfg = make(Config)
		migrated, migrateErr := migrateSystemFromLegacy(cfg)
		if migrateErr != nil {
			log.Printf("Config: Legacy migration error: %v", migrateErr)
			readErr = migrateErr
		}
		if !migrated {
			cfg = mergeConfig(defaultSystemConfig(), cfg)
		}
		applySystemDefaults(cfg)
		if err := persist(path, cfg, "initial"); err != nil && readErr == nil {
			readErr = err
		}
	}

	system = cfg
	if readErr == nil && exists {
		log.Printf("Config: Loaded config from %s", path)
	}
	return readErr
}

func persist(path string, cfg Config, what string) error {
	if err := writeConfig(path, cfg); err != nil {
		log.Printf("Config: Failed to write %s config: %v", what, err)
		return err
	}
	return nil
}

// mergeConfig fills sections missing from dst with sections from src.
func mergeConfig(src, dst Config) Config {
	if src == nil {
		return dst
	}
	for name, section := range dst {
		src[name] = section
	}
	return src
}
