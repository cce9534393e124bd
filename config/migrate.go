// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Migration from the flat legacy config.json.

package config

// legacyKeys maps flat keys of the old config.json to their section/key.
var legacyKeys = map[string][2]string{
	"snippets_file":  {"storage", "file"},
	"style":          {"highlight", "style"},
	"scroll_padding": {"list", "scroll_padding"},
	"frame_ms":       {"list", "frame_ms"},
}

func migrateSystemFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	legacyPath, err := legacyConfigPath()
	if err != nil {
		return false, err
	}
	legacy, exists, err := readConfig(legacyPath)
	if err != nil || !exists {
		return false, err
	}

	migrated := false
	for oldKey, dest := range legacyKeys {
		val, ok := legacy[oldKey]
		if !ok {
			continue
		}
		if _, taken := cfg.lookup(dest[0], dest[1]); taken {
			continue
		}
		cfg.Set(dest[0], dest[1], val)
		migrated = true
	}
	if theme, ok := legacy["theme"].(map[string]interface{}); ok && cfg.Section("theme") == nil {
		cfg["theme"] = Section(theme)
		migrated = true
	}
	return migrated, nil
}
