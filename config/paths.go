// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for codecache configuration and data files.

package config

import (
	"os"
	"path/filepath"
)

// Root returns the codecache directory under the user config dir.
func Root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "codecache"), nil
}

// Path joins name onto Root.
func Path(name string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

func systemConfigPath() (string, error) {
	return Path(systemConfigName)
}

func legacyConfigPath() (string, error) {
	return Path(legacyConfigName)
}
