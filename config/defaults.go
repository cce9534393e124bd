// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the codecache configuration file.

package config

// Default values shared with the packages that read them.
const (
	DefaultHighlightStyle = "catppuccin-mocha"
	DefaultCacheSize      = 128
	DefaultScrollPadding  = 4
	DefaultFrameMillis    = 16
	DefaultScrollFocusMS  = 500
)

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("storage", Section{
		"file":         "",
		"search_index": true,
		"index_file":   "",
	})
	cfg.RegisterDefaults("highlight", Section{
		"style": DefaultHighlightStyle,
	})
	cfg.RegisterDefaults("classify", Section{
		"cache_size": DefaultCacheSize,
	})
	cfg.RegisterDefaults("list", Section{
		"scroll_padding":  DefaultScrollPadding,
		"frame_ms":        DefaultFrameMillis,
		"scroll_focus_ms": DefaultScrollFocusMS,
	})
	cfg.RegisterDefaults("theme", Section{})
}
