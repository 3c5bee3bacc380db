// Package config loads the abbreviation engine's settings.
//
// Settings come from three layers, lowest priority first:
//
//  1. Built-in defaults (see Default)
//  2. A config file, TOML or YAML by extension
//  3. Environment variables (ABBREV_*)
//
// A missing config file is not an error; the defaults apply.
//
//	# ~/.config/abbrev/config.toml
//	[abbrev]
//	file = "~/.config/abbrev/abbreviations"
//	enabled = true
//	watch = true
//	script = "~/.config/abbrev/init.lua"
//
//	[logging]
//	level = "info"
//	file = ""
package config
