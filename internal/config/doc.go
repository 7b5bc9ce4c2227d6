// SPDX-License-Identifier: MPL-2.0

// Package config resolves the formatter configuration for one call.
//
// Configuration lives in fmtbridge.toml, found by walking up from a search
// root (see package discovery). Content is decoded with go-toml, validated
// against the embedded CUE schema (config_schema.cue), and layered over the
// defaults with Viper. A missing file is not an error: DefaultConfig() is
// used. Unreadable files and malformed content are reported as ReadError and
// ParseError respectively.
//
// Config is a plain value. Finalize derives the settings actually handed to
// the formatter without touching the resolved value.
package config
