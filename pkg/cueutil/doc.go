// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates already-decoded configuration data against an
// embedded CUE schema and turns CUE errors into path-prefixed messages.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	if err := cueutil.ValidateMap(schema, "#Config", decoded, "fmtbridge.toml"); err != nil {
//	    return err // "fmtbridge.toml: indent: invalid value 99 (out of bound <=16)"
//	}
package cueutil
