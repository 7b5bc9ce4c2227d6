// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds configuration files read from disk (1MB).
const DefaultMaxFileSize int64 = 1024 * 1024

// ValidateMap unifies data with the named definition of schema and reports
// any violation, including fields the (closed) definition does not declare.
// Schema compilation failures are reported as internal errors.
func ValidateMap(schema, definition string, data map[string]any, filename string) error {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	def := schemaValue.LookupPath(cue.ParsePath(definition))
	if !def.Exists() {
		return fmt.Errorf("internal error: schema has no definition %s", definition)
	}

	userValue := ctx.Encode(data)
	if userValue.Err() != nil {
		return FormatError(userValue.Err(), filename)
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return FormatError(err, filename)
	}

	return nil
}
