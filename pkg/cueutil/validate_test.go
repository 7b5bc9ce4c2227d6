// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Options: {
	width?: int & >0
	mode?:  "a" | "b"
	flag?:  bool
}
`

func TestValidateMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     map[string]any
		wantErr  bool
		contains string
	}{
		{name: "empty map", data: map[string]any{}},
		{name: "all fields", data: map[string]any{"width": int64(80), "mode": "a", "flag": true}},
		{name: "bound violated", data: map[string]any{"width": int64(0)}, wantErr: true, contains: "width"},
		{name: "wrong type", data: map[string]any{"flag": "yes"}, wantErr: true, contains: "flag"},
		{name: "enum violated", data: map[string]any{"mode": "c"}, wantErr: true, contains: "mode"},
		{name: "unknown field", data: map[string]any{"colour": "red"}, wantErr: true, contains: "colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateMap(testSchema, "#Options", tt.data, "opts.toml")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateMap() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !strings.HasPrefix(err.Error(), "opts.toml: ") {
				t.Errorf("error should be prefixed with the file name, got %q", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error should mention %q, got %q", tt.contains, err)
			}
		})
	}
}

func TestValidateMap_MissingDefinition(t *testing.T) {
	t.Parallel()

	err := ValidateMap(testSchema, "#Nope", map[string]any{}, "opts.toml")
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("ValidateMap() error = %v, want internal error", err)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x.toml") != nil {
		t.Error("FormatError(nil) should return nil")
	}

	original := errors.New("some error")
	err := FormatError(original, "x.toml")
	if err.Error() != "x.toml: some error" {
		t.Errorf("FormatError() = %q", err)
	}
	if !errors.Is(err, original) {
		t.Error("non-CUE errors should stay wrapped")
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"indent"}, "indent"},
		{[]string{"a", "0", "b"}, "a[0].b"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("CheckFileSize at limit: %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("CheckFileSize over limit should fail")
	}
}
