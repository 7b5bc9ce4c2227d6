// SPDX-License-Identifier: MPL-2.0

package ffi

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/fmtbridge/fmtbridge/internal/discovery"
	"github.com/fmtbridge/fmtbridge/internal/testutil"
	"github.com/fmtbridge/fmtbridge/internal/version"
	"github.com/fmtbridge/fmtbridge/pkg/types"
)

func borrowed(t *testing.T, s string) unsafe.Pointer {
	t.Helper()
	p, err := NewOwnedString(s)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = Release(p) })
	return p
}

func newTestBridge(out *bytes.Buffer, wd string) *Bridge {
	b := NewBridge(nil, out)
	b.getwd = func() (string, error) { return wd, nil }
	return b
}

func TestBridgeVersion(t *testing.T) {
	t.Parallel()

	b := NewBridge(nil, &bytes.Buffer{})
	p := b.Version()
	if p == nil {
		t.Fatal("Version() returned nil")
	}
	if got := DecodeString(p); got != version.Get() {
		t.Errorf("Version() = %q, want %q", got, version.Get())
	}
	if err := Release(p); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}

func TestBridgeFormatUsesExplicitPath(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(project, discovery.ProjectFileName), "indent = 2\n")
	script := filepath.Join(project, "run.sh")
	testutil.MustWriteFile(t, script, "echo\n")

	var out bytes.Buffer
	b := newTestBridge(&out, t.TempDir())
	status := b.Format(borrowed(t, "if true; then\necho hi\nfi\n"), borrowed(t, script))

	if status != int(types.StatusSuccess) {
		t.Fatalf("Format() = %d, want 0", status)
	}
	if want := "if true; then\n  echo hi\nfi\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestBridgeFormatFallsBackToWorkDir(t *testing.T) {
	t.Parallel()

	wd := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(wd, discovery.ProjectFileName), "indent = 4\n")

	var out bytes.Buffer
	b := newTestBridge(&out, wd)
	status := b.Format(borrowed(t, "if true; then\necho hi\nfi\n"), borrowed(t, ""))

	if status != int(types.StatusSuccess) {
		t.Fatalf("Format() = %d, want 0", status)
	}
	if want := "if true; then\n    echo hi\nfi\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestBridgeFormatConfigErrorUsesDefaults(t *testing.T) {
	t.Parallel()

	wd := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(wd, discovery.ProjectFileName), "indent = \"wide\"\n")

	var out bytes.Buffer
	b := newTestBridge(&out, wd)
	status := b.Format(borrowed(t, "if true; then\necho hi\nfi\n"), borrowed(t, ""))

	if status != int(types.StatusSuccess) {
		t.Fatalf("Format() = %d, want 0", status)
	}
	if want := "if true; then\n\techo hi\nfi\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestBridgeFormatStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want types.ExitCode
	}{
		{"clean", "echo hi\n", types.StatusSuccess},
		{"parse error", "if true; then\n", types.StatusParsingError},
		{"lossy input still formats", "echo \xff\n", types.StatusSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newTestBridge(&bytes.Buffer{}, t.TempDir())
			if got := b.Format(borrowed(t, tt.code), borrowed(t, "")); got != int(tt.want) {
				t.Errorf("Format() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBridgeFormatWorkDirFailure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	b := NewBridge(nil, &out)
	b.getwd = func() (string, error) { return "", errors.New("cwd removed") }

	if got := b.Format(borrowed(t, "echo hi\n"), borrowed(t, "")); got != int(types.StatusSuccess) {
		t.Errorf("Format() = %d, want 0 with defaults", got)
	}
	if out.String() != "echo hi\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestBridgeFormatNilPanics(t *testing.T) {
	t.Parallel()

	b := newTestBridge(&bytes.Buffer{}, t.TempDir())
	defer func() {
		if recover() == nil {
			t.Error("Format(nil, ...) should panic")
		}
	}()
	b.Format(nil, borrowed(t, ""))
}

func TestBridgeFree(t *testing.T) {
	t.Parallel()

	b := NewBridge(nil, &bytes.Buffer{})
	p, err := NewOwnedString("x")
	if err != nil {
		t.Fatal(err)
	}
	b.Free(p)
	b.Free(p)
	b.Free(nil)
}
