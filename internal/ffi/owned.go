// SPDX-License-Identifier: MPL-2.0

package ffi

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrInteriorNUL is returned when a string cannot be represented as a C string.
	ErrInteriorNUL = errors.New("string contains an interior NUL byte")
	// ErrUnknownPointer is returned when Release is given a pointer it did
	// not allocate, or one that was already released.
	ErrUnknownPointer = errors.New("pointer was not allocated by this library or was already released")
	// ErrAllocationMismatch is returned when the terminator of an owned
	// buffer no longer sits where it was written.
	ErrAllocationMismatch = errors.New("owned buffer does not match its allocation")
	// ErrNilPointer is the panic value for a nil borrowed string.
	ErrNilPointer = errors.New("nil string pointer passed across the C boundary")

	owned = &registry{sizes: map[unsafe.Pointer]int{}}
)

type (
	// registry records the size of every outstanding owned buffer, including
	// its terminator. It is the only state shared between calls.
	registry struct {
		mu    sync.Mutex
		sizes map[unsafe.Pointer]int
	}

	// MismatchError reports an owned buffer whose length changed after
	// allocation.
	MismatchError struct {
		Recorded int
		Found    int
	}
)

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: allocated %d bytes, found %d", ErrAllocationMismatch, e.Recorded, e.Found)
}

// Unwrap returns ErrAllocationMismatch for errors.Is() compatibility.
func (e *MismatchError) Unwrap() error { return ErrAllocationMismatch }

// NewOwnedString copies s to a NUL-terminated buffer on the C heap. The
// caller of the library must hand it back to Release exactly once.
func NewOwnedString(s string) (unsafe.Pointer, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrInteriorNUL
	}
	p := unsafe.Pointer(C.CString(s))

	owned.mu.Lock()
	owned.sizes[p] = len(s) + 1
	owned.mu.Unlock()
	return p, nil
}

// Release frees a buffer returned by NewOwnedString. A nil pointer is a
// no-op. Unknown pointers and buffers whose length no longer matches the
// allocation are refused and left untouched. Using p after Release is out
// of contract.
func Release(p unsafe.Pointer) error {
	if p == nil {
		return nil
	}

	owned.mu.Lock()
	defer owned.mu.Unlock()

	size, ok := owned.sizes[p]
	if !ok {
		return ErrUnknownPointer
	}
	if found := int(C.strlen((*C.char)(p))) + 1; found != size {
		return &MismatchError{Recorded: size, Found: found}
	}

	delete(owned.sizes, p)
	C.free(p)
	return nil
}

// DecodeString copies a borrowed NUL-terminated string. Invalid UTF-8 is
// replaced with U+FFFD so decoding never fails. A nil pointer is a caller
// bug and panics with ErrNilPointer.
func DecodeString(p unsafe.Pointer) string {
	if p == nil {
		panic(ErrNilPointer)
	}
	raw := C.GoString((*C.char)(p))

	decoded, err := unicode.UTF8.NewDecoder().String(raw)
	if err != nil {
		return strings.ToValidUTF8(raw, "�")
	}
	return decoded
}
