// SPDX-License-Identifier: MPL-2.0

// Command libfmtbridge builds the C shared library:
//
//	go build -buildmode=c-shared -o libfmtbridge.so ./cmd/libfmtbridge
//
// Every string returned by get_version must be passed to free_string once.
package main

import "C"

import (
	"os"
	"unsafe"

	"github.com/fmtbridge/fmtbridge/internal/ffi"

	"github.com/charmbracelet/log"
)

var bridge = ffi.NewBridge(log.NewWithOptions(os.Stderr, log.Options{Prefix: "fmtbridge"}), os.Stdout)

//export get_version
func get_version() *C.char {
	return (*C.char)(bridge.Version())
}

//export format
func format(code, path *C.char) C.int {
	return C.int(bridge.Format(unsafe.Pointer(code), unsafe.Pointer(path)))
}

//export free_string
func free_string(p *C.char) {
	bridge.Free(unsafe.Pointer(p))
}

func main() {}
