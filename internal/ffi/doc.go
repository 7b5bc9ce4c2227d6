// SPDX-License-Identifier: MPL-2.0

// Package ffi is the C boundary of the shared library.
//
// Strings returned to the foreign caller are owned buffers: allocated on the
// C heap by NewOwnedString and freed only by Release, exactly once per
// allocation. Strings passed in by the caller are borrowed for the duration
// of the call; DecodeString copies them and nothing here frees or retains
// caller memory.
package ffi
