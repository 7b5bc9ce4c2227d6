// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that build directory trees,
// failing the test immediately when the filesystem refuses.
package testutil
