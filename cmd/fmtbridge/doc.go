// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the fmtbridge command line interface.
package cmd
