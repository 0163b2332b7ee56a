// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides text normalization for submitted form values.
package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeField trims surrounding whitespace and converts s to Unicode NFC,
// so visually identical values are stored and compared with the same bytes.
func NormalizeField(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
