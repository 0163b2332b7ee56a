// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"ascii trimmed", "  Jane Doe  ", "Jane Doe"},
		{"inner whitespace kept", "Doe,\nJane", "Doe,\nJane"},
		{"decomposed accent composed", "Rene\u0301e", "Ren\u00e9e"},
		{"already composed", "Ren\u00e9e", "Ren\u00e9e"},
		{"case preserved", "Jane@Example.com", "Jane@Example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeField(tt.input); got != tt.expected {
				t.Errorf("NormalizeField(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
