// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the HTML templates.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var Templates embed.FS

// TemplatesFS returns the templates directory as the filesystem root.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(Templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
