// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers and router for the signup form
// and its admin pages.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/olegiv/signupform/internal/render"
)

// redirectWith redirects to path carrying msg in the given query parameter.
func redirectWith(w http.ResponseWriter, r *http.Request, path, param, msg string) {
	target := path
	if msg != "" {
		target += "?" + url.Values{param: {msg}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectMessage redirects with an informational message.
func redirectMessage(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectWith(w, r, path, QueryMessage, msg)
}

// redirectError redirects with an error message.
func redirectError(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectWith(w, r, path, QueryError, msg)
}

// flashFromQuery copies the message and error query parameters into data.
func flashFromQuery(r *http.Request, data *render.TemplateData) {
	q := r.URL.Query()
	data.Message = q.Get(QueryMessage)
	data.Error = q.Get(QueryError)
}

// renderPage renders a page, falling back to a plain 500 on template failure.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	if err := renderer.Render(w, status, name, data); err != nil {
		logAndInternalError(w, "failed to render page", "template", name, "path", r.URL.Path, "error", err)
	}
}

// logAndInternalError logs an error and returns a 500 Internal Server Error.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
