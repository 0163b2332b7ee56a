// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/signupform/internal/middleware"
	"github.com/olegiv/signupform/internal/render"
	"github.com/olegiv/signupform/internal/service"
	"github.com/olegiv/signupform/internal/session"
)

// Deps holds everything the router wires together. Fields documented as
// optional may be left zero.
type Deps struct {
	Logger   *slog.Logger
	Renderer *render.Renderer
	Sessions *scs.SessionManager
	Gate     *session.Gate

	Forms  *service.FormService
	Admin  *service.AdminService
	Export *service.ExportService

	// Ready pings the record store for the readiness probe.
	Ready func(context.Context) error

	// Optional protections.
	CSRF            func(http.Handler) http.Handler
	LoginProtection *middleware.LoginProtection
	FormLimiter     *middleware.GlobalRateLimiter
	Security        *middleware.SecurityHeadersConfig

	// Optional metrics. MetricsHandler is mounted at /metrics when set.
	HTTPMetrics    middleware.HTTPRecorder
	MetricsHandler http.Handler
}

// NewRouter builds the application's HTTP handler.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	forms := NewFormHandler(d.Renderer, d.Forms)
	auth := NewAuthHandler(d.Renderer, d.Gate, d.LoginProtection)
	admin := NewAdminHandler(d.Renderer, d.Admin)
	export := NewExportHandler(d.Export)
	health := NewHealthHandler(d.Ready)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if d.HTTPMetrics != nil {
		r.Use(middleware.Metrics(d.HTTPMetrics))
	}
	if d.Security != nil {
		r.Use(middleware.SecurityHeaders(*d.Security))
	}

	r.Get(RouteHealthLive, health.Live)
	r.Get(RouteHealthReady, health.Ready)
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, RouteMetrics, d.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(d.Sessions.LoadAndSave)
		if d.CSRF != nil {
			r.Use(d.CSRF)
		}

		r.Get(RouteRoot, forms.Index)
		if d.FormLimiter != nil {
			r.With(d.FormLimiter.HTMLMiddleware()).Post(RouteSubmit, forms.Submit)
		} else {
			r.Post(RouteSubmit, forms.Submit)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			if d.LoginProtection != nil {
				r.Use(d.LoginProtection.Middleware())
			}
			r.Get(RouteAdminLogin, auth.LoginForm)
			r.Post(RouteAdminLogin, auth.Login)
		})
		r.Get(RouteAdminLogout, auth.Logout)
		r.Post(RouteAdminLogout, auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(d.Gate, RouteAdminLogin))
			r.Use(middleware.NoStore)
			r.Get(RouteAdmin, admin.List)
			r.Post(RouteDelete, admin.Delete)
		})

		r.With(middleware.NoStore).Get(RouteExport, export.Export)
	})

	return r
}
