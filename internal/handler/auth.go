// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/signupform/internal/middleware"
	"github.com/olegiv/signupform/internal/render"
	"github.com/olegiv/signupform/internal/service"
	"github.com/olegiv/signupform/internal/session"
)

// AuthHandler handles the admin login and logout routes.
type AuthHandler struct {
	renderer        *render.Renderer
	gate            *session.Gate
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(renderer *render.Renderer, gate *session.Gate, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		renderer:        renderer,
		gate:            gate,
		loginProtection: lp,
	}
}

// LoginForm handles GET /admin-login. Already-authenticated admins go straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.gate.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, "")
}

// Login handles POST /admin-login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, MsgInvalidCredentials)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsLocked(username); locked {
			h.gate.RejectLocked(r.Context(), username)
			h.renderLogin(w, r, http.StatusTooManyRequests, MsgTooManyAttempts+formatDuration(remaining)+".")
			return
		}
	}

	err := h.gate.Login(r.Context(), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(username); locked {
				h.gate.RejectLocked(r.Context(), username)
				h.renderLogin(w, r, http.StatusTooManyRequests, MsgTooManyAttempts+formatDuration(lockDuration)+".")
				return
			}
			if remaining := h.loginProtection.GetRemainingAttempts(username); remaining > 0 && remaining <= 3 {
				h.renderLogin(w, r, http.StatusOK, fmt.Sprintf("%s %s%d.", MsgInvalidCredentials, MsgAttemptsRemaining, remaining))
				return
			}
		}
		h.renderLogin(w, r, http.StatusOK, MsgInvalidCredentials)
		return
	}
	if err != nil {
		slog.Error("admin login failed", "error", err)
		h.renderLogin(w, r, http.StatusInternalServerError, MsgGeneric)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(username)
	}
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// Logout handles GET and POST /admin-logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Logout(r.Context()); err != nil {
		slog.Error("admin logout failed", "error", err)
	}
	http.Redirect(w, r, RouteAdminLogin, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	renderPage(w, r, h.renderer, status, pageAdminLogin, render.TemplateData{
		Title: "Admin Login",
		Error: errMsg,
	})
}

// formatDuration formats a lockout duration in human-readable form.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
