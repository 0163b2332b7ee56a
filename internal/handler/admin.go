// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/signupform/internal/render"
	"github.com/olegiv/signupform/internal/service"
	"github.com/olegiv/signupform/internal/store"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	renderer *render.Renderer
	admin    *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(renderer *render.Renderer, admin *service.AdminService) *AdminHandler {
	return &AdminHandler{
		renderer: renderer,
		admin:    admin,
	}
}

// AdminPageData is the view model for the dashboard.
type AdminPageData struct {
	Records []store.Record
}

// List handles GET /admin.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.admin.ListAll(r.Context())
	if errors.Is(err, service.ErrUnauthorized) {
		http.Redirect(w, r, RouteAdminLogin, http.StatusSeeOther)
		return
	}
	if err != nil {
		logAndInternalError(w, "failed to list records", "error", err)
		return
	}

	data := render.TemplateData{
		Title: "Admin Dashboard",
		Data:  AdminPageData{Records: records},
	}
	flashFromQuery(r, &data)
	renderPage(w, r, h.renderer, http.StatusOK, pageAdmin, data)
}

// Delete handles POST /delete/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		redirectError(w, r, RouteAdmin, MsgUserNotFound)
		return
	}

	outcome, err := h.admin.Delete(r.Context(), id)
	if errors.Is(err, service.ErrUnauthorized) {
		http.Redirect(w, r, RouteAdminLogin, http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to delete record", "id", id, "error", err)
		redirectError(w, r, RouteAdmin, MsgGeneric)
		return
	}

	if outcome == service.DeleteOutcomeDeleted {
		redirectMessage(w, r, RouteAdmin, MsgUserDeleted)
		return
	}
	redirectError(w, r, RouteAdmin, MsgUserNotFound)
}
