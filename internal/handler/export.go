// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/signupform/internal/service"
)

// ExportHandler serves the CSV download.
type ExportHandler struct {
	export *service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// Export handles GET /export.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.export.ExportCSV(r.Context())
	if errors.Is(err, service.ErrUnauthorized) {
		http.Redirect(w, r, RouteAdminLogin, http.StatusSeeOther)
		return
	}
	if err != nil {
		logAndInternalError(w, "failed to export records", "error", err)
		return
	}

	w.Header().Set("Content-Type", exportContentType)
	w.Header().Set("Content-Disposition", exportDisposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write export response", "error", err)
	}
}
