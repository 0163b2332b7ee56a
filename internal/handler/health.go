// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// readyTimeout bounds the store ping in the readiness probe.
const readyTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	ping      func(context.Context) error
	startTime time.Time
}

// NewHealthHandler creates a new health handler. ping checks the record store.
func NewHealthHandler(ping func(context.Context) error) *HealthHandler {
	return &HealthHandler{
		ping:      ping,
		startTime: time.Now(),
	}
}

// HealthStatus is the JSON body of both probes.
type HealthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Live handles GET /health/live. It succeeds while the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, http.StatusOK, HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ready handles GET /health/ready. It returns 503 when the record store is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			writeHealth(w, http.StatusServiceUnavailable, HealthStatus{
				Status: "unavailable",
				Error:  "record store unreachable",
			})
			return
		}
	}

	writeHealth(w, http.StatusOK, HealthStatus{Status: "ready"})
}

func writeHealth(w http.ResponseWriter, status int, body HealthStatus) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
