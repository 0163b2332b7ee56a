// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthLive(t *testing.T) {
	h := NewHealthHandler(nil)

	w := httptest.NewRecorder()
	h.Live(w, httptest.NewRequest(http.MethodGet, RouteHealthLive, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Status != "alive" {
		t.Errorf("status = %q, want alive", body.Status)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		ping       func(context.Context) error
		wantCode   int
		wantStatus string
	}{
		{"healthy", func(context.Context) error { return nil }, http.StatusOK, "ready"},
		{"store down", func(context.Context) error { return errors.New("connection refused") }, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.ping)

			w := httptest.NewRecorder()
			h.Ready(w, httptest.NewRequest(http.MethodGet, RouteHealthReady, nil))

			if w.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.wantCode)
			}
			var body HealthStatus
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", body.Status, tt.wantStatus)
			}
			if strings.Contains(body.Error, "connection refused") {
				t.Error("internal error text exposed")
			}
		})
	}
}

func TestRouterHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, appOptions{})

	resp, _ := app.get(t, RouteHealthReady)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("ready status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	app.post(t, RouteSubmit, janeForm())

	resp, body := app.get(t, RouteMetrics)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	for _, name := range []string{"signup_submissions_total", "signup_http_requests_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
