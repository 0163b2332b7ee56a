// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/olegiv/signupform/internal/metrics"
	"github.com/olegiv/signupform/internal/middleware"
	"github.com/olegiv/signupform/internal/render"
	"github.com/olegiv/signupform/internal/service"
	"github.com/olegiv/signupform/internal/session"
	"github.com/olegiv/signupform/internal/store"
	"github.com/olegiv/signupform/internal/testutil"
	"github.com/olegiv/signupform/web"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "correct-horse-battery"
)

type appOptions struct {
	exportRequiresAuth bool
	loginProtection    *middleware.LoginProtection
}

type testApp struct {
	server  *httptest.Server
	client  *http.Client
	queries *store.Queries
}

func newTestApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()

	db := testutil.MemoryDB(t)
	q := store.New(db)
	events := service.NewEventService(q)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	sm := session.New(session.NewSQLiteStore(db), time.Hour, true)
	gate := session.NewGate(sm, session.Credentials{
		Username: testAdminUser,
		Password: testAdminPassword,
	}, events, collector)

	renderer, err := render.New(web.TemplatesFS())
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	security := middleware.DefaultSecurityHeadersConfig(true)
	router := NewRouter(Deps{
		Logger:          testutil.TestLogger(),
		Renderer:        renderer,
		Sessions:        sm,
		Gate:            gate,
		Forms:           service.NewFormService(q, events, collector),
		Admin:           service.NewAdminService(q, gate, events, collector),
		Export:          service.NewExportService(q, gate, opts.exportRequiresAuth, events, collector),
		Ready:           db.PingContext,
		CSRF:            middleware.CSRF(middleware.DefaultCSRFConfig(false, "")),
		LoginProtection: opts.loginProtection,
		FormLimiter:     middleware.NewGlobalRateLimiter(1000, 1000),
		Security:        &security,
		HTTPMetrics:     collector,
		MetricsHandler:  metrics.Handler(reg),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}

	return &testApp{
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		queries: q,
	}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	resp, _ := a.post(t, RouteAdminLogin, url.Values{
		"username": {testAdminUser},
		"password": {testAdminPassword},
	})
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != RouteAdmin {
		t.Fatalf("login: status %d location %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func (a *testApp) count(t *testing.T) int64 {
	t.Helper()
	n, err := a.queries.CountRecords(t.Context())
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	return n
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(b)
}

// redirectQuery returns the redirect path and the value of param in its query.
func redirectQuery(t *testing.T, resp *http.Response, param string) (string, string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("parsing Location: %v", err)
	}
	return loc.Path, loc.Query().Get(param)
}

func janeForm() url.Values {
	return url.Values{
		"full_name":    {"Jane Doe"},
		"phone_number": {"555-1234"},
		"email":        {"jane@example.com"},
		"sex":          {"F"},
		"birthday":     {"1990-01-01"},
	}
}
