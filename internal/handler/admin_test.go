// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestAdminRequiresLogin(t *testing.T) {
	app := newTestApp(t, appOptions{})
	app.post(t, RouteSubmit, janeForm())

	resp, body := app.get(t, RouteAdmin)
	if path, _ := redirectQuery(t, resp, QueryMessage); path != RouteAdminLogin {
		t.Errorf("redirected to %q, want %q", path, RouteAdminLogin)
	}
	if strings.Contains(body, "jane@example.com") {
		t.Error("record data leaked to anonymous request")
	}

	resp, _ = app.post(t, "/delete/1", url.Values{})
	if path, _ := redirectQuery(t, resp, QueryMessage); path != RouteAdminLogin {
		t.Errorf("delete redirected to %q, want %q", path, RouteAdminLogin)
	}
	if n := app.count(t); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestAdminListsRecords(t *testing.T) {
	app := newTestApp(t, appOptions{})

	for _, email := range []string{"a@example.com", "b@example.com"} {
		form := janeForm()
		form.Set("email", email)
		app.post(t, RouteSubmit, form)
	}
	app.login(t)

	resp, body := app.get(t, RouteAdmin+"?"+url.Values{"message": {"hello admin"}}.Encode())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	if !strings.Contains(body, "hello admin") {
		t.Error("message not rendered")
	}
	first := strings.Index(body, "a@example.com")
	second := strings.Index(body, "b@example.com")
	if first < 0 || second < 0 || first > second {
		t.Errorf("records missing or out of order (a at %d, b at %d)", first, second)
	}
	if !strings.Contains(body, `action="/delete/1"`) {
		t.Error("delete form missing")
	}
}

func TestAdminDelete(t *testing.T) {
	app := newTestApp(t, appOptions{})
	app.post(t, RouteSubmit, janeForm())
	app.login(t)

	resp, _ := app.post(t, "/delete/1", url.Values{})
	path, msg := redirectQuery(t, resp, QueryMessage)
	if path != RouteAdmin || msg != MsgUserDeleted {
		t.Fatalf("redirect = %q message %q", path, msg)
	}
	if n := app.count(t); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}

	resp, _ = app.post(t, "/delete/1", url.Values{})
	path, errMsg := redirectQuery(t, resp, QueryError)
	if path != RouteAdmin || errMsg != MsgUserNotFound {
		t.Errorf("second delete: redirect = %q error %q", path, errMsg)
	}
}

func TestAdminDeleteUnknownID(t *testing.T) {
	app := newTestApp(t, appOptions{})
	app.post(t, RouteSubmit, janeForm())
	app.login(t)

	tests := []string{"/delete/999", "/delete/99999999999999999999999"}
	for _, path := range tests {
		resp, _ := app.post(t, path, url.Values{})
		if _, errMsg := redirectQuery(t, resp, QueryError); errMsg != MsgUserNotFound {
			t.Errorf("POST %s: error %q, want %q", path, errMsg, MsgUserNotFound)
		}
	}
	if n := app.count(t); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	resp, _ := app.post(t, "/delete/abc", url.Values{})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("non-numeric id: status %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
