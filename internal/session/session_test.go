// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/olegiv/signupform/internal/testutil"
)

func TestNew_DevMode(t *testing.T) {
	sm := New(NewSQLiteStore(testutil.MemoryDB(t)), 0, true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(NewSQLiteStore(testutil.MemoryDB(t)), 0, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	tests := []struct {
		name     string
		lifetime time.Duration
		want     time.Duration
	}{
		{"default", 0, DefaultLifetime},
		{"custom", 2 * time.Hour, 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := New(NewMemoryStore(), tt.lifetime, true)

			if sm.Lifetime != tt.want {
				t.Errorf("Lifetime = %v, want %v", sm.Lifetime, tt.want)
			}
			if !sm.Cookie.HttpOnly {
				t.Error("expected Cookie.HttpOnly = true")
			}
			if sm.Cookie.SameSite != http.SameSiteLaxMode {
				t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
			}
			if sm.Store == nil {
				t.Error("expected Store to be initialized")
			}
		})
	}
}

func TestSQLiteStore_CommitFind(t *testing.T) {
	st := NewSQLiteStore(testutil.MemoryDB(t))

	if err := st.Commit("tok", []byte("data"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	b, found, err := st.Find("tok")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !found || string(b) != "data" {
		t.Errorf("Find = %q, %v; want data, true", b, found)
	}
}
