// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager, its backing stores
// and the admin session gate.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// DefaultLifetime is used when no lifetime is configured.
const DefaultLifetime = 24 * time.Hour

// New creates a session manager backed by store.
func New(store scs.Store, lifetime time.Duration, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = store

	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	sm.Lifetime = lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// NewSQLiteStore persists sessions in the sessions table of db.
func NewSQLiteStore(db *sql.DB) scs.Store {
	return sqlite3store.New(db)
}

// NewMemoryStore keeps sessions in process memory; sessions are lost on restart.
func NewMemoryStore() scs.Store {
	return memstore.New()
}
