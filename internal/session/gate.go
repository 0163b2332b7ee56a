// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/olegiv/signupform/internal/metrics"
	"github.com/olegiv/signupform/internal/model"
	"github.com/olegiv/signupform/internal/service"
)

// AdminKey is the session key holding the admin flag.
const AdminKey = "admin_logged_in"

// Sessions is the subset of *scs.SessionManager the gate needs.
type Sessions interface {
	GetBool(ctx context.Context, key string) bool
	Put(ctx context.Context, key string, val any)
	Remove(ctx context.Context, key string)
	RenewToken(ctx context.Context) error
}

// Credentials is the single administrator identity.
type Credentials struct {
	Username string
	Password string
}

// LoginRecorder counts login attempts. metrics.Collector implements it.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

// Gate issues and checks the admin flag on the request's session.
type Gate struct {
	sessions Sessions
	creds    Credentials
	events   *service.EventService
	metrics  LoginRecorder
}

// NewGate creates a Gate. events and rec may be nil.
func NewGate(sessions Sessions, creds Credentials, events *service.EventService, rec LoginRecorder) *Gate {
	return &Gate{
		sessions: sessions,
		creds:    creds,
		events:   events,
		metrics:  rec,
	}
}

// Login marks the session as admin when the credentials match. On failure it
// returns service.ErrInvalidCredentials and leaves the session untouched.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	if !g.matches(username, password) {
		g.record(metrics.OutcomeFailure)
		slog.WarnContext(ctx, "admin login failed", "username", username, "category", model.EventCategoryAuth)
		return service.ErrInvalidCredentials
	}

	// New token on privilege change prevents session fixation.
	if err := g.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	g.sessions.Put(ctx, AdminKey, true)

	g.record(metrics.OutcomeSuccess)
	slog.InfoContext(ctx, "admin logged in", "username", username)
	_ = g.events.LogAuthEvent(ctx, model.EventLevelInfo, "admin logged in", map[string]any{"username": username})

	return nil
}

// RejectLocked records a login attempt refused because the account is locked out.
func (g *Gate) RejectLocked(ctx context.Context, username string) {
	g.record(metrics.OutcomeLocked)
	slog.WarnContext(ctx, "admin login rejected: account locked", "username", username, "category", model.EventCategoryAuth)
}

// IsAuthenticated reads the admin flag from the current session.
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	return g.sessions.GetBool(ctx, AdminKey)
}

// Logout clears the admin flag. Calling it on an anonymous session is a no-op.
func (g *Gate) Logout(ctx context.Context) error {
	wasAdmin := g.IsAuthenticated(ctx)
	g.sessions.Remove(ctx, AdminKey)
	if !wasAdmin {
		return nil
	}

	if err := g.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	slog.InfoContext(ctx, "admin logged out")
	return nil
}

// matches compares both fields in constant time. Hashing first keeps the
// comparison independent of the input lengths.
func (g *Gate) matches(username, password string) bool {
	if g.creds.Username == "" || g.creds.Password == "" {
		return false
	}
	wantUser := sha256.Sum256([]byte(g.creds.Username))
	gotUser := sha256.Sum256([]byte(username))
	wantPass := sha256.Sum256([]byte(g.creds.Password))
	gotPass := sha256.Sum256([]byte(password))

	userOK := subtle.ConstantTimeCompare(wantUser[:], gotUser[:])
	passOK := subtle.ConstantTimeCompare(wantPass[:], gotPass[:])
	return userOK&passOK == 1
}

func (g *Gate) record(outcome string) {
	if g.metrics != nil {
		g.metrics.RecordLogin(outcome)
	}
}
