// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/signupform/internal/store"
)

// testQueries returns a migrated SQLite store in a temp directory.
func testQueries(t *testing.T) *store.Queries {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "service-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.Migrate(db))
	return store.New(db)
}

// fakeAuth is an Authenticator whose answer can be flipped between calls.
type fakeAuth struct {
	ok    atomic.Bool
	calls atomic.Int32
}

func newFakeAuth(ok bool) *fakeAuth {
	a := &fakeAuth{}
	a.ok.Store(ok)
	return a
}

func (a *fakeAuth) IsAuthenticated(context.Context) bool {
	a.calls.Add(1)
	return a.ok.Load()
}

// spyStore wraps a RecordStore and counts data access.
type spyStore struct {
	RecordStore
	calls atomic.Int32
}

func (s *spyStore) ListRecords(ctx context.Context) ([]store.Record, error) {
	s.calls.Add(1)
	return s.RecordStore.ListRecords(ctx)
}

func (s *spyStore) DeleteRecord(ctx context.Context, id int64) (int64, error) {
	s.calls.Add(1)
	return s.RecordStore.DeleteRecord(ctx, id)
}

// recorder captures outcomes passed to a Recorder.
type recorder struct {
	submissions []string
	deletions   []string
	exports     []int
}

func (r *recorder) RecordSubmission(outcome string) { r.submissions = append(r.submissions, outcome) }
func (r *recorder) RecordDeletion(outcome string)   { r.deletions = append(r.deletions, outcome) }
func (r *recorder) RecordExport(rows int)           { r.exports = append(r.exports, rows) }

func jane() SubmitInput {
	return SubmitInput{
		FullName:    "Jane Doe",
		PhoneNumber: "555-1234",
		Email:       "jane@example.com",
		Sex:         "F",
		Birthday:    "1990-01-01",
	}
}
