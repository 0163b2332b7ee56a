// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/olegiv/signupform/internal/store"
)

// RecordStore is the persistence contract shared by the SQLite and Postgres stores.
// Lookups report a missing row with sql.ErrNoRows; InsertRecord reports a
// duplicate email with store.ErrConflict.
type RecordStore interface {
	InsertRecord(ctx context.Context, arg store.CreateRecordParams) (store.Record, error)
	ListRecords(ctx context.Context) ([]store.Record, error)
	GetRecordByID(ctx context.Context, id int64) (store.Record, error)
	GetRecordByEmail(ctx context.Context, email string) (store.Record, error)
	DeleteRecord(ctx context.Context, id int64) (int64, error)
	CountRecords(ctx context.Context) (int64, error)
}

// Authenticator reports whether the request context carries an admin session.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Recorder receives outcome counts. metrics.Collector implements it.
type Recorder interface {
	RecordSubmission(outcome string)
	RecordDeletion(outcome string)
	RecordExport(rows int)
}

type nopRecorder struct{}

func (nopRecorder) RecordSubmission(string) {}
func (nopRecorder) RecordDeletion(string)   {}
func (nopRecorder) RecordExport(int)        {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
