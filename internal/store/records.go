// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrConflict is returned when a write would violate a uniqueness constraint.
var ErrConflict = errors.New("store: unique constraint violation")

// InsertRecord creates a record and reports ErrConflict when the email is
// already taken. The unique index on records.email is the source of truth,
// so two concurrent inserts for the same email can never both succeed.
func (q *Queries) InsertRecord(ctx context.Context, arg CreateRecordParams) (Record, error) {
	rec, err := q.CreateRecord(ctx, arg)
	if err != nil {
		if IsUniqueViolation(err) {
			return Record{}, fmt.Errorf("inserting record %q: %w", arg.Email, ErrConflict)
		}
		return Record{}, err
	}
	return rec, nil
}

// IsUniqueViolation reports whether err came from a SQLite UNIQUE constraint.
// Both modernc.org/sqlite and mattn/go-sqlite3 use the same message text.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
