// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// demoRecords are inserted by Seed on an empty database.
var demoRecords = []CreateRecordParams{
	{FullName: "Jane Doe", PhoneNumber: "555-1234", Email: "jane@example.com", Sex: "F", Birthday: "1990-01-01"},
	{FullName: "Doe, John", PhoneNumber: "555-9876", Email: "john@example.com", Sex: "M", Birthday: "1988-07-14"},
	{FullName: `Alex "AJ" Jones`, PhoneNumber: "+1 555 0100", Email: "aj@example.com", Sex: "X", Birthday: "2001-12-31"},
}

// RecordInserter is the subset of a record store needed for seeding.
type RecordInserter interface {
	CountRecords(ctx context.Context) (int64, error)
	InsertRecord(ctx context.Context, arg CreateRecordParams) (Record, error)
}

// Seed inserts demo records when enabled and the records table is empty.
func Seed(ctx context.Context, rs RecordInserter, enabled bool) error {
	if !enabled {
		return nil
	}

	count, err := rs.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("counting records: %w", err)
	}
	if count > 0 {
		slog.Info("records already present, skipping seed", "count", count)
		return nil
	}

	now := time.Now().UTC()
	for _, p := range demoRecords {
		p.CreatedAt = now
		if _, err := rs.InsertRecord(ctx, p); err != nil {
			if errors.Is(err, ErrConflict) {
				continue
			}
			return fmt.Errorf("seeding record %q: %w", p.Email, err)
		}
	}

	slog.Info("seeded demo records", "count", len(demoRecords))
	return nil
}
