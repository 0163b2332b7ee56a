// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package postgres provides a Postgres-backed record store with the same
// method set as the SQLite store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olegiv/signupform/internal/store"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const recordColumns = `id, full_name, phone_number, email, sex, birthday, created_at`

// Repository provides Postgres-backed persistence for signup records and events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertRecord persists a record. A duplicate email yields store.ErrConflict.
func (r *Repository) InsertRecord(ctx context.Context, arg store.CreateRecordParams) (store.Record, error) {
	const query = `INSERT INTO records (full_name, phone_number, email, sex, birthday, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING ` + recordColumns

	row := r.pool.QueryRow(ctx, query,
		arg.FullName,
		arg.PhoneNumber,
		arg.Email,
		arg.Sex,
		arg.Birthday,
		arg.CreatedAt,
	)
	rec, err := scanRecord(row)
	if err != nil {
		if isUniqueViolation(err) {
			return store.Record{}, fmt.Errorf("inserting record %q: %w", arg.Email, store.ErrConflict)
		}
		return store.Record{}, err
	}
	return rec, nil
}

// ListRecords returns all records in insertion order.
func (r *Repository) ListRecords(ctx context.Context) ([]store.Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM records ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []store.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetRecordByID returns sql.ErrNoRows when no record has the given id.
func (r *Repository) GetRecordByID(ctx context.Context, id int64) (store.Record, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM records WHERE id=$1`, id)
	return noRows(scanRecord(row))
}

// GetRecordByEmail returns sql.ErrNoRows when no record has the given email.
func (r *Repository) GetRecordByEmail(ctx context.Context, email string) (store.Record, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM records WHERE email=$1`, email)
	return noRows(scanRecord(row))
}

// DeleteRecord removes a record and returns the number of rows affected.
func (r *Repository) DeleteRecord(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM records WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountRecords returns the number of stored records.
func (r *Repository) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	return count, err
}

// CreateEvent stores an event log entry.
func (r *Repository) CreateEvent(ctx context.Context, arg store.CreateEventParams) (store.Event, error) {
	const query = `INSERT INTO events (level, category, message, metadata, created_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, level, category, message, metadata, created_at`

	var ev store.Event
	err := r.pool.QueryRow(ctx, query,
		arg.Level,
		arg.Category,
		arg.Message,
		arg.Metadata,
		arg.CreatedAt,
	).Scan(&ev.ID, &ev.Level, &ev.Category, &ev.Message, &ev.Metadata, &ev.CreatedAt)
	return ev, err
}

// Ping verifies the pool can reach the database.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanRecord(row pgx.Row) (store.Record, error) {
	var rec store.Record
	err := row.Scan(
		&rec.ID,
		&rec.FullName,
		&rec.PhoneNumber,
		&rec.Email,
		&rec.Sex,
		&rec.Birthday,
		&rec.CreatedAt,
	)
	return rec, err
}

// noRows maps pgx.ErrNoRows to sql.ErrNoRows so callers handle both engines alike.
func noRows(rec store.Record, err error) (store.Record, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Record{}, sql.ErrNoRows
	}
	return rec, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
