// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "signup-test.db")

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	return db
}

func janeParams() CreateRecordParams {
	return CreateRecordParams{
		FullName:    "Jane Doe",
		PhoneNumber: "555-1234",
		Email:       "jane@example.com",
		Sex:         "F",
		Birthday:    "1990-01-01",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestInsertRecord(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	rec, err := q.InsertRecord(ctx, janeParams())
	if err != nil {
		t.Fatalf("InsertRecord: %v", err)
	}

	if rec.ID != 1 {
		t.Errorf("ID = %d, want 1", rec.ID)
	}
	if rec.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", rec.FullName, "Jane Doe")
	}
	if rec.Email != "jane@example.com" {
		t.Errorf("Email = %q, want %q", rec.Email, "jane@example.com")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestInsertRecord_DuplicateEmail(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if _, err := q.InsertRecord(ctx, janeParams()); err != nil {
		t.Fatalf("first InsertRecord: %v", err)
	}

	dup := janeParams()
	dup.FullName = "Someone Else"
	_, err := q.InsertRecord(ctx, dup)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("second InsertRecord error = %v, want ErrConflict", err)
	}

	count, err := q.CountRecords(ctx)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 1 {
		t.Errorf("CountRecords = %d, want 1", count)
	}
}

func TestInsertRecord_EmailIsCaseSensitive(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if _, err := q.InsertRecord(ctx, janeParams()); err != nil {
		t.Fatalf("InsertRecord: %v", err)
	}

	upper := janeParams()
	upper.Email = "JANE@example.com"
	if _, err := q.InsertRecord(ctx, upper); err != nil {
		t.Errorf("InsertRecord with different case: %v", err)
	}
}

func TestGetRecordByEmail(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	created, err := q.InsertRecord(ctx, janeParams())
	if err != nil {
		t.Fatalf("InsertRecord: %v", err)
	}

	found, err := q.GetRecordByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("GetRecordByEmail: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}

	_, err = q.GetRecordByEmail(ctx, "missing@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetRecordByEmail(missing) error = %v, want sql.ErrNoRows", err)
	}
}

func TestGetRecordByID_NotFound(t *testing.T) {
	q := New(testDB(t))

	_, err := q.GetRecordByID(context.Background(), 99)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetRecordByID error = %v, want sql.ErrNoRows", err)
	}
}

func TestListRecords_InsertionOrder(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	emails := []string{"c@example.com", "a@example.com", "b@example.com"}
	for _, email := range emails {
		p := janeParams()
		p.Email = email
		if _, err := q.InsertRecord(ctx, p); err != nil {
			t.Fatalf("InsertRecord(%s): %v", email, err)
		}
	}

	records, err := q.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != len(emails) {
		t.Fatalf("len(records) = %d, want %d", len(records), len(emails))
	}
	for i, rec := range records {
		if rec.Email != emails[i] {
			t.Errorf("records[%d].Email = %q, want %q", i, rec.Email, emails[i])
		}
	}
}

func TestListRecords_Empty(t *testing.T) {
	q := New(testDB(t))

	records, err := q.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("ListRecords = %v, want empty non-nil slice", records)
	}
}

func TestDeleteRecord(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	rec, err := q.InsertRecord(ctx, janeParams())
	if err != nil {
		t.Fatalf("InsertRecord: %v", err)
	}

	n, err := q.DeleteRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteRecord rows = %d, want 1", n)
	}

	n, err = q.DeleteRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("second DeleteRecord: %v", err)
	}
	if n != 0 {
		t.Errorf("second DeleteRecord rows = %d, want 0", n)
	}
}

func TestInsertRecord_ConcurrentSameEmail(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		other     []error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := janeParams()
			p.FullName = fmt.Sprintf("Jane %d", i)
			_, err := q.InsertRecord(ctx, p)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	if len(other) > 0 {
		t.Fatalf("unexpected errors: %v", other)
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", succeeded)
	}
	if conflicts != workers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, workers-1)
	}
}

func TestCreateEvent(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	ev, err := q.CreateEvent(ctx, CreateEventParams{
		Level:     "warning",
		Category:  "auth",
		Message:   "admin login failed",
		Metadata:  `{"username":"admin"}`,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if ev.ID == 0 {
		t.Error("event ID should not be 0")
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 || events[0].Message != "admin login failed" {
		t.Errorf("ListRecentEvents = %+v, want one event", events)
	}
}

func TestSeed(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if err := Seed(ctx, q, false); err != nil {
		t.Fatalf("Seed(disabled): %v", err)
	}
	if n, _ := q.CountRecords(ctx); n != 0 {
		t.Fatalf("CountRecords after disabled seed = %d, want 0", n)
	}

	if err := Seed(ctx, q, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n, _ := q.CountRecords(ctx); n != int64(len(demoRecords)) {
		t.Errorf("CountRecords = %d, want %d", n, len(demoRecords))
	}

	// Second run is a no-op
	if err := Seed(ctx, q, true); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if n, _ := q.CountRecords(ctx); n != int64(len(demoRecords)) {
		t.Errorf("CountRecords after reseed = %d, want %d", n, len(demoRecords))
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique", errors.New("constraint failed: UNIQUE constraint failed: records.email (2067)"), true},
		{"other", errors.New("database is locked"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
