// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/signupform/internal/metrics"
	"github.com/olegiv/signupform/internal/model"
	"github.com/olegiv/signupform/internal/store"
)

// DeleteOutcome is the result of a delete request.
type DeleteOutcome int

// Delete outcomes.
const (
	DeleteOutcomeDeleted DeleteOutcome = iota + 1
	DeleteOutcomeNotFound
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteOutcomeDeleted:
		return "deleted"
	case DeleteOutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// AdminService lists and deletes records for an authenticated admin.
// Every call checks authentication before touching the store.
type AdminService struct {
	records RecordStore
	auth    Authenticator
	events  *EventService
	metrics Recorder
}

// NewAdminService creates an AdminService. events and rec may be nil.
func NewAdminService(records RecordStore, auth Authenticator, events *EventService, rec Recorder) *AdminService {
	return &AdminService{
		records: records,
		auth:    auth,
		events:  events,
		metrics: recorderOrNop(rec),
	}
}

// ListAll returns every record in insertion order.
func (s *AdminService) ListAll(ctx context.Context) ([]store.Record, error) {
	if !s.auth.IsAuthenticated(ctx) {
		return nil, ErrUnauthorized
	}

	records, err := s.records.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// Delete removes the record with the given id. Deleting an unknown id is
// reported as DeleteOutcomeNotFound, not as an error.
func (s *AdminService) Delete(ctx context.Context, id int64) (DeleteOutcome, error) {
	if !s.auth.IsAuthenticated(ctx) {
		return 0, ErrUnauthorized
	}

	n, err := s.records.DeleteRecord(ctx, id)
	if err != nil {
		s.metrics.RecordDeletion(metrics.OutcomeFailure)
		return 0, fmt.Errorf("deleting record %d: %w", id, err)
	}

	if n == 0 {
		s.metrics.RecordDeletion(metrics.OutcomeNotFound)
		return DeleteOutcomeNotFound, nil
	}

	s.metrics.RecordDeletion(metrics.OutcomeSuccess)
	slog.Info("record deleted", "record_id", id)
	_ = s.events.LogRecordEvent(ctx, model.EventLevelInfo, "record deleted", map[string]any{"record_id": id})

	return DeleteOutcomeDeleted, nil
}
