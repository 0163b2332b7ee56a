// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/olegiv/signupform/internal/model"
)

// ExportService renders all records as an RFC 4180 CSV document.
type ExportService struct {
	records     RecordStore
	auth        Authenticator
	requireAuth bool
	events      *EventService
	metrics     Recorder
}

// NewExportService creates an ExportService. When requireAuth is false the
// export is available to anyone. events and rec may be nil.
func NewExportService(records RecordStore, auth Authenticator, requireAuth bool, events *EventService, rec Recorder) *ExportService {
	return &ExportService{
		records:     records,
		auth:        auth,
		requireAuth: requireAuth,
		events:      events,
		metrics:     recorderOrNop(rec),
	}
}

// RequiresAuth reports whether exports are restricted to the admin.
func (s *ExportService) RequiresAuth() bool {
	return s.requireAuth
}

// ExportCSV returns a header row followed by one row per record, with
// CRLF line endings.
// The id and created_at columns are not exported.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	if s.requireAuth && !s.auth.IsAuthenticated(ctx) {
		return nil, ErrUnauthorized
	}

	records, err := s.records.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	fields := model.SignupFields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Label
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		row := []string{r.FullName, r.PhoneNumber, r.Email, r.Sex, r.Birthday}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row %d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	s.metrics.RecordExport(len(records))
	slog.Info("records exported", "count", len(records))
	_ = s.events.LogExportEvent(ctx, model.EventLevelInfo, "records exported", map[string]any{"count": len(records)})

	return buf.Bytes(), nil
}
