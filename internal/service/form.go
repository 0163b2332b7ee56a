// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/signupform/internal/metrics"
	"github.com/olegiv/signupform/internal/model"
	"github.com/olegiv/signupform/internal/store"
	"github.com/olegiv/signupform/internal/util"
)

// SubmitInput holds the raw signup form values.
type SubmitInput struct {
	FullName    string
	PhoneNumber string
	Email       string
	Sex         string
	Birthday    string
}

// trimmed returns a copy with every field trimmed and NFC-normalized.
func (in SubmitInput) trimmed() SubmitInput {
	return SubmitInput{
		FullName:    util.NormalizeField(in.FullName),
		PhoneNumber: util.NormalizeField(in.PhoneNumber),
		Email:       util.NormalizeField(in.Email),
		Sex:         util.NormalizeField(in.Sex),
		Birthday:    util.NormalizeField(in.Birthday),
	}
}

// missingFields returns the names of empty fields in form order.
func (in SubmitInput) missingFields() []string {
	values := map[string]string{
		model.FieldFullName:    in.FullName,
		model.FieldPhoneNumber: in.PhoneNumber,
		model.FieldEmail:       in.Email,
		model.FieldSex:         in.Sex,
		model.FieldBirthday:    in.Birthday,
	}

	var missing []string
	for _, f := range model.SignupFields() {
		if values[f.Name] == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// FormService validates and stores signup submissions.
type FormService struct {
	records RecordStore
	events  *EventService
	metrics Recorder
	now     func() time.Time
}

// NewFormService creates a FormService. events and rec may be nil.
func NewFormService(records RecordStore, events *EventService, rec Recorder) *FormService {
	return &FormService{
		records: records,
		events:  events,
		metrics: recorderOrNop(rec),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a new record. It returns a *ValidationError when a field is
// empty and ErrDuplicateEmail when the email is already registered, whether
// caught by the lookup or by the store's unique constraint.
func (s *FormService) Submit(ctx context.Context, in SubmitInput) (store.Record, error) {
	in = in.trimmed()

	if missing := in.missingFields(); len(missing) > 0 {
		s.metrics.RecordSubmission(metrics.OutcomeInvalid)
		return store.Record{}, &ValidationError{Fields: missing}
	}

	_, err := s.records.GetRecordByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return store.Record{}, s.duplicate(ctx)
	case !errors.Is(err, sql.ErrNoRows):
		s.metrics.RecordSubmission(metrics.OutcomeFailure)
		return store.Record{}, fmt.Errorf("looking up email: %w", err)
	}

	rec, err := s.records.InsertRecord(ctx, store.CreateRecordParams{
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Sex:         in.Sex,
		Birthday:    in.Birthday,
		CreatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return store.Record{}, s.duplicate(ctx)
		}
		s.metrics.RecordSubmission(metrics.OutcomeFailure)
		return store.Record{}, fmt.Errorf("inserting record: %w", err)
	}

	s.metrics.RecordSubmission(metrics.OutcomeSuccess)
	slog.Info("record submitted", "record_id", rec.ID)
	_ = s.events.LogRecordEvent(ctx, model.EventLevelInfo, "record submitted", map[string]any{"record_id": rec.ID})

	return rec, nil
}

func (s *FormService) duplicate(ctx context.Context) error {
	s.metrics.RecordSubmission(metrics.OutcomeDuplicate)
	slog.InfoContext(ctx, "duplicate email rejected")
	return ErrDuplicateEmail
}
