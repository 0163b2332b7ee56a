// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the signup form, admin and export operations
// on top of a record store, plus an audit event log.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/signupform/internal/model"
	"github.com/olegiv/signupform/internal/store"
)

// EventWriter persists event log entries.
type EventWriter interface {
	CreateEvent(ctx context.Context, arg store.CreateEventParams) (store.Event, error)
}

// EventService provides audit event logging.
type EventService struct {
	events EventWriter
}

// NewEventService creates a new EventService.
func NewEventService(w EventWriter) *EventService {
	return &EventService{events: w}
}

// LogEvent creates a new event log entry. A nil EventService discards events.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, metadata map[string]any) error {
	if s == nil {
		return nil
	}

	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	_, err := s.events.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to log event", "error", err, "message", message)
		return err
	}

	return nil
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, metadata)
}

// LogRecordEvent logs a record-related event.
func (s *EventService) LogRecordEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryRecord, message, metadata)
}

// LogExportEvent logs an export-related event.
func (s *EventService) LogExportEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryExport, message, metadata)
}
