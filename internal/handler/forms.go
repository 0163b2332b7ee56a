// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/signupform/internal/model"
	"github.com/olegiv/signupform/internal/render"
	"github.com/olegiv/signupform/internal/service"
)

// FormHandler serves the public signup form.
type FormHandler struct {
	renderer *render.Renderer
	forms    *service.FormService
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(renderer *render.Renderer, forms *service.FormService) *FormHandler {
	return &FormHandler{
		renderer: renderer,
		forms:    forms,
	}
}

// Index handles GET / and shows the form with any message or error from the query string.
func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Title: "Signup Form"}
	flashFromQuery(r, &data)
	renderPage(w, r, h.renderer, http.StatusOK, pageForm, data)
}

// Submit handles POST /submit.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("invalid signup form data", "error", err)
		redirectError(w, r, RouteRoot, MsgGeneric)
		return
	}

	in := service.SubmitInput{
		FullName:    r.PostFormValue(model.FieldFullName),
		PhoneNumber: r.PostFormValue(model.FieldPhoneNumber),
		Email:       r.PostFormValue(model.FieldEmail),
		Sex:         r.PostFormValue(model.FieldSex),
		Birthday:    r.PostFormValue(model.FieldBirthday),
	}

	_, err := h.forms.Submit(r.Context(), in)
	var verr *service.ValidationError
	switch {
	case err == nil:
		redirectMessage(w, r, RouteRoot, MsgSubmitted)
	case errors.As(err, &verr):
		redirectError(w, r, RouteRoot, MsgMissingFields+missingLabels(verr.Fields))
	case errors.Is(err, service.ErrDuplicateEmail):
		redirectError(w, r, RouteRoot, MsgDuplicateEmail)
	default:
		slog.Error("signup submission failed", "error", err)
		redirectError(w, r, RouteRoot, MsgGeneric)
	}
}

func missingLabels(fields []string) string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = model.FieldLabel(f)
	}
	return strings.Join(labels, ", ")
}
