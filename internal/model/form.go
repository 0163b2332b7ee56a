// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

// Signup form field names as posted by the browser.
const (
	FieldFullName    = "full_name"
	FieldPhoneNumber = "phone_number"
	FieldEmail       = "email"
	FieldSex         = "sex"
	FieldBirthday    = "birthday"
)

// Field describes one signup form field.
type Field struct {
	Name  string
	Label string
}

// SignupFields returns the signup fields in form and export order.
func SignupFields() []Field {
	return []Field{
		{Name: FieldFullName, Label: "Full Name"},
		{Name: FieldPhoneNumber, Label: "Phone Number"},
		{Name: FieldEmail, Label: "Email"},
		{Name: FieldSex, Label: "Sex"},
		{Name: FieldBirthday, Label: "Birthday"},
	}
}

// FieldLabel returns the human-readable label for a field name,
// or the name itself when unknown.
func FieldLabel(name string) string {
	for _, f := range SignupFields() {
		if f.Name == name {
			return f.Label
		}
	}
	return name
}
