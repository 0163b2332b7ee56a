// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot renders the signup form.
	RouteRoot = "/"
	// RouteSubmit accepts signup form posts.
	RouteSubmit = "/submit"
	// RouteAdminLogin shows and processes the admin login form.
	RouteAdminLogin = "/admin-login"
	// RouteAdminLogout clears the admin flag.
	RouteAdminLogout = "/admin-logout"
	// RouteAdmin lists all records.
	RouteAdmin = "/admin"
	// RouteDelete deletes one record.
	RouteDelete = "/delete/{id:[0-9]+}"
	// RouteExport downloads all records as CSV.
	RouteExport = "/export"

	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
	RouteMetrics     = "/metrics"
)

// Query parameters carrying one-shot messages across redirects.
const (
	QueryMessage = "message"
	QueryError   = "error"
)

// User-facing messages.
const (
	MsgSubmitted          = "✅ Your Information has been submitted successfully!"
	MsgDuplicateEmail     = "❌ Error: This email already exists in the database!"
	MsgMissingFields      = "❌ Error: Please fill in all required fields: "
	MsgInvalidCredentials = "Invalid username or password."
	MsgTooManyAttempts    = "Too many failed attempts. Please try again in "
	MsgAttemptsRemaining  = "Attempts remaining before lockout: "
	MsgUserDeleted        = "User deleted successfully."
	MsgUserNotFound       = "User not found."
	MsgGeneric            = "Something went wrong. Please try again."
)

// Template names under web/templates/pages.
const (
	pageForm       = "form"
	pageAdminLogin = "admin_login"
	pageAdmin      = "admin"
)

const (
	exportContentType = "text/csv"
	exportDisposition = "attachment; filename=form_data.csv"
)
