// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the counters.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeFailure   = "failure"
	OutcomeNotFound  = "not_found"
	OutcomeLocked    = "locked"
)

// Collector is the Prometheus implementation used by services and middleware.
type Collector struct {
	submissions  *prometheus.CounterVec
	logins       *prometheus.CounterVec
	deletions    *prometheus.CounterVec
	exports      prometheus.Counter
	exportedRows prometheus.Counter
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Signup form submissions by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_admin_logins_total",
			Help: "Admin login attempts by outcome.",
		}, []string{"outcome"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_record_deletions_total",
			Help: "Record deletions by outcome.",
		}, []string{"outcome"}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signup_exports_total",
			Help: "CSV exports served.",
		}),
		exportedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signup_exported_rows_total",
			Help: "Records written to CSV exports.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_http_requests_total",
			Help: "HTTP responses by route and status code.",
		}, []string{"route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.submissions,
		c.logins,
		c.deletions,
		c.exports,
		c.exportedRows,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

// RecordSubmission counts a form submission.
func (c *Collector) RecordSubmission(outcome string) {
	c.submissions.WithLabelValues(outcome).Inc()
}

// RecordLogin counts an admin login attempt.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordDeletion counts a delete request.
func (c *Collector) RecordDeletion(outcome string) {
	c.deletions.WithLabelValues(outcome).Inc()
}

// RecordExport counts an export and the rows it contained.
func (c *Collector) RecordExport(rows int) {
	c.exports.Inc()
	c.exportedRows.Add(float64(rows))
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
