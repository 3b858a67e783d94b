// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Token request results used as the "result" label.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultEmpty   = "empty"
)

var (
	// Token metrics
	TokenRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphmail_token_requests_total",
		Help: "Total number of client-credentials token requests by result",
	}, []string{"tenant", "result"})

	// Mail metrics. Labels are limited to the tenant; mailbox and recipient
	// addresses would explode cardinality.
	MailSendAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphmail_mail_send_attempts_total",
		Help: "Total number of sendMail attempts, including retries",
	}, []string{"tenant"})
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphmail_mail_send_success_total",
		Help: "Total number of messages submitted successfully",
	}, []string{"tenant"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphmail_mail_send_failure_total",
		Help: "Total number of messages that failed after all retries",
	}, []string{"tenant"})
	MailRetryScheduled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphmail_mail_retry_scheduled_total",
		Help: "Total number of retries scheduled after a failed attempt",
	}, []string{"tenant"})
	MailSendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphmail_mail_send_duration_seconds",
		Help:    "End-to-end duration of SendEmail calls, including backoff",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"tenant", "outcome"})
)

func init() {
	prometheus.MustRegister(TokenRequests)
	prometheus.MustRegister(MailSendAttempts)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(MailRetryScheduled)
	prometheus.MustRegister(MailSendDuration)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
