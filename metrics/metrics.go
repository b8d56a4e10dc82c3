// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// ScansTotal counts handled scans by outcome kind.
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanmail_scans_total",
			Help: "Scanned payloads handled, by outcome.",
		},
		[]string{"outcome"},
	)

	// EmailsTotal counts per-recipient sends.
	EmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanmail_emails_total",
			Help: "Outbound e-mails attempted, by result.",
		},
		[]string{"result"},
	)

	// VerificationsTotal counts settings verification probes.
	VerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanmail_verifications_total",
			Help: "Settings verification probes, by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(ScansTotal)
	prometheus.MustRegister(EmailsTotal)
	prometheus.MustRegister(VerificationsTotal)

	// Zero series are exported before the first event.
	for _, outcome := range []string{"ignored", "duplicate", "no_recipients", "sent"} {
		ScansTotal.WithLabelValues(outcome)
	}
	for _, result := range []string{ResultSuccess, ResultFailure} {
		EmailsTotal.WithLabelValues(result)
		VerificationsTotal.WithLabelValues(result)
	}
}

// Result maps a success flag to its label value.
func Result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

// Handler serves the default registry in the exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
