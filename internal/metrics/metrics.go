// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus counters of the portal identity
// service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"

	ChangeAdded   = "added"
	ChangeUpdated = "updated"
)

// Metrics holds all Prometheus metrics for the application. Each instance
// owns its registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Logins           *prometheus.CounterVec
	Registrations    prometheus.Counter
	ReconcileRuns    *prometheus.CounterVec
	ReconcileChanges *prometheus.CounterVec
	MirrorWrites     *prometheus.CounterVec
	AuditDeliveries  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Login attempts by status",
		}, []string{"status"}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_registrations_total",
			Help: "Accounts created through registration",
		}),
		ReconcileRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_reconcile_runs_total",
			Help: "Reconciliation passes by outcome",
		}, []string{"outcome"}),
		ReconcileChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_reconcile_changes_total",
			Help: "Registry records added or updated from the mirror",
		}, []string{"kind"}),
		MirrorWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_mirror_writes_total",
			Help: "Credential mirror writes by outcome",
		}, []string{"outcome"}),
		AuditDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_audit_deliveries_total",
			Help: "Audit sink deliveries by outcome",
		}, []string{"outcome"}),
	}
}

// Nop returns metrics registered on a private registry nobody scrapes.
func Nop() *Metrics {
	return New()
}

func (m *Metrics) IncLogin(status string) {
	m.Logins.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRegistration() {
	m.Registrations.Inc()
}

func (m *Metrics) ObserveReconcile(outcome string, added, updated int) {
	m.ReconcileRuns.WithLabelValues(outcome).Inc()
	m.ReconcileChanges.WithLabelValues(ChangeAdded).Add(float64(added))
	m.ReconcileChanges.WithLabelValues(ChangeUpdated).Add(float64(updated))
}

func (m *Metrics) IncMirrorWrite(outcome string) {
	m.MirrorWrites.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncAuditDelivery(outcome string) {
	m.AuditDeliveries.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
