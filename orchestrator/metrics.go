// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the pipeline's Prometheus collectors. Collectors are
// registered on construction; build one Metrics per registry.
type Metrics struct {
	InputsProcessed    *prometheus.CounterVec
	TasksDetected      *prometheus.CounterVec
	RoutingDecisions   *prometheus.CounterVec
	SpecialistDrafts   *prometheus.CounterVec
	SpecialistFailures *prometheus.CounterVec
	ProcessingDuration *prometheus.HistogramVec
	SensitiveSpans     *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors on the given registerer.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		InputsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tender_inputs_processed_total",
			Help: "Intake inputs processed, by source type.",
		}, []string{"source_type"}),
		TasksDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tender_tasks_detected_total",
			Help: "Tasks detected, by task type.",
		}, []string{"task_type"}),
		RoutingDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tender_routing_decisions_total",
			Help: "Routing decisions, by agent and routing method.",
		}, []string{"agent_id", "method"}),
		SpecialistDrafts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tender_specialist_drafts_total",
			Help: "Successful specialist drafts, by agent.",
		}, []string{"agent_id"}),
		SpecialistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tender_specialist_failures_total",
			Help: "Failed specialist drafts, by agent.",
		}, []string{"agent_id"}),
		ProcessingDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tender_processing_duration_seconds",
			Help:    "End-to-end intake processing duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source_type"}),
		SensitiveSpans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tender_sensitive_spans_total",
			Help: "Regulated data spans detected, by span type.",
		}, []string{"span_type"}),
	}
}
