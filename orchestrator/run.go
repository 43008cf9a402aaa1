// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"tender/platform/orchestrator/llm"
	"tender/platform/shared/logger"
)

// Server owns the HTTP surface of the intake pipeline. All pipeline state
// hangs off the Server instance; nothing lives in package globals.
type Server struct {
	orch      *Orchestrator
	limiter   *RateLimiter
	log       *logger.Logger
	startTime time.Time
}

// NewServer wires an orchestrator and rate limiter into a Server.
func NewServer(orch *Orchestrator, limiter *RateLimiter) *Server {
	return &Server{
		orch:      orch,
		limiter:   limiter,
		log:       logger.New("intake-api"),
		startTime: time.Now(),
	}
}

// Handler assembles the route table with CORS applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	// Health check
	r.HandleFunc("/health", s.healthHandler).Methods("GET")

	// Metrics endpoints
	r.HandleFunc("/metrics", s.metricsHandler).Methods("GET") // JSON summary
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	// Intake pipeline
	r.HandleFunc("/api/v1/intake/process", s.processIntakeHandler).Methods("POST")
	r.HandleFunc("/api/v1/intake/history", s.historyHandler).Methods("GET")
	r.HandleFunc("/api/v1/intake/results/{id}", s.resultHandler).Methods("GET")

	// Router management
	r.HandleFunc("/api/v1/router/route", s.routeTaskHandler).Methods("POST")
	r.HandleFunc("/api/v1/router/agents", s.listAgentsHandler).Methods("GET")
	r.HandleFunc("/api/v1/router/agents/{id}", s.getAgentHandler).Methods("GET")
	r.HandleFunc("/api/v1/router/agents/{id}/complete", s.completeTaskHandler).Methods("POST")
	r.HandleFunc("/api/v1/router/agents/{id}/enabled", s.setAgentEnabledHandler).Methods("PUT")
	r.HandleFunc("/api/v1/router/agents/{id}/reset", s.resetAgentLoadHandler).Methods("POST")
	r.HandleFunc("/api/v1/router/stats", s.statsHandler).Methods("GET")
	r.HandleFunc("/api/v1/router/reset", s.resetHandler).Methods("POST")

	return c.Handler(r)
}

// Run boots the intake orchestrator from environment configuration and
// serves until the process exits.
//
// Environment:
//   - PORT: listen port (default 8080)
//   - AGENT_CONFIG_FILE: YAML agent roster overrides (optional)
//   - OPENAI_API_KEY / ANTHROPIC_API_KEY / BEDROCK_REGION: draft provider
//     credentials (optional; mock provider without them)
//   - AI_ROUTING: "true" enables model-assisted routing (optional)
//   - REDIS_URL: sliding-window rate limiting backend (optional)
//   - RATE_LIMIT: max intake submissions per caller per minute (default 60)
func Run() {
	log.Println("Starting Tender intake orchestrator...")

	roster, err := LoadAgentRosterFromEnv()
	if err != nil {
		log.Fatalf("agent roster: %v", err)
	}

	provider := llm.FromEnv()
	log.Printf("Draft provider: %s", provider.Name())

	opts := []Option{WithMetrics(NewMetrics(prometheus.DefaultRegisterer))}
	if os.Getenv("AI_ROUTING") == "true" {
		opts = append(opts, WithAIRouting(provider, 0))
	}
	orch := New(roster, provider, opts...)

	limit := 60
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	limiter, err := NewRateLimiter(os.Getenv("REDIS_URL"), limit, time.Minute)
	if err != nil {
		log.Fatalf("rate limiter: %v", err)
	}
	defer limiter.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := NewServer(orch, limiter)
	log.Printf("Listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, srv.Handler()))
}
