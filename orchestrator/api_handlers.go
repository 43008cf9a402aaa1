// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "tender-orchestrator",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC(),
		"components": map[string]bool{
			"router":       true,
			"rate_limiter": s.limiter != nil,
		},
	})
}

// metricsHandler is the JSON metrics summary; native Prometheus exposition
// lives at /prometheus.
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.orch.Router().Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":        "tender-orchestrator",
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
		"routing":        stats,
		"agents":         s.orch.Router().AllAgentStatuses(),
	})
}

func (s *Server) processIntakeHandler(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !s.limiter.Allow(r.Context(), s.limiterKey(r, req.CaseID)) {
		writeError(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	result, err := s.orch.ProcessInput(r.Context(), req)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	history := s.orch.History(r.URL.Query().Get("case_id"), limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   len(history),
	})
}

func (s *Server) resultHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result, ok := s.orch.Result(id)
	if !ok {
		writeError(w, "processing result not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// routeTaskRequest is the standalone routing request body, for callers
// that already have a task and only want an assignment.
type routeTaskRequest struct {
	TaskID       string `json:"task_id"`
	TaskType     string `json:"task_type"`
	Priority     string `json:"priority"`
	Description  string `json:"description"`
	ConsiderLoad *bool  `json:"consider_load,omitempty"`
}

func (s *Server) routeTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req routeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	taskType, err := ParseTaskType(req.TaskType)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	priority := Priority(req.Priority)
	switch priority {
	case PriorityUrgent, PriorityHigh, PriorityMedium:
	case "":
		priority = PriorityMedium
	default:
		writeError(w, "invalid priority", http.StatusBadRequest)
		return
	}

	considerLoad := true
	if req.ConsiderLoad != nil {
		considerLoad = *req.ConsiderLoad
	}

	decision := s.orch.Router().Route(Task{
		ID:          req.TaskID,
		Type:        taskType,
		Priority:    priority,
		Description: req.Description,
		DetectedAt:  time.Now().UTC(),
	}, considerLoad)
	writeJSON(w, http.StatusOK, decision)
}

func (s *Server) listAgentsHandler(w http.ResponseWriter, r *http.Request) {
	statuses := s.orch.Router().AllAgentStatuses()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"agents": statuses,
		"count":  len(statuses),
	})
}

func (s *Server) getAgentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := ParseAgentType(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	status, err := s.orch.Router().AgentStatus(id)
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) completeTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := ParseAgentType(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := s.orch.Router().CompleteTask(id); err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	status, _ := s.orch.Router().AgentStatus(id)
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) resetAgentLoadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := ParseAgentType(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := s.orch.Router().ResetAgentLoad(id); err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	status, _ := s.orch.Router().AgentStatus(id)
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) setAgentEnabledHandler(w http.ResponseWriter, r *http.Request) {
	id, err := ParseAgentType(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.orch.Router().SetAgentEnabled(id, body.Enabled); err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	status, _ := s.orch.Router().AgentStatus(id)
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Router().Stats())
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	s.orch.Router().Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// limiterKey prefers the case id so clients behind shared NAT aren't
// throttled together, falling back to the caller's host.
func (s *Server) limiterKey(r *http.Request, caseID string) string {
	if caseID != "" {
		return "case:" + caseID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "addr:" + r.RemoteAddr
	}
	return "addr:" + host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are already written; an encode failure here is unrecoverable
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
