// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tender/platform/orchestrator/llm"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	limiter, err := NewRateLimiter("", 0, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewServer(New(nil, llm.NewMockProvider()), limiter).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
	if body["service"] != "tender-orchestrator" {
		t.Errorf("service = %v", body["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	route := postJSON(t, srv.URL+"/api/v1/router/route", map[string]interface{}{
		"task_id":   "t1",
		"task_type": "retrieve_records",
	})
	route.Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Service string        `json:"service"`
		Routing RoutingStats  `json:"routing"`
		Agents  []AgentStatus `json:"agents"`
	}
	decodeJSON(t, resp, &body)
	if body.Service != "tender-orchestrator" {
		t.Errorf("service = %q", body.Service)
	}
	if body.Routing.TotalRouted != 1 {
		t.Errorf("TotalRouted = %d, want 1", body.Routing.TotalRouted)
	}
	if len(body.Agents) != len(AllAgentTypes) {
		t.Errorf("agents = %d, want %d", len(body.Agents), len(AllAgentTypes))
	}
}

func TestResetAgentLoadEndpoint(t *testing.T) {
	srv := newTestServer(t)

	route := postJSON(t, srv.URL+"/api/v1/router/route", map[string]interface{}{
		"task_id":   "t1",
		"task_type": "retrieve_records",
	})
	route.Body.Close()

	reset := postJSON(t, srv.URL+"/api/v1/router/agents/records_wrangler/reset", struct{}{})
	var status AgentStatus
	decodeJSON(t, reset, &status)
	if status.CurrentLoad != 0 {
		t.Errorf("CurrentLoad = %d, want 0 after reset", status.CurrentLoad)
	}

	stats, err := http.Get(srv.URL + "/api/v1/router/stats")
	if err != nil {
		t.Fatal(err)
	}
	var rs RoutingStats
	decodeJSON(t, stats, &rs)
	if rs.TotalRouted != 1 {
		t.Errorf("TotalRouted = %d, want history untouched by load reset", rs.TotalRouted)
	}

	missing := postJSON(t, srv.URL+"/api/v1/router/agents/nobody/reset", struct{}{})
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown agent reset status = %d", missing.StatusCode)
	}
	missing.Body.Close()
}

func TestProcessIntakeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/v1/intake/process", ProcessRequest{
		RawText:    "please request my medical records from Dr. Patel",
		SourceType: "email",
		CaseID:     "CASE-2024-0117",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var result ProcessingResult
	decodeJSON(t, resp, &result)
	if len(result.DetectedTasks) != 1 || result.DetectedTasks[0].Type != TaskRetrieveRecords {
		t.Errorf("tasks = %+v", result.DetectedTasks)
	}
	if result.ApprovalRequired != ApprovalPending {
		t.Errorf("approval = %s", result.ApprovalRequired)
	}

	// result should now be retrievable
	lookup, err := http.Get(srv.URL + "/api/v1/intake/results/" + result.ProcessingID)
	if err != nil {
		t.Fatal(err)
	}
	if lookup.StatusCode != http.StatusOK {
		t.Errorf("result lookup status = %d", lookup.StatusCode)
	}
	lookup.Body.Close()
}

func TestProcessIntakeEndpoint_Invalid(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/intake/process", ProcessRequest{
		RawText:    "hello",
		SourceType: "telegraph",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad source status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	raw, err := http.Post(srv.URL+"/api/v1/intake/process", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatal(err)
	}
	if raw.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d", raw.StatusCode)
	}
	raw.Body.Close()
}

func TestHistoryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 2; i++ {
		resp := postJSON(t, srv.URL+"/api/v1/intake/process", ProcessRequest{
			RawText:    "any update?",
			SourceType: "sms",
			CaseID:     "CASE-H",
		})
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/api/v1/intake/history?case_id=CASE-H&limit=1")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		History []ProcessingSummary `json:"history"`
		Count   int                 `json:"count"`
	}
	decodeJSON(t, resp, &body)
	if body.Count != 1 {
		t.Errorf("count = %d, want 1", body.Count)
	}

	bad, err := http.Get(srv.URL + "/api/v1/intake/history?limit=x")
	if err != nil {
		t.Fatal(err)
	}
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", bad.StatusCode)
	}
	bad.Body.Close()
}

func TestRouteEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/v1/router/route", map[string]interface{}{
		"task_id":   "t1",
		"task_type": "schedule_appointment",
		"priority":  "high",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var d RoutingDecision
	decodeJSON(t, resp, &d)
	if d.AgentID != AgentVoiceScheduler {
		t.Errorf("AgentID = %s", d.AgentID)
	}

	bad := postJSON(t, srv.URL+"/api/v1/router/route", map[string]interface{}{
		"task_type": "interpretive_dance",
	})
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid type status = %d", bad.StatusCode)
	}
	bad.Body.Close()
}

func TestAgentEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/router/agents")
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Agents []AgentStatus `json:"agents"`
		Count  int           `json:"count"`
	}
	decodeJSON(t, resp, &list)
	if list.Count != 5 {
		t.Errorf("agent count = %d, want 5", list.Count)
	}

	one, err := http.Get(srv.URL + "/api/v1/router/agents/legal_researcher")
	if err != nil {
		t.Fatal(err)
	}
	var status AgentStatus
	decodeJSON(t, one, &status)
	if status.AgentID != AgentLegalResearcher || status.MaxConcurrentTasks != 3 {
		t.Errorf("status = %+v", status)
	}

	missing, err := http.Get(srv.URL + "/api/v1/router/agents/nobody")
	if err != nil {
		t.Fatal(err)
	}
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown agent status = %d", missing.StatusCode)
	}
	missing.Body.Close()
}

func TestCompleteAndResetEndpoints(t *testing.T) {
	srv := newTestServer(t)

	route := postJSON(t, srv.URL+"/api/v1/router/route", map[string]interface{}{
		"task_id":   "t1",
		"task_type": "retrieve_records",
	})
	route.Body.Close()

	complete := postJSON(t, srv.URL+"/api/v1/router/agents/records_wrangler/complete", struct{}{})
	var status AgentStatus
	decodeJSON(t, complete, &status)
	if status.CurrentLoad != 0 {
		t.Errorf("CurrentLoad = %d, want 0 after completion", status.CurrentLoad)
	}

	reset := postJSON(t, srv.URL+"/api/v1/router/reset", struct{}{})
	if reset.StatusCode != http.StatusOK {
		t.Errorf("reset status = %d", reset.StatusCode)
	}
	reset.Body.Close()

	stats, err := http.Get(srv.URL + "/api/v1/router/stats")
	if err != nil {
		t.Fatal(err)
	}
	var rs RoutingStats
	decodeJSON(t, stats, &rs)
	if rs.TotalRouted != 0 {
		t.Errorf("TotalRouted = %d after reset", rs.TotalRouted)
	}
}

func TestSetAgentEnabledEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]bool{"enabled": false})
	req, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/v1/router/agents/%s/enabled", srv.URL, AgentEvidenceSorter),
		bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var status AgentStatus
	decodeJSON(t, resp, &status)
	if status.Enabled {
		t.Error("Enabled = true after disabling")
	}
}
