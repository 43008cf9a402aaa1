// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		component      string
		instanceID     string
		expectedInstID string
	}{
		{
			name:           "with instance ID set",
			component:      "orchestrator",
			instanceID:     "instance-123",
			expectedInstID: "instance-123",
		},
		{
			name:           "without instance ID",
			component:      "router",
			instanceID:     "",
			expectedInstID: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.instanceID != "" {
				os.Setenv("INSTANCE_ID", tt.instanceID)
			} else {
				os.Unsetenv("INSTANCE_ID")
			}
			defer os.Unsetenv("INSTANCE_ID")

			l := New(tt.component)

			if l.Component != tt.component {
				t.Errorf("Component = %q, want %q", l.Component, tt.component)
			}
			if l.InstanceID != tt.expectedInstID {
				t.Errorf("InstanceID = %q, want %q", l.InstanceID, tt.expectedInstID)
			}
			if l.Container == "" {
				t.Error("Container should not be empty")
			}
		})
	}
}

func captureOutput(f func()) string {
	var buf bytes.Buffer
	prevOut := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	}()
	f()
	return buf.String()
}

func TestLog_JSONOutput(t *testing.T) {
	l := New("orchestrator")

	out := captureOutput(func() {
		l.Info("CASE-1", "req-1", "intake processed", map[string]interface{}{
			"task_count": 2,
		})
	})

	line := strings.TrimSpace(out)
	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, line)
	}

	if entry.Level != INFO {
		t.Errorf("Level = %q, want INFO", entry.Level)
	}
	if entry.CaseID != "CASE-1" {
		t.Errorf("CaseID = %q, want CASE-1", entry.CaseID)
	}
	if entry.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", entry.RequestID)
	}
	if entry.Message != "intake processed" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Fields["task_count"].(float64) != 2 {
		t.Errorf("Fields[task_count] = %v, want 2", entry.Fields["task_count"])
	}
}

func TestErrorWithCode(t *testing.T) {
	l := New("orchestrator")

	out := captureOutput(func() {
		l.ErrorWithCode("CASE-2", "req-2", "specialist failed", 502, os.ErrDeadlineExceeded, nil)
	})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if entry.Level != ERROR {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Fields["status_code"].(float64) != 502 {
		t.Errorf("status_code = %v, want 502", entry.Fields["status_code"])
	}
	if entry.Fields["error"] == "" {
		t.Error("error field should be populated")
	}
}

func TestInfoWithDuration(t *testing.T) {
	l := New("router")

	out := captureOutput(func() {
		l.InfoWithDuration("", "req-3", "route completed", 12.5, nil)
	})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if entry.Fields["duration_ms"].(float64) != 12.5 {
		t.Errorf("duration_ms = %v, want 12.5", entry.Fields["duration_ms"])
	}
}
