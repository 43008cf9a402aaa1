// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import "testing"

func TestParseSourceType(t *testing.T) {
	for _, st := range AllSourceTypes {
		got, err := ParseSourceType(string(st))
		if err != nil || got != st {
			t.Errorf("ParseSourceType(%q) = %v, %v", st, got, err)
		}
	}
	if _, err := ParseSourceType("smoke_signal"); err == nil {
		t.Error("expected error for unknown source type")
	}
	if _, err := ParseSourceType("Email"); err == nil {
		t.Error("source types are case sensitive")
	}
}

func TestParseTaskType(t *testing.T) {
	for _, tt := range AllTaskTypes {
		got, err := ParseTaskType(string(tt))
		if err != nil || got != tt {
			t.Errorf("ParseTaskType(%q) = %v, %v", tt, got, err)
		}
	}
	if _, err := ParseTaskType("juggling"); err == nil {
		t.Error("expected error for unknown task type")
	}
}

func TestParseAgentType(t *testing.T) {
	for _, at := range AllAgentTypes {
		got, err := ParseAgentType(string(at))
		if err != nil || got != at {
			t.Errorf("ParseAgentType(%q) = %v, %v", at, got, err)
		}
	}
	if _, err := ParseAgentType("intern"); err == nil {
		t.Error("expected error for unknown agent type")
	}
}

func TestRoutingRulesCoverEveryTaskType(t *testing.T) {
	for _, tt := range AllTaskTypes {
		if _, ok := routingRules[tt]; !ok {
			t.Errorf("task type %s has no routing rule", tt)
		}
	}
}
