// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"tender/platform/orchestrator/llm"
)

func TestAIRoute_AcceptsValidProposal(t *testing.T) {
	rules := NewTaskRouter(nil)
	ai := NewAIRouter(rules, &llm.MockProvider{FixedReply: "evidence_sorter"}, 0)

	d := ai.Route(context.Background(), testTask("t1", TaskRetrieveRecords, PriorityMedium), true)
	if d.AgentID != AgentEvidenceSorter {
		t.Errorf("AgentID = %s, want evidence_sorter", d.AgentID)
	}
	if d.RoutingMethod != "ai_assisted" {
		t.Errorf("RoutingMethod = %s", d.RoutingMethod)
	}
}

func TestAIRoute_ToleratesProse(t *testing.T) {
	rules := NewTaskRouter(nil)
	ai := NewAIRouter(rules, &llm.MockProvider{FixedReply: "I would pick voice_scheduler for this."}, 0)

	d := ai.Route(context.Background(), testTask("t1", TaskScheduleAppointment, PriorityMedium), true)
	if d.AgentID != AgentVoiceScheduler {
		t.Errorf("AgentID = %s, want voice_scheduler", d.AgentID)
	}
}

func TestAIRoute_InvalidProposalFallsBack(t *testing.T) {
	rules := NewTaskRouter(nil)
	ai := NewAIRouter(rules, &llm.MockProvider{FixedReply: "paralegal_3000"}, 0)

	d := ai.Route(context.Background(), testTask("t1", TaskRetrieveRecords, PriorityMedium), true)
	if d.AgentID != AgentRecordsWrangler {
		t.Errorf("AgentID = %s, want rule-based primary", d.AgentID)
	}
	if d.RoutingMethod != "rule_based" {
		t.Errorf("RoutingMethod = %s, want rule_based", d.RoutingMethod)
	}
}

func TestAIRoute_ProviderErrorFallsBack(t *testing.T) {
	rules := NewTaskRouter(nil)
	ai := NewAIRouter(rules, &llm.MockProvider{Err: errors.New("model offline")}, 0)

	d := ai.Route(context.Background(), testTask("t1", TaskCourtFiling, PriorityMedium), true)
	if d.AgentID != AgentLegalResearcher {
		t.Errorf("AgentID = %s, want rule-based primary", d.AgentID)
	}
}

func TestAIRoute_TimeoutFallsBack(t *testing.T) {
	rules := NewTaskRouter(nil)
	ai := NewAIRouter(rules, &llm.MockProvider{FixedReply: "evidence_sorter", Delay: time.Second}, 20*time.Millisecond)

	d := ai.Route(context.Background(), testTask("t1", TaskFollowUp, PriorityMedium), true)
	if d.AgentID != AgentCommunicationGuru {
		t.Errorf("AgentID = %s, want rule-based primary after timeout", d.AgentID)
	}
}

func TestAIRoute_DisabledProposalFallsBack(t *testing.T) {
	rules := NewTaskRouter(nil)
	rules.SetAgentEnabled(AgentEvidenceSorter, false)
	ai := NewAIRouter(rules, &llm.MockProvider{FixedReply: "evidence_sorter"}, 0)

	d := ai.Route(context.Background(), testTask("t1", TaskRetrieveRecords, PriorityMedium), true)
	if d.AgentID != AgentRecordsWrangler {
		t.Errorf("AgentID = %s, want rule-based primary", d.AgentID)
	}
}

func TestAIRoute_LoadAccountingMatchesRules(t *testing.T) {
	rules := NewTaskRouter(nil)
	ai := NewAIRouter(rules, &llm.MockProvider{FixedReply: "records_wrangler"}, 0)

	ai.RouteAll(context.Background(), []Task{
		testTask("t1", TaskRetrieveRecords, PriorityMedium),
		testTask("t2", TaskRetrieveRecords, PriorityMedium),
	}, true)

	status, _ := rules.AgentStatus(AgentRecordsWrangler)
	if status.CurrentLoad != 2 {
		t.Errorf("CurrentLoad = %d, want 2", status.CurrentLoad)
	}
	if got := rules.Stats().TotalRouted; got != 2 {
		t.Errorf("TotalRouted = %d, want 2", got)
	}
}

func TestParseAgentProposal(t *testing.T) {
	tests := []struct {
		in      string
		want    AgentType
		wantErr bool
	}{
		{"records_wrangler", AgentRecordsWrangler, false},
		{"  Voice_Scheduler \n", AgentVoiceScheduler, false},
		{"assign this to legal_researcher please", AgentLegalResearcher, false},
		{"nobody home", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := parseAgentProposal(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAgentProposal(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAgentProposal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
