// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package specialists

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tender/platform/orchestrator/llm"
)

// VoiceScheduler drafts appointment proposals and internal calendar
// reminders. Outbound scheduling messages need approval; internal
// reminder entries do not, since they never leave the firm.
type VoiceScheduler struct {
	provider llm.Provider
}

func NewVoiceScheduler(provider llm.Provider) *VoiceScheduler {
	return &VoiceScheduler{provider: provider}
}

func (s *VoiceScheduler) AgentID() string { return "voice_scheduler" }
func (s *VoiceScheduler) Name() string    { return "Voice Scheduler" }

func (s *VoiceScheduler) Draft(ctx context.Context, req TaskRequest) (*DraftResult, error) {
	internal := req.TaskType == "deadline_reminder"

	var b strings.Builder
	if internal {
		b.WriteString("Draft an internal calendar reminder entry for firm staff.\n")
	} else {
		b.WriteString("Draft an appointment proposal message with two or three concrete time options.\n")
	}
	fmt.Fprintf(&b, "Scheduling context: %s\n", req.Description)
	if at, ok := req.ExtractedData["appointment_type"].(string); ok && at != "" {
		fmt.Fprintf(&b, "Appointment type: %s\n", at)
	}
	if dates := stringSlice(req.ExtractedData["candidate_dates"]); len(dates) > 0 {
		fmt.Fprintf(&b, "Dates mentioned by the client: %s\n", strings.Join(dates, ", "))
	}

	resp, err := s.provider.Query(ctx, b.String(), llm.QueryOptions{MaxTokens: 600})
	if err != nil {
		return nil, fmt.Errorf("scheduling draft: %w", err)
	}

	draftType := "appointment_proposal"
	if internal {
		draftType = "internal_reminder"
	}
	return &DraftResult{
		AgentID:          s.AgentID(),
		AgentName:        s.Name(),
		DraftType:        draftType,
		Content:          resp.Content,
		RequiresApproval: !internal,
		Metadata:         map[string]interface{}{"internal": internal},
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
