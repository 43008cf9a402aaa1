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

// CommunicationGuru drafts client-facing messages: status updates, replies
// to questions, demand letters, reminders, and follow-ups.
type CommunicationGuru struct {
	provider llm.Provider
}

func NewCommunicationGuru(provider llm.Provider) *CommunicationGuru {
	return &CommunicationGuru{provider: provider}
}

func (s *CommunicationGuru) AgentID() string { return "communication_guru" }
func (s *CommunicationGuru) Name() string    { return "Communication Guru" }

// Draft tailors the prompt to the task type. Every communication draft
// requires attorney approval before anything is sent.
func (s *CommunicationGuru) Draft(ctx context.Context, req TaskRequest) (*DraftResult, error) {
	draftType := "client_reply"
	var b strings.Builder
	switch req.TaskType {
	case "draft_letter":
		draftType = "letter"
		b.WriteString("Draft a formal letter for attorney review.\n")
	case "deadline_reminder":
		draftType = "reminder_notice"
		b.WriteString("Draft a client-facing deadline reminder notice.\n")
	case "follow_up":
		draftType = "follow_up_message"
		b.WriteString("Draft a follow-up message on the pending item.\n")
	default:
		b.WriteString("Draft an empathetic reply to the client's message.\n")
	}
	fmt.Fprintf(&b, "Context: %s\n", req.Description)
	if questions := stringSlice(req.ExtractedData["questions"]); len(questions) > 0 {
		fmt.Fprintf(&b, "Answer each question: %s\n", strings.Join(questions, " | "))
	}
	if concerns := stringSlice(req.ExtractedData["concerns"]); len(concerns) > 0 {
		fmt.Fprintf(&b, "Acknowledge the client's concerns (%s) before substance.\n", strings.Join(concerns, ", "))
	}
	b.WriteString("Do not give legal advice; keep the tone warm and precise.")

	resp, err := s.provider.Query(ctx, b.String(), llm.QueryOptions{MaxTokens: 800})
	if err != nil {
		return nil, fmt.Errorf("communication draft: %w", err)
	}

	return &DraftResult{
		AgentID:          s.AgentID(),
		AgentName:        s.Name(),
		DraftType:        draftType,
		Content:          resp.Content,
		RequiresApproval: true,
		Metadata:         map[string]interface{}{"priority": req.Priority},
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
