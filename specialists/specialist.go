// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package specialists

import (
	"context"
	"time"
)

// TaskRequest is the neutral view of a routed task handed to a specialist.
// It carries strings rather than orchestrator types so specialists stay
// decoupled from the pipeline's enums.
type TaskRequest struct {
	TaskID        string
	TaskType      string
	Priority      string
	Description   string
	CaseID        string
	ExtractedData map[string]interface{}
}

// DraftResult is a specialist's proposed work product. Nothing in a draft
// is executed or sent; drafts flow into the approval queue.
type DraftResult struct {
	AgentID          string                 `json:"agent_id"`
	AgentName        string                 `json:"agent_name"`
	DraftType        string                 `json:"draft_type"`
	Content          string                 `json:"content"`
	RequiresApproval bool                   `json:"requires_approval"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

// Specialist is the uniform contract every drafting agent implements.
// Draft must honor ctx and return an error rather than a partial result.
type Specialist interface {
	AgentID() string
	Name() string
	Draft(ctx context.Context, req TaskRequest) (*DraftResult, error)
}
