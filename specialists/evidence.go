// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package specialists

import (
	"context"
	"fmt"
	"time"

	"tender/platform/orchestrator/llm"
)

// EvidenceSorter drafts an organization plan for submitted documents:
// proposed categories, naming, and exhibit ordering.
type EvidenceSorter struct {
	provider llm.Provider
}

func NewEvidenceSorter(provider llm.Provider) *EvidenceSorter {
	return &EvidenceSorter{provider: provider}
}

func (s *EvidenceSorter) AgentID() string { return "evidence_sorter" }
func (s *EvidenceSorter) Name() string    { return "Evidence Sorter" }

func (s *EvidenceSorter) Draft(ctx context.Context, req TaskRequest) (*DraftResult, error) {
	prompt := fmt.Sprintf(
		"Propose an organization plan for the documents described below: "+
			"categories, file naming convention, and exhibit ordering. "+
			"Do not move or rename anything; this is a plan for paralegal review.\nDocuments: %s",
		req.Description,
	)

	resp, err := s.provider.Query(ctx, prompt, llm.QueryOptions{MaxTokens: 600})
	if err != nil {
		return nil, fmt.Errorf("evidence plan draft: %w", err)
	}

	return &DraftResult{
		AgentID:          s.AgentID(),
		AgentName:        s.Name(),
		DraftType:        "organization_plan",
		Content:          resp.Content,
		RequiresApproval: true,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
