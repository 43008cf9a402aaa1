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

// LegalResearcher drafts research memos and court-filing groundwork.
// Research output is always a memo for attorney review, never filed work.
type LegalResearcher struct {
	provider llm.Provider
}

func NewLegalResearcher(provider llm.Provider) *LegalResearcher {
	return &LegalResearcher{provider: provider}
}

func (s *LegalResearcher) AgentID() string { return "legal_researcher" }
func (s *LegalResearcher) Name() string    { return "Legal Researcher" }

func (s *LegalResearcher) Draft(ctx context.Context, req TaskRequest) (*DraftResult, error) {
	draftType := "research_memo"
	var b strings.Builder
	if req.TaskType == "court_filing" {
		draftType = "filing_outline"
		b.WriteString("Outline the requested court filing: caption, grounds, relief sought, and supporting authority to verify.\n")
	} else {
		b.WriteString("Draft a research memo: issue, short answer, analysis, and authorities to verify.\n")
	}
	fmt.Fprintf(&b, "Question presented: %s\n", req.Description)
	if topics := stringSlice(req.ExtractedData["research_topics"]); len(topics) > 0 {
		fmt.Fprintf(&b, "Focus areas: %s\n", strings.Join(topics, ", "))
	}
	b.WriteString("Flag every citation as unverified; an attorney must confirm before reliance.")

	resp, err := s.provider.Query(ctx, b.String(), llm.QueryOptions{MaxTokens: 1200})
	if err != nil {
		return nil, fmt.Errorf("research draft: %w", err)
	}

	return &DraftResult{
		AgentID:          s.AgentID(),
		AgentName:        s.Name(),
		DraftType:        draftType,
		Content:          resp.Content,
		RequiresApproval: true,
		Metadata:         map[string]interface{}{"citations_verified": false},
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
