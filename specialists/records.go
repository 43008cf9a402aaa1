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

// RecordsWrangler drafts provider-facing records requests: medical records,
// billing statements, and employment files.
type RecordsWrangler struct {
	provider llm.Provider
}

func NewRecordsWrangler(provider llm.Provider) *RecordsWrangler {
	return &RecordsWrangler{provider: provider}
}

func (s *RecordsWrangler) AgentID() string { return "records_wrangler" }
func (s *RecordsWrangler) Name() string    { return "Records Wrangler" }

// Draft produces a records-request letter for each provider mentioned in
// the task, or a generic request when none were extracted.
func (s *RecordsWrangler) Draft(ctx context.Context, req TaskRequest) (*DraftResult, error) {
	providers := stringSlice(req.ExtractedData["providers"])
	terms := stringSlice(req.ExtractedData["medical_terms"])

	var b strings.Builder
	b.WriteString("Draft a HIPAA-compliant records request on behalf of our client.\n")
	fmt.Fprintf(&b, "Request context: %s\n", req.Description)
	if len(providers) > 0 {
		fmt.Fprintf(&b, "Providers to contact: %s\n", strings.Join(providers, "; "))
	} else {
		b.WriteString("No specific provider named; draft a generic request awaiting provider details.\n")
	}
	if len(terms) > 0 {
		fmt.Fprintf(&b, "Treatment mentioned: %s\n", strings.Join(terms, ", "))
	}
	b.WriteString("Include: patient authorization reference, date range, and delivery instructions.")

	resp, err := s.provider.Query(ctx, b.String(), llm.QueryOptions{MaxTokens: 800})
	if err != nil {
		return nil, fmt.Errorf("records draft: %w", err)
	}

	meta := map[string]interface{}{"provider_count": len(providers)}
	if len(providers) > 0 {
		meta["providers"] = providers
	}
	return &DraftResult{
		AgentID:          s.AgentID(),
		AgentName:        s.Name(),
		DraftType:        "records_request",
		Content:          resp.Content,
		RequiresApproval: true,
		Metadata:         meta,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// stringSlice coerces extracted-data values, which arrive as []string or
// []interface{} depending on the decode path.
func stringSlice(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
