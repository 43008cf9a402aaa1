// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tender/platform/orchestrator/llm"
	"tender/platform/shared/logger"
)

// routingMethodAI tags decisions produced by the model-assisted path.
const routingMethodAI = "ai_assisted"

// defaultAITimeout bounds the model call so routing latency stays
// predictable even when the provider hangs.
const defaultAITimeout = 3 * time.Second

// AIRouter asks a completion model to pick the specialist, validates the
// proposal against the closed agent set, and falls back silently to the
// rule-based router whenever the model fails, times out, or proposes an
// agent that does not exist. Routing never fails because the model did.
type AIRouter struct {
	rules    *TaskRouter
	provider llm.Provider
	timeout  time.Duration
	log      *logger.Logger
}

// NewAIRouter wraps a rule-based router with model-assisted selection.
// A zero timeout gets the default.
func NewAIRouter(rules *TaskRouter, provider llm.Provider, timeout time.Duration) *AIRouter {
	if timeout <= 0 {
		timeout = defaultAITimeout
	}
	return &AIRouter{
		rules:    rules,
		provider: provider,
		timeout:  timeout,
		log:      logger.New("ai-router"),
	}
}

// Route proposes an agent via the model and assigns it when valid. Every
// failure path lands in the rule-based router, so load accounting and
// history behave identically on both paths.
func (r *AIRouter) Route(ctx context.Context, task Task, considerLoad bool) RoutingDecision {
	agentID, err := r.propose(ctx, task)
	if err != nil {
		r.log.Warn("", task.ID, "ai routing unavailable, using rules", map[string]interface{}{
			"error": err.Error(),
		})
		return r.rules.Route(task, considerLoad)
	}

	decision, err := r.rules.RouteToAgent(task, agentID, routingMethodAI)
	if err != nil {
		r.log.Warn("", task.ID, "ai proposal rejected, using rules", map[string]interface{}{
			"proposed": string(agentID),
			"error":    err.Error(),
		})
		return r.rules.Route(task, considerLoad)
	}
	return decision
}

// RouteAll routes tasks sequentially through the AI-assisted path.
func (r *AIRouter) RouteAll(ctx context.Context, tasks []Task, considerLoad bool) []RoutingDecision {
	decisions := make([]RoutingDecision, 0, len(tasks))
	for _, t := range tasks {
		decisions = append(decisions, r.Route(ctx, t, considerLoad))
	}
	return decisions
}

// propose asks the model for an agent id within the routing timeout.
func (r *AIRouter) propose(ctx context.Context, task Task) (AgentType, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var b strings.Builder
	b.WriteString("Pick exactly one specialist for the task below. Reply with only the agent id.\nAgents:\n")
	for _, id := range AllAgentTypes {
		fmt.Fprintf(&b, "- %s\n", id)
	}

	resp, err := r.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: b.String()},
		{Role: "user", Content: fmt.Sprintf("Task type: %s\nPriority: %s\nDescription: %s", task.Type, task.Priority, task.Description)},
	}, llm.QueryOptions{MaxTokens: 16, Timeout: r.timeout})
	if err != nil {
		return "", fmt.Errorf("routing query: %w", err)
	}
	return parseAgentProposal(resp.Content)
}

// parseAgentProposal extracts an agent id from free-form model output,
// tolerating surrounding prose but rejecting anything outside the roster.
func parseAgentProposal(content string) (AgentType, error) {
	cleaned := strings.ToLower(strings.TrimSpace(content))
	if at, err := ParseAgentType(cleaned); err == nil {
		return at, nil
	}
	for _, id := range AllAgentTypes {
		if strings.Contains(cleaned, string(id)) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no valid agent in proposal: %q", content)
}
