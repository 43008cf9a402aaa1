// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"
)

// ErrMalformedResponse reports an upstream reply that could not be parsed
// into a usable completion. Callers treat it as a provider failure, not a
// caller bug.
var ErrMalformedResponse = errors.New("malformed provider response")

// QueryOptions tunes a single completion request. Zero values select the
// provider's defaults.
type QueryOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Message is one turn of a multi-turn exchange. Role is "system", "user",
// or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is the normalized completion result across providers.
type Response struct {
	Content    string `json:"content"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
	LatencyMS  int64  `json:"latency_ms"`
}

// Provider is the uniform interface over completion backends. Query wraps
// a single prompt; Chat carries a full message exchange. Both must honor
// ctx cancellation and return an error wrapping ErrMalformedResponse when
// the upstream reply cannot be parsed. IsHealthy is a cheap liveness probe.
type Provider interface {
	Name() string
	Query(ctx context.Context, prompt string, opts QueryOptions) (*Response, error)
	Chat(ctx context.Context, messages []Message, opts QueryOptions) (*Response, error)
	IsHealthy(ctx context.Context) bool
}

// splitSystemMessages separates system-role turns from the conversational
// ones for APIs that carry the system prompt out of band. Multiple system
// turns are joined with blank lines.
func splitSystemMessages(messages []Message) (string, []Message) {
	var system []string
	chat := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		chat = append(chat, m)
	}
	return strings.Join(system, "\n\n"), chat
}

// FromEnv selects a provider from the environment: OpenAI, then Anthropic,
// then Bedrock, falling back to the deterministic mock when no credentials
// are configured. The mock keeps local development and tests fully offline.
func FromEnv() Provider {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAIProvider(key)
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return NewAnthropicProvider(key)
	}
	if region := os.Getenv("BEDROCK_REGION"); region != "" {
		if p, err := NewBedrockProvider(context.Background(), region); err == nil {
			return p
		}
	}
	return NewMockProvider()
}
