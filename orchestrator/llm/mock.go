// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	"fmt"
	"time"
)

// MockProvider returns deterministic completions without any network, for
// local development and tests. A zero-value mock echoes a summary of the
// prompt; FixedReply, Err, and Delay override that for test scenarios.
type MockProvider struct {
	FixedReply string
	Err        error
	Delay      time.Duration

	// LastMessages records the exchange from the most recent call, so
	// tests can assert on the prompt a caller built.
	LastMessages []Message
}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Name() string { return "mock" }

// Query honors ctx cancellation across the configured delay, then returns
// either the configured error, the fixed reply, or a prompt echo.
func (p *MockProvider) Query(ctx context.Context, prompt string, opts QueryOptions) (*Response, error) {
	return p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, opts)
}

// Chat echoes the last message of the exchange under the same rules as
// Query.
func (p *MockProvider) Chat(ctx context.Context, messages []Message, opts QueryOptions) (*Response, error) {
	p.LastMessages = messages
	var prompt string
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	start := time.Now()
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.Err != nil {
		return nil, p.Err
	}
	content := p.FixedReply
	if content == "" {
		snippet := prompt
		if len(snippet) > 80 {
			snippet = snippet[:80]
		}
		content = fmt.Sprintf("[mock completion] %s", snippet)
	}
	return &Response{
		Content:    content,
		Provider:   p.Name(),
		Model:      "mock",
		TokensUsed: len(prompt) / 4,
		LatencyMS:  time.Since(start).Milliseconds(),
	}, nil
}

func (p *MockProvider) IsHealthy(ctx context.Context) bool { return true }
