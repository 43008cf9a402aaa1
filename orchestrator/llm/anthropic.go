// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	anthropicEndpoint     = "https://api.anthropic.com/v1/messages"
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-3-5-haiku-20241022"
)

// AnthropicProvider talks to the Anthropic messages API.
type AnthropicProvider struct {
	apiKey string
	client *http.Client
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

// Query sends one messages request and normalizes the reply.
func (p *AnthropicProvider) Query(ctx context.Context, prompt string, opts QueryOptions) (*Response, error) {
	return p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, opts)
}

// Chat sends a full exchange to the messages API. System-role messages
// move to the top-level system field the API expects.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []Message, opts QueryOptions) (*Response, error) {
	model := opts.Model
	if model == "" {
		model = anthropicDefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	system, chat := splitSystemMessages(messages)
	payload := map[string]interface{}{
		"model":      model,
		"max_tokens": maxTokens,
		"messages":   chat,
	}
	if system != "" {
		payload["system"] = system
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Content) == 0 {
		return nil, fmt.Errorf("%w: anthropic", ErrMalformedResponse)
	}

	return &Response{
		Content:    parsed.Content[0].Text,
		Provider:   p.Name(),
		Model:      model,
		TokensUsed: parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
		LatencyMS:  time.Since(start).Milliseconds(),
	}, nil
}

// IsHealthy reports whether credentials are present. The messages API has
// no cheap unauthenticated probe, so this checks configuration only.
func (p *AnthropicProvider) IsHealthy(ctx context.Context) bool {
	return p.apiKey != ""
}
