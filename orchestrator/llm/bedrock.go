// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const bedrockDefaultModel = "anthropic.claude-3-haiku-20240307-v1:0"

// BedrockProvider invokes Anthropic models through AWS Bedrock, using the
// ambient AWS credential chain.
type BedrockProvider struct {
	client *bedrockruntime.Client
	region string
}

// NewBedrockProvider loads the default AWS config for the region.
func NewBedrockProvider(ctx context.Context, region string) (*BedrockProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &BedrockProvider{
		client: bedrockruntime.NewFromConfig(cfg),
		region: region,
	}, nil
}

func (p *BedrockProvider) Name() string { return "bedrock" }

// Query invokes the model with the Anthropic messages body format.
func (p *BedrockProvider) Query(ctx context.Context, prompt string, opts QueryOptions) (*Response, error) {
	return p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, opts)
}

// Chat invokes the model with a full exchange. System-role messages move
// to the body's system field.
func (p *BedrockProvider) Chat(ctx context.Context, messages []Message, opts QueryOptions) (*Response, error) {
	model := opts.Model
	if model == "" {
		model = bedrockDefaultModel
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
		"anthropic_version": "bedrock-2023-05-31",
		"max_tokens":        maxTokens,
		"messages":          chat,
	}
	if system != "" {
		payload["system"] = system
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(model),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock invoke: %w", err)
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
	if err := json.Unmarshal(out.Body, &parsed); err != nil || len(parsed.Content) == 0 {
		return nil, fmt.Errorf("%w: bedrock", ErrMalformedResponse)
	}

	return &Response{
		Content:    parsed.Content[0].Text,
		Provider:   p.Name(),
		Model:      model,
		TokensUsed: parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
		LatencyMS:  time.Since(start).Milliseconds(),
	}, nil
}

// IsHealthy reports whether the client was constructed. Credential errors
// surface on the first Query.
func (p *BedrockProvider) IsHealthy(ctx context.Context) bool {
	return p.client != nil
}
