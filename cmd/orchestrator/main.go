// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the Tender intake orchestrator.
//
// The orchestrator triages raw client input for legal matters:
// - Normalizes channel noise out of emails, texts, and call transcripts
// - Labels PII and PHI, masking social security numbers
// - Detects actionable tasks and routes them to specialist agents
// - Collects specialist drafts behind a human approval gate
//
// Usage:
//
//	./orchestrator
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8080)
//	AGENT_CONFIG_FILE - YAML agent roster overrides (optional)
//	OPENAI_API_KEY - OpenAI API key (optional)
//	ANTHROPIC_API_KEY - Anthropic API key (optional)
//	BEDROCK_REGION - AWS Bedrock region (optional)
//	AI_ROUTING - "true" to enable model-assisted routing (optional)
//	REDIS_URL - Redis backend for rate limiting (optional)
package main

import (
	"tender/platform/orchestrator"
)

func main() {
	orchestrator.Run()
}
