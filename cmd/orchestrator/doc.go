// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

/*
Command orchestrator runs the Tender intake triage service.

The service accepts raw client input (email, SMS, portal message, call
transcript, voicemail, fax, or manual entry), detects the actionable work
inside it, routes each task to a specialist drafting agent, and parks the
resulting drafts behind a human approval gate. Nothing is ever sent, filed,
or executed by this service.

# Usage

	orchestrator

# Environment Variables

Optional:
  - PORT: HTTP server port (default: 8080)
  - AGENT_CONFIG_FILE: YAML agent roster overrides
  - OPENAI_API_KEY: OpenAI API key for draft generation
  - ANTHROPIC_API_KEY: Anthropic API key for draft generation
  - BEDROCK_REGION: AWS Bedrock region for draft generation
  - AI_ROUTING: "true" to enable model-assisted routing
  - REDIS_URL: Redis backend for intake rate limiting
  - RATE_LIMIT: max submissions per caller per minute (default: 60)

Without provider credentials the service runs fully offline against a
deterministic mock provider.

# Endpoints

	GET  /health
	GET  /metrics
	GET  /prometheus
	POST /api/v1/intake/process
	GET  /api/v1/intake/history
	GET  /api/v1/intake/results/{id}
	POST /api/v1/router/route
	GET  /api/v1/router/agents
	GET  /api/v1/router/agents/{id}
	POST /api/v1/router/agents/{id}/complete
	PUT  /api/v1/router/agents/{id}/enabled
	POST /api/v1/router/agents/{id}/reset
	GET  /api/v1/router/stats
	POST /api/v1/router/reset
*/
package main
