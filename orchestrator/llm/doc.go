// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

// Package llm provides a uniform Provider interface over completion
// backends: OpenAI, Anthropic, AWS Bedrock, and a deterministic mock.
//
// Provider selection is environment driven through FromEnv. With no
// credentials configured the mock provider is returned, which keeps the
// whole pipeline runnable offline.
package llm
