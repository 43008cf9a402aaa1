// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator implements the intake triage pipeline for legal
// matters: raw client input in, reviewed-and-gated proposed actions out.
//
// One ProcessInput call runs the stages in order:
//
//  1. Normalize: strip channel noise (email headers, reply chains,
//     transcript speaker labels) and collapse whitespace.
//  2. Extract: pull names, dates, medical and legal vocabulary, contact
//     details, case numbers, and monetary amounts.
//  3. Label: categorize PII and PHI and record redactable spans. Social
//     security numbers are only ever stored masked.
//  4. Detect: match the closed task-type set against the text, at most
//     one task per type per input.
//  5. Route: assign each task to one of five specialists, balancing the
//     static routing rules against live agent load. Urgent and high
//     priority tasks may deliberately overload their primary specialist.
//  6. Draft: each specialist produces a proposed work product.
//  7. Gate: the batch is marked for human approval; nothing is sent,
//     filed, or executed by this service.
//
// All pipeline state is owned by the Orchestrator instance. The HTTP
// surface lives on Server; Run wires both from environment configuration.
package orchestrator
