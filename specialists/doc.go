// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

// Package specialists implements the five drafting agents that turn routed
// intake tasks into proposed work products: Records Wrangler,
// Communication Guru, Legal Researcher, Voice Scheduler, and Evidence
// Sorter.
//
// Specialists only draft. Nothing they produce is sent, filed, or executed;
// every DraftResult flows into the approval queue, and all but internal
// calendar reminders are marked as requiring approval.
package specialists
