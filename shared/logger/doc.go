// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

/*
Package logger provides structured JSON logging for Tender components.

# Overview

The logger outputs single-line JSON to stdout so entries can be shipped to
CloudWatch, ELK, or any other aggregation system without extra parsing.

Each log entry includes:
  - Timestamp (RFC3339Nano format)
  - Log level (DEBUG, INFO, WARN, ERROR)
  - Component name (orchestrator, router, etc.)
  - Instance ID and container name (for distributed tracing)
  - Case ID (for matter-level correlation)
  - Request ID (for request correlation)
  - Custom fields

# Usage

Create a logger for your component:

	log := logger.New("orchestrator")

Log messages with case and request context:

	log.Info("CASE-2024-0117", "req-456", "Processing intake", map[string]interface{}{
	    "source_type": "email",
	    "task_count":  2,
	})

Log errors with status codes:

	log.ErrorWithCode("CASE-2024-0117", "req-456", "Specialist draft failed", 500, err, nil)

# Environment Variables

  - INSTANCE_ID: Deployment instance identifier
  - Hostname is auto-detected for the container field.

# Thread Safety

Logger instances are safe for concurrent use from multiple goroutines.
*/
package logger
