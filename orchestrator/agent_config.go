// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgentRosterConfig is the on-disk roster document. Entries override the
// compiled-in defaults per agent; agents absent from the file keep their
// defaults.
type AgentRosterConfig struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Metadata   RosterMetadata `yaml:"metadata"`
	Agents     []RosterEntry  `yaml:"agents"`
}

type RosterMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// RosterEntry overrides one agent's tunables. Pointer fields distinguish
// "not set" from zero values.
type RosterEntry struct {
	AgentID               string   `yaml:"agent_id"`
	Name                  string   `yaml:"name,omitempty"`
	Description           string   `yaml:"description,omitempty"`
	Specialties           []string `yaml:"specialties,omitempty"`
	MaxConcurrentTasks    *int     `yaml:"max_concurrent_tasks,omitempty"`
	AverageCompletionTime *int     `yaml:"average_completion_time_seconds,omitempty"`
	SuccessRate           *float64 `yaml:"success_rate,omitempty"`
	Enabled               *bool    `yaml:"enabled,omitempty"`
}

// LoadAgentRoster reads a roster file and applies it over the defaults.
// An empty path returns the defaults unchanged.
func LoadAgentRoster(path string) ([]AgentProfile, error) {
	roster := DefaultAgentRoster()
	if path == "" {
		return roster, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var cfg AgentRosterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	if cfg.Kind != "" && cfg.Kind != "AgentRoster" {
		return nil, fmt.Errorf("unexpected kind %q, want AgentRoster", cfg.Kind)
	}

	byID := make(map[AgentType]*AgentProfile, len(roster))
	for i := range roster {
		byID[roster[i].AgentID] = &roster[i]
	}

	for _, entry := range cfg.Agents {
		id, err := ParseAgentType(entry.AgentID)
		if err != nil {
			return nil, fmt.Errorf("roster entry: %w", err)
		}
		p := byID[id]
		if entry.Name != "" {
			p.Name = entry.Name
		}
		if entry.Description != "" {
			p.Description = entry.Description
		}
		if len(entry.Specialties) > 0 {
			p.Specialties = entry.Specialties
		}
		if entry.MaxConcurrentTasks != nil {
			if *entry.MaxConcurrentTasks <= 0 {
				return nil, fmt.Errorf("agent %s: max_concurrent_tasks must be positive", id)
			}
			p.MaxConcurrentTasks = *entry.MaxConcurrentTasks
		}
		if entry.AverageCompletionTime != nil {
			p.AverageCompletionTime = *entry.AverageCompletionTime
		}
		if entry.SuccessRate != nil {
			if *entry.SuccessRate <= 0 || *entry.SuccessRate > 1 {
				return nil, fmt.Errorf("agent %s: success_rate must be in (0, 1]", id)
			}
			p.SuccessRate = *entry.SuccessRate
		}
		if entry.Enabled != nil {
			p.Enabled = *entry.Enabled
		}
	}

	return roster, nil
}

// LoadAgentRosterFromEnv loads the roster named by AGENT_CONFIG_FILE,
// falling back to defaults when the variable is unset.
func LoadAgentRosterFromEnv() ([]AgentProfile, error) {
	return LoadAgentRoster(os.Getenv("AGENT_CONFIG_FILE"))
}
