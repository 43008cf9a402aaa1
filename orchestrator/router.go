// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"fmt"
	"math"
	"sync"
	"time"

	"tender/platform/shared/logger"
)

// routingMethodRules tags decisions produced by the static routing table.
const routingMethodRules = "rule_based"

// routingRules maps each task type to its primary specialist. Task types
// missing from this table fall through to the communication specialist.
var routingRules = map[TaskType]AgentType{
	TaskRetrieveRecords:      AgentRecordsWrangler,
	TaskClientCommunication:  AgentCommunicationGuru,
	TaskDeadlineReminder:     AgentCommunicationGuru,
	TaskFollowUp:             AgentCommunicationGuru,
	TaskDraftLetter:          AgentCommunicationGuru,
	TaskLegalResearch:        AgentLegalResearcher,
	TaskCourtFiling:          AgentLegalResearcher,
	TaskScheduleAppointment:  AgentVoiceScheduler,
	TaskDocumentOrganization: AgentEvidenceSorter,
}

// TaskRouter assigns detected tasks to specialists, balancing primary
// routing rules against each agent's live load. All mutable state lives on
// the instance behind one mutex, so routers are safe for concurrent use
// and independent per orchestrator.
type TaskRouter struct {
	mu      sync.Mutex
	agents  map[AgentType]*AgentProfile
	history []RoutingRecord
	log     *logger.Logger
}

// NewTaskRouter builds a router over the given roster. A nil or empty
// roster gets the compiled-in defaults.
func NewTaskRouter(roster []AgentProfile) *TaskRouter {
	if len(roster) == 0 {
		roster = DefaultAgentRoster()
	}
	agents := make(map[AgentType]*AgentProfile, len(roster))
	for i := range roster {
		a := roster[i]
		agents[a.AgentID] = &a
	}
	return &TaskRouter{
		agents: agents,
		log:    logger.New("task-router"),
	}
}

// DefaultAgentRoster returns the built-in five-specialist roster with
// zero load.
func DefaultAgentRoster() []AgentProfile {
	return []AgentProfile{
		{
			AgentID:               AgentRecordsWrangler,
			Name:                  "Records Wrangler",
			Description:           "Retrieves medical, billing, and employment records from providers",
			Specialties:           []string{"medical records", "billing records", "provider requests"},
			MaxConcurrentTasks:    5,
			AverageCompletionTime: 180,
			SuccessRate:           0.94,
			Enabled:               true,
		},
		{
			AgentID:               AgentCommunicationGuru,
			Name:                  "Communication Guru",
			Description:           "Drafts client communications, letters, reminders, and follow-ups",
			Specialties:           []string{"client updates", "demand letters", "follow-ups", "reminders"},
			MaxConcurrentTasks:    5,
			AverageCompletionTime: 45,
			SuccessRate:           0.98,
			Enabled:               true,
		},
		{
			AgentID:               AgentLegalResearcher,
			Name:                  "Legal Researcher",
			Description:           "Researches case law, statutes, and prepares filing groundwork",
			Specialties:           []string{"case law", "statutes of limitations", "court filings"},
			MaxConcurrentTasks:    3,
			AverageCompletionTime: 320,
			SuccessRate:           0.91,
			Enabled:               true,
		},
		{
			AgentID:               AgentVoiceScheduler,
			Name:                  "Voice Scheduler",
			Description:           "Schedules appointments, depositions, and consultations",
			Specialties:           []string{"appointments", "depositions", "calendar management"},
			MaxConcurrentTasks:    5,
			AverageCompletionTime: 90,
			SuccessRate:           0.96,
			Enabled:               true,
		},
		{
			AgentID:               AgentEvidenceSorter,
			Name:                  "Evidence Sorter",
			Description:           "Organizes and categorizes case documents, photos, and evidence",
			Specialties:           []string{"document organization", "evidence tagging", "exhibit prep"},
			MaxConcurrentTasks:    5,
			AverageCompletionTime: 25,
			SuccessRate:           0.99,
			Enabled:               true,
		},
	}
}

// primaryFor resolves the routing table, falling back to the communication
// specialist for task types the table does not know.
func primaryFor(tt TaskType) AgentType {
	if agent, ok := routingRules[tt]; ok {
		return agent
	}
	return AgentCommunicationGuru
}

// Route assigns one task to a specialist. With considerLoad false the
// primary agent is assigned unconditionally. With it true, a disabled or
// saturated primary is replaced by the least-loaded enabled agent with
// spare capacity, except that urgent and high priority tasks deliberately
// overload the primary. Routing increments the chosen agent's load and
// appends to the history before returning.
func (r *TaskRouter) Route(task Task, considerLoad bool) RoutingDecision {
	r.mu.Lock()
	defer r.mu.Unlock()

	primaryID := primaryFor(task.Type)
	primary := r.agents[primaryID]

	chosen := primary
	reasoning := fmt.Sprintf("primary specialist for %s", task.Type)
	isPrimary := true

	if primary == nil {
		chosen = r.fallbackLocked(primaryID)
		reasoning = fmt.Sprintf("%s not in roster, rerouted to least-loaded specialist", primaryID)
		isPrimary = false
	} else if considerLoad {
		switch {
		case !primary.Enabled:
			chosen = r.fallbackLocked(primaryID)
			reasoning = fmt.Sprintf("%s disabled, rerouted to least-loaded specialist", primaryID)
			isPrimary = chosen == primary
		case primary.CurrentLoad < primary.MaxConcurrentTasks:
			// primary has capacity
		case task.Priority == PriorityUrgent || task.Priority == PriorityHigh:
			reasoning = fmt.Sprintf("%s at capacity, overloading for %s priority", primaryID, task.Priority)
		default:
			chosen = r.fallbackLocked(primaryID)
			if chosen != primary {
				reasoning = fmt.Sprintf("%s at capacity, rerouted to least-loaded specialist", primaryID)
				isPrimary = false
			} else {
				reasoning = fmt.Sprintf("%s at capacity and no fallback available", primaryID)
			}
		}
	}

	confidence := 0.95
	if !isPrimary {
		confidence = 0.8
	}
	confidence *= chosen.SuccessRate
	if chosen.MaxConcurrentTasks > 0 &&
		float64(chosen.CurrentLoad)/float64(chosen.MaxConcurrentTasks) > 0.8 {
		confidence *= 0.9
	}
	confidence = math.Round(confidence*100) / 100

	chosen.CurrentLoad++

	decision := RoutingDecision{
		AgentID:                 chosen.AgentID,
		AgentName:               chosen.Name,
		Confidence:              confidence,
		Reasoning:               reasoning,
		EstimatedCompletionTime: chosen.AverageCompletionTime,
		AgentSpecialties:        append([]string(nil), chosen.Specialties...),
		RoutedAt:                time.Now().UTC(),
		RoutingMethod:           routingMethodRules,
	}

	r.history = append(r.history, RoutingRecord{
		TaskID:     task.ID,
		TaskType:   task.Type,
		Priority:   task.Priority,
		AgentID:    chosen.AgentID,
		Confidence: confidence,
		Timestamp:  decision.RoutedAt,
	})

	r.log.Info("", task.ID, fmt.Sprintf("routed %s task to %s", task.Type, chosen.AgentID), map[string]interface{}{
		"task_id":    task.ID,
		"agent_id":   string(chosen.AgentID),
		"confidence": confidence,
		"load":       chosen.CurrentLoad,
	})

	return decision
}

// RouteToAgent assigns a task to an explicitly chosen agent, recording the
// decision with the given routing method. It fails if the agent is unknown
// or disabled; callers fall back to Route on failure.
func (r *TaskRouter) RouteToAgent(task Task, agentID AgentType, method string) (RoutingDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chosen, ok := r.agents[agentID]
	if !ok {
		return RoutingDecision{}, fmt.Errorf("unknown agent: %q", agentID)
	}
	if !chosen.Enabled {
		return RoutingDecision{}, fmt.Errorf("agent disabled: %q", agentID)
	}

	confidence := 0.95 * chosen.SuccessRate
	if chosen.MaxConcurrentTasks > 0 &&
		float64(chosen.CurrentLoad)/float64(chosen.MaxConcurrentTasks) > 0.8 {
		confidence *= 0.9
	}
	confidence = math.Round(confidence*100) / 100

	chosen.CurrentLoad++

	decision := RoutingDecision{
		AgentID:                 chosen.AgentID,
		AgentName:               chosen.Name,
		Confidence:              confidence,
		Reasoning:               fmt.Sprintf("assigned by %s routing", method),
		EstimatedCompletionTime: chosen.AverageCompletionTime,
		AgentSpecialties:        append([]string(nil), chosen.Specialties...),
		RoutedAt:                time.Now().UTC(),
		RoutingMethod:           method,
	}
	r.history = append(r.history, RoutingRecord{
		TaskID:     task.ID,
		TaskType:   task.Type,
		Priority:   task.Priority,
		AgentID:    chosen.AgentID,
		Confidence: confidence,
		Timestamp:  decision.RoutedAt,
	})
	return decision, nil
}

// fallbackLocked picks the enabled agent with the lowest load that still
// has spare capacity, excluding the primary. Ties break on the stable
// enumeration order of AllAgentTypes. With no candidate, the primary is
// returned anyway; if the roster lacks the primary too, any agent wins
// over refusing to route. Caller holds the lock.
func (r *TaskRouter) fallbackLocked(exclude AgentType) *AgentProfile {
	var best *AgentProfile
	for _, id := range AllAgentTypes {
		if id == exclude {
			continue
		}
		a := r.agents[id]
		if a == nil || !a.Enabled || a.CurrentLoad >= a.MaxConcurrentTasks {
			continue
		}
		if best == nil || a.CurrentLoad < best.CurrentLoad {
			best = a
		}
	}
	if best != nil {
		return best
	}
	if a := r.agents[exclude]; a != nil {
		return a
	}
	// roster is missing the primary entirely; take any agent rather than
	// refuse to route
	for _, id := range AllAgentTypes {
		if a := r.agents[id]; a != nil {
			return a
		}
	}
	for _, a := range r.agents {
		return a
	}
	return nil
}

// RouteAll routes tasks sequentially, so each decision observes the load
// increments of the decisions before it.
func (r *TaskRouter) RouteAll(tasks []Task, considerLoad bool) []RoutingDecision {
	decisions := make([]RoutingDecision, 0, len(tasks))
	for _, t := range tasks {
		decisions = append(decisions, r.Route(t, considerLoad))
	}
	return decisions
}

// CompleteTask releases one unit of load from an agent. Load never goes
// below zero.
func (r *TaskRouter) CompleteTask(agentID AgentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agents[agentID]
	if !ok {
		return fmt.Errorf("unknown agent: %q", agentID)
	}
	if a.CurrentLoad > 0 {
		a.CurrentLoad--
	}
	return nil
}

// SetAgentEnabled toggles an agent in or out of the routable pool.
func (r *TaskRouter) SetAgentEnabled(agentID AgentType, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agents[agentID]
	if !ok {
		return fmt.Errorf("unknown agent: %q", agentID)
	}
	a.Enabled = enabled
	return nil
}

// AgentStatus returns a snapshot of one agent.
func (r *TaskRouter) AgentStatus(agentID AgentType) (AgentStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agents[agentID]
	if !ok {
		return AgentStatus{}, fmt.Errorf("unknown agent: %q", agentID)
	}
	return statusOf(a), nil
}

// AllAgentStatuses returns snapshots for the whole roster in enumeration
// order.
func (r *TaskRouter) AllAgentStatuses() []AgentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AgentStatus, 0, len(r.agents))
	for _, id := range AllAgentTypes {
		if a, ok := r.agents[id]; ok {
			out = append(out, statusOf(a))
		}
	}
	return out
}

func statusOf(a *AgentProfile) AgentStatus {
	pct := 0.0
	if a.MaxConcurrentTasks > 0 {
		pct = math.Round(float64(a.CurrentLoad)/float64(a.MaxConcurrentTasks)*1000) / 10
	}
	return AgentStatus{
		AgentID:            a.AgentID,
		Name:               a.Name,
		CurrentLoad:        a.CurrentLoad,
		MaxConcurrentTasks: a.MaxConcurrentTasks,
		CapacityPercentage: pct,
		Enabled:            a.Enabled,
		SuccessRate:        a.SuccessRate,
	}
}

// Stats aggregates the routing history.
func (r *TaskRouter) Stats() RoutingStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := RoutingStats{
		TotalRouted: len(r.history),
		ByAgent:     make(map[AgentType]int),
		ByTaskType:  make(map[TaskType]int),
	}
	var sum float64
	for _, rec := range r.history {
		stats.ByAgent[rec.AgentID]++
		stats.ByTaskType[rec.TaskType]++
		sum += rec.Confidence
	}
	if stats.TotalRouted > 0 {
		stats.AverageConfidence = math.Round(sum/float64(stats.TotalRouted)*100) / 100
	}
	return stats
}

// History returns a copy of the routing history, newest last.
func (r *TaskRouter) History() []RoutingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RoutingRecord(nil), r.history...)
}

// ResetAgentLoad zeroes one agent's load counter. Routing history is
// untouched.
func (r *TaskRouter) ResetAgentLoad(agentID AgentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agents[agentID]
	if !ok {
		return fmt.Errorf("unknown agent: %q", agentID)
	}
	a.CurrentLoad = 0
	return nil
}

// ResetLoads zeroes every agent's load counter, leaving the routing
// history intact.
func (r *TaskRouter) ResetLoads() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.agents {
		a.CurrentLoad = 0
	}
}

// Reset zeroes every agent's load and clears the history. Intended for
// tests and operational resets, not normal processing.
func (r *TaskRouter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.agents {
		a.CurrentLoad = 0
	}
	r.history = nil
	r.log.Info("", "", "router state reset", nil)
}
