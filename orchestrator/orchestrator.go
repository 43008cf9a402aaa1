// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"tender/platform/orchestrator/llm"
	"tender/platform/shared/logger"
	"tender/platform/specialists"
)

// approvalGatedTypes are the task types whose drafts always gate the batch
// on human approval, regardless of anything else in the input.
var approvalGatedTypes = map[TaskType]bool{
	TaskClientCommunication: true,
	TaskDraftLetter:         true,
	TaskCourtFiling:         true,
}

// historyCap bounds the in-memory processing history.
const historyCap = 1000

// ProcessRequest is one raw intake input.
type ProcessRequest struct {
	RawText     string                 `json:"raw_text"`
	SourceType  string                 `json:"source_type"`
	CaseID      string                 `json:"case_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Attachments []AttachmentMeta       `json:"attachments,omitempty"`
}

// Orchestrator runs the intake pipeline: normalize, extract, label,
// detect, route, draft, gate. All state is instance-owned; two
// orchestrators never share routing or history state.
type Orchestrator struct {
	normalizer *Normalizer
	extractor  *EntityExtractor
	labeler    *PIILabeler
	detector   *TaskDetector
	router     *TaskRouter
	aiRouter   *AIRouter
	roster     map[AgentType]specialists.Specialist
	metrics    *Metrics
	log        *logger.Logger

	mu      sync.Mutex
	history []ProcessingSummary
	results map[string]*ProcessingResult
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithAIRouting enables model-assisted routing through the given provider.
func WithAIRouting(provider llm.Provider, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.aiRouter = NewAIRouter(o.router, provider, timeout)
	}
}

// WithMetrics installs a metrics bundle registered elsewhere.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New builds an orchestrator over the given agent roster and draft
// provider. A nil roster gets the compiled-in defaults; the provider is
// shared by all five specialists.
func New(roster []AgentProfile, provider llm.Provider, opts ...Option) *Orchestrator {
	router := NewTaskRouter(roster)
	o := &Orchestrator{
		normalizer: NewNormalizer(),
		extractor:  NewEntityExtractor(),
		labeler:    NewPIILabeler(),
		detector:   NewTaskDetector(),
		router:     router,
		roster: map[AgentType]specialists.Specialist{
			AgentRecordsWrangler:   specialists.NewRecordsWrangler(provider),
			AgentCommunicationGuru: specialists.NewCommunicationGuru(provider),
			AgentLegalResearcher:   specialists.NewLegalResearcher(provider),
			AgentVoiceScheduler:    specialists.NewVoiceScheduler(provider),
			AgentEvidenceSorter:    specialists.NewEvidenceSorter(provider),
		},
		log:     logger.New("orchestrator"),
		results: make(map[string]*ProcessingResult),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(prometheus.NewRegistry())
	}
	return o
}

// Router exposes the underlying task router for status and stats APIs.
func (o *Orchestrator) Router() *TaskRouter { return o.router }

// ProcessInput runs the full pipeline on one raw input. Empty input is
// valid and produces a result with no tasks and no approval requirement.
// Specialist failures are recorded per task and never fail the batch.
func (o *Orchestrator) ProcessInput(ctx context.Context, req ProcessRequest) (*ProcessingResult, error) {
	source, err := ParseSourceType(req.SourceType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	processingID := uuid.New().String()

	normalized := o.normalizer.Normalize(req.RawText, source)
	entities := o.extractor.Extract(normalized)
	report := o.labeler.Label(normalized, entities)
	tasks := o.detector.Detect(normalized, source, entities)

	decisions := o.routeTasks(ctx, tasks)
	responses := o.dispatch(ctx, req.CaseID, tasks, decisions)
	actions := buildProposedActions(tasks, decisions, responses)

	result := &ProcessingResult{
		ProcessingID: processingID,
		CaseID:       req.CaseID,
		SourceType:   source,
		ProcessedAt:  time.Now().UTC(),
		InputSummary: InputSummary{
			RawLength:        len(req.RawText),
			NormalizedLength: len(normalized),
			HasAttachments:   len(req.Attachments) > 0,
			AttachmentCount:  len(req.Attachments),
		},
		NormalizedText:      normalized,
		ExtractedEntities:   entities,
		PIIPHILabels:        report,
		DetectedTasks:       tasks,
		RoutingDecisions:    decisions,
		SpecialistResponses: responses,
		ApprovalRequired:    approvalFor(tasks),
		ProposedActions:     actions,
		Metadata:            req.Metadata,
		Attachments:         req.Attachments,
	}

	o.record(result)
	o.observe(result, start)

	o.log.InfoWithDuration(req.CaseID, processingID, "intake processed",
		float64(time.Since(start).Milliseconds()), map[string]interface{}{
			"source_type":    string(source),
			"tasks_detected": len(tasks),
			"approval":       string(result.ApprovalRequired),
		})

	return result, nil
}

// routeTasks uses the AI-assisted path when configured, otherwise the
// rule-based router. Routing is sequential so each decision sees the load
// effects of the ones before it.
func (o *Orchestrator) routeTasks(ctx context.Context, tasks []Task) []RoutingDecision {
	if o.aiRouter != nil {
		return o.aiRouter.RouteAll(ctx, tasks, true)
	}
	return o.router.RouteAll(tasks, true)
}

// dispatch hands each routed task to its specialist and releases the
// routing load when the draft completes, success or not.
func (o *Orchestrator) dispatch(ctx context.Context, caseID string, tasks []Task, decisions []RoutingDecision) []SpecialistResponse {
	responses := make([]SpecialistResponse, 0, len(tasks))
	for i, task := range tasks {
		decision := decisions[i]
		resp := SpecialistResponse{
			TaskID:    task.ID,
			AgentID:   decision.AgentID,
			AgentName: decision.AgentName,
		}

		specialist, ok := o.roster[decision.AgentID]
		if !ok {
			resp.Status = "error"
			resp.Error = fmt.Sprintf("no specialist registered for agent %q", decision.AgentID)
		} else {
			draft, err := specialist.Draft(ctx, specialists.TaskRequest{
				TaskID:        task.ID,
				TaskType:      string(task.Type),
				Priority:      string(task.Priority),
				Description:   task.Description,
				CaseID:        caseID,
				ExtractedData: task.ExtractedData,
			})
			if err != nil {
				resp.Status = "error"
				resp.Error = err.Error()
				o.metrics.SpecialistFailures.WithLabelValues(string(decision.AgentID)).Inc()
				o.log.ErrorWithCode(caseID, task.ID, "specialist draft failed", 0, err, map[string]interface{}{
					"agent_id": string(decision.AgentID),
				})
			} else {
				resp.Status = "success"
				resp.Response = draft
				o.metrics.SpecialistDrafts.WithLabelValues(string(decision.AgentID)).Inc()
			}
		}

		if err := o.router.CompleteTask(decision.AgentID); err != nil {
			o.log.Warn(caseID, task.ID, "load release failed", map[string]interface{}{
				"agent_id": string(decision.AgentID),
			})
		}
		responses = append(responses, resp)
	}
	return responses
}

// approvalFor applies the approval ladder. An input with no tasks needs no
// approval; any input with at least one task gates on human review, with
// the gated task types and urgent priority making that explicit in order.
func approvalFor(tasks []Task) ApprovalStatus {
	for _, t := range tasks {
		if approvalGatedTypes[t.Type] {
			return ApprovalPending
		}
		if _, err := ParseTaskType(string(t.Type)); err != nil {
			return ApprovalPending
		}
	}
	for _, t := range tasks {
		if t.Priority == PriorityUrgent {
			return ApprovalPending
		}
	}
	if len(tasks) == 0 {
		return ApprovalNotRequired
	}
	return ApprovalPending
}

// buildProposedActions pairs each task with its routing and draft. Every
// proposed action starts pending; approval state changes happen outside
// the pipeline.
func buildProposedActions(tasks []Task, decisions []RoutingDecision, responses []SpecialistResponse) []ProposedAction {
	actions := make([]ProposedAction, 0, len(tasks))
	for i, task := range tasks {
		action := ProposedAction{
			ActionID:      uuid.New().String(),
			TaskID:        task.ID,
			ActionType:    task.Type,
			AssignedAgent: string(decisions[i].AgentID),
			Confidence:    decisions[i].Confidence,
			Status:        ApprovalPending,
			ApprovalNote:  "awaiting attorney review",
		}
		if responses[i].Status == "success" {
			action.Response = responses[i].Response
		} else {
			action.ApprovalNote = "draft unavailable: " + responses[i].Error
		}
		actions = append(actions, action)
	}
	return actions
}

// record stores the full result and appends the bounded history entry.
func (o *Orchestrator) record(result *ProcessingResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results[result.ProcessingID] = result
	o.history = append(o.history, ProcessingSummary{
		ProcessingID:  result.ProcessingID,
		CaseID:        result.CaseID,
		SourceType:    result.SourceType,
		TasksDetected: len(result.DetectedTasks),
		ProcessedAt:   result.ProcessedAt,
	})
	if len(o.history) > historyCap {
		drop := o.history[0]
		delete(o.results, drop.ProcessingID)
		o.history = o.history[1:]
	}
}

// observe updates the Prometheus collectors for one result.
func (o *Orchestrator) observe(result *ProcessingResult, start time.Time) {
	src := string(result.SourceType)
	o.metrics.InputsProcessed.WithLabelValues(src).Inc()
	o.metrics.ProcessingDuration.WithLabelValues(src).Observe(time.Since(start).Seconds())
	for _, t := range result.DetectedTasks {
		o.metrics.TasksDetected.WithLabelValues(string(t.Type)).Inc()
	}
	for _, d := range result.RoutingDecisions {
		o.metrics.RoutingDecisions.WithLabelValues(string(d.AgentID), d.RoutingMethod).Inc()
	}
	for _, sp := range result.PIIPHILabels.SensitiveLocations {
		o.metrics.SensitiveSpans.WithLabelValues(sp.Type).Inc()
	}
}

// History returns processing summaries, newest first, optionally filtered
// by case and capped at limit (zero means no cap).
func (o *Orchestrator) History(caseID string, limit int) []ProcessingSummary {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]ProcessingSummary, 0, len(o.history))
	for i := len(o.history) - 1; i >= 0; i-- {
		s := o.history[i]
		if caseID != "" && s.CaseID != caseID {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Result retrieves a stored processing result by id.
func (o *Orchestrator) Result(processingID string) (*ProcessingResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.results[processingID]
	return r, ok
}
