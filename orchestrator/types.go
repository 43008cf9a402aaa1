// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"fmt"
	"time"

	"tender/platform/specialists"
)

// SourceType identifies the channel an input arrived on. It is an immutable
// tag on every processed input and only affects normalization rules.
type SourceType string

const (
	SourceEmail           SourceType = "email"
	SourceSMS             SourceType = "sms"
	SourceClientPortal    SourceType = "client_portal"
	SourcePhoneTranscript SourceType = "phone_transcript"
	SourceVoicemail       SourceType = "voicemail"
	SourceFax             SourceType = "fax"
	SourceManualEntry     SourceType = "manual_entry"
)

// AllSourceTypes lists every valid source type.
var AllSourceTypes = []SourceType{
	SourceEmail,
	SourceSMS,
	SourceClientPortal,
	SourcePhoneTranscript,
	SourceVoicemail,
	SourceFax,
	SourceManualEntry,
}

// ParseSourceType validates a raw string against the closed source-type set.
func ParseSourceType(s string) (SourceType, error) {
	for _, st := range AllSourceTypes {
		if s == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid source type: %q", s)
}

// TaskType is the closed set of actionable work the detector can emit.
type TaskType string

const (
	TaskRetrieveRecords      TaskType = "retrieve_records"
	TaskClientCommunication  TaskType = "client_communication"
	TaskLegalResearch        TaskType = "legal_research"
	TaskScheduleAppointment  TaskType = "schedule_appointment"
	TaskDocumentOrganization TaskType = "document_organization"
	TaskDeadlineReminder     TaskType = "deadline_reminder"
	TaskFollowUp             TaskType = "follow_up"
	TaskDraftLetter          TaskType = "draft_letter"
	TaskCourtFiling          TaskType = "court_filing"
)

// AllTaskTypes lists every valid task type.
var AllTaskTypes = []TaskType{
	TaskRetrieveRecords,
	TaskClientCommunication,
	TaskLegalResearch,
	TaskScheduleAppointment,
	TaskDocumentOrganization,
	TaskDeadlineReminder,
	TaskFollowUp,
	TaskDraftLetter,
	TaskCourtFiling,
}

// ParseTaskType validates a raw string against the closed task-type set.
func ParseTaskType(s string) (TaskType, error) {
	for _, tt := range AllTaskTypes {
		if s == string(tt) {
			return tt, nil
		}
	}
	return "", fmt.Errorf("invalid task type: %q", s)
}

// AgentType identifies one of the five fixed specialist drafting agents.
type AgentType string

const (
	AgentRecordsWrangler   AgentType = "records_wrangler"
	AgentCommunicationGuru AgentType = "communication_guru"
	AgentLegalResearcher   AgentType = "legal_researcher"
	AgentVoiceScheduler    AgentType = "voice_scheduler"
	AgentEvidenceSorter    AgentType = "evidence_sorter"
)

// AllAgentTypes lists the five specialists in stable enumeration order.
// Fallback tie-breaks in the router rely on this ordering being stable.
var AllAgentTypes = []AgentType{
	AgentRecordsWrangler,
	AgentCommunicationGuru,
	AgentLegalResearcher,
	AgentVoiceScheduler,
	AgentEvidenceSorter,
}

// ParseAgentType validates a raw string against the closed agent set.
func ParseAgentType(s string) (AgentType, error) {
	for _, at := range AllAgentTypes {
		if s == string(at) {
			return at, nil
		}
	}
	return "", fmt.Errorf("invalid agent id: %q", s)
}

// Priority is derived from urgency keywords in the source text.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// ApprovalStatus gates the entire batch of proposed actions from one input.
type ApprovalStatus string

const (
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalRejected    ApprovalStatus = "rejected"
	ApprovalNotRequired ApprovalStatus = "not_required"
)

// Task represents one detected actionable unit of work. Tasks are created
// once by the detector and never mutated.
type Task struct {
	ID            string                 `json:"id"`
	Type          TaskType               `json:"task_type"`
	Priority      Priority               `json:"priority"`
	Description   string                 `json:"description"`
	ExtractedData map[string]interface{} `json:"extracted_data"`
	SourceType    SourceType             `json:"source_type"`
	DetectedAt    time.Time              `json:"detected_at"`
}

// AgentProfile describes one specialist. Only CurrentLoad mutates at
// runtime, and only under the router's lock.
type AgentProfile struct {
	AgentID               AgentType `json:"agent_id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	Specialties           []string  `json:"specialties"`
	MaxConcurrentTasks    int       `json:"max_concurrent_tasks"`
	CurrentLoad           int       `json:"current_load"`
	AverageCompletionTime int       `json:"average_completion_time_seconds"`
	SuccessRate           float64   `json:"success_rate"`
	Enabled               bool      `json:"enabled"`
}

// RoutingDecision is the immutable record of one routing outcome.
type RoutingDecision struct {
	AgentID                 AgentType `json:"agent_id"`
	AgentName               string    `json:"agent_name"`
	Confidence              float64   `json:"confidence"`
	Reasoning               string    `json:"reasoning"`
	EstimatedCompletionTime int       `json:"estimated_completion_time"`
	AgentSpecialties        []string  `json:"agent_specialties"`
	RoutedAt                time.Time `json:"routed_at"`
	RoutingMethod           string    `json:"routing_method,omitempty"`
}

// RoutingRecord is the append-only routing history entry kept for analytics.
type RoutingRecord struct {
	TaskID     string    `json:"task_id"`
	TaskType   TaskType  `json:"task_type"`
	Priority   Priority  `json:"priority"`
	AgentID    AgentType `json:"agent_id"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// RoutingStats aggregates the routing history for analytics endpoints.
type RoutingStats struct {
	TotalRouted       int               `json:"total_routed"`
	ByAgent           map[AgentType]int `json:"by_agent"`
	ByTaskType        map[TaskType]int  `json:"by_task_type"`
	AverageConfidence float64           `json:"average_confidence"`
}

// AgentStatus is a point-in-time snapshot of one agent, safe to serialize.
type AgentStatus struct {
	AgentID            AgentType `json:"agent_id"`
	Name               string    `json:"name"`
	CurrentLoad        int       `json:"current_load"`
	MaxConcurrentTasks int       `json:"max_concurrent_tasks"`
	CapacityPercentage float64   `json:"capacity_percentage"`
	Enabled            bool      `json:"enabled"`
	SuccessRate        float64   `json:"success_rate"`
}

// EntitySet is the fixed-shape result of entity extraction. Each list is
// deduplicated; order is not meaningful. Locations is a documented gap in
// the current heuristic set and stays empty.
type EntitySet struct {
	Names           []string `json:"names"`
	Dates           []string `json:"dates"`
	MedicalTerms    []string `json:"medical_terms"`
	LegalTerms      []string `json:"legal_terms"`
	Locations       []string `json:"locations"`
	ContactInfo     []string `json:"contact_info"`
	CaseNumbers     []string `json:"case_numbers"`
	MonetaryAmounts []string `json:"monetary_amounts"`
}

// PIILabel marks one piece of personally identifiable information.
// SSN labels always carry the masked value, never the raw digits.
type PIILabel struct {
	Type               string `json:"type"`
	Value              string `json:"value"`
	RequiresProtection bool   `json:"requires_protection"`
	Severity           string `json:"severity,omitempty"`
}

// PHILabel marks one piece of protected health information.
type PHILabel struct {
	Type                    string `json:"type"`
	Term                    string `json:"term"`
	RequiresHIPAAProtection bool   `json:"requires_hipaa_protection"`
}

// SensitiveSpan records the character offsets of a regulated-data match so
// the raw text can be redacted by span later.
type SensitiveSpan struct {
	Type         string `json:"type"` // ssn, email, phone
	Start        int    `json:"start"`
	End          int    `json:"end"`
	ShouldRedact bool   `json:"should_redact"`
}

// PIIReport bundles the categorized labels and the redaction span list.
type PIIReport struct {
	PII                []PIILabel      `json:"pii"`
	PHI                []PHILabel      `json:"phi"`
	SensitiveLocations []SensitiveSpan `json:"sensitive_locations"`
}

// SpecialistResponse captures the outcome of one specialist invocation.
// A failed draft produces Status "error" without failing the batch.
type SpecialistResponse struct {
	TaskID    string                   `json:"task_id"`
	AgentID   AgentType                `json:"agent_id"`
	AgentName string                   `json:"agent_name"`
	Response  *specialists.DraftResult `json:"response"`
	Status    string                   `json:"status"` // success, error
	Error     string                   `json:"error,omitempty"`
}

// ProposedAction pairs a task, its routing, and the specialist output into
// a reviewable artifact. Actions are always created pending human review.
type ProposedAction struct {
	ActionID      string                   `json:"action_id"`
	TaskID        string                   `json:"task_id"`
	ActionType    TaskType                 `json:"action_type"`
	AssignedAgent string                   `json:"assigned_agent"`
	Confidence    float64                  `json:"confidence"`
	Status        ApprovalStatus           `json:"status"`
	Response      *specialists.DraftResult `json:"ai_generated_response"`
	ApprovalNote  string                   `json:"approval_note"`
}

// AttachmentMeta describes an attachment without carrying its bytes.
// Extraction of attachment content is an external collaborator.
type AttachmentMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

// InputSummary describes the shape of the raw input.
type InputSummary struct {
	RawLength        int  `json:"raw_length"`
	NormalizedLength int  `json:"normalized_length"`
	HasAttachments   bool `json:"has_attachments"`
	AttachmentCount  int  `json:"attachment_count"`
}

// ProcessingResult is the orchestrator's full output for one ProcessInput
// call. It is immutable after construction.
type ProcessingResult struct {
	ProcessingID        string                 `json:"processing_id"`
	CaseID              string                 `json:"case_id,omitempty"`
	SourceType          SourceType             `json:"source_type"`
	ProcessedAt         time.Time              `json:"processed_at"`
	InputSummary        InputSummary           `json:"input_summary"`
	NormalizedText      string                 `json:"normalized_text"`
	ExtractedEntities   EntitySet              `json:"extracted_entities"`
	PIIPHILabels        PIIReport              `json:"pii_phi_labels"`
	DetectedTasks       []Task                 `json:"detected_tasks"`
	RoutingDecisions    []RoutingDecision      `json:"routing_decisions"`
	SpecialistResponses []SpecialistResponse   `json:"specialist_responses"`
	ApprovalRequired    ApprovalStatus         `json:"approval_required"`
	ProposedActions     []ProposedAction       `json:"proposed_actions"`
	Metadata            map[string]interface{} `json:"metadata,omitempty"`
	Attachments         []AttachmentMeta       `json:"attachments,omitempty"`
}

// ProcessingSummary is the compact history record kept per processed input.
type ProcessingSummary struct {
	ProcessingID  string     `json:"processing_id"`
	CaseID        string     `json:"case_id,omitempty"`
	SourceType    SourceType `json:"source_type"`
	TasksDetected int        `json:"tasks_detected"`
	ProcessedAt   time.Time  `json:"processed_at"`
}
