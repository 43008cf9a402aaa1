// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// TaskPattern binds a task type to its trigger patterns. Patterns are
// checked in declaration order; the first hit for a type wins and a type
// is detected at most once per input.
type TaskPattern struct {
	Type     TaskType
	Patterns []*regexp.Regexp
	Summary  string
}

var urgentKeywords = []string{
	"urgent", "asap", "emergency", "immediately", "critical",
	"deadline", "today", "right away",
}

var highKeywords = []string{
	"important", "priority", "quickly", "this week", "by friday",
}

var concernKeywords = []string{
	"worried", "concerned", "anxious", "scared", "frustrated", "upset",
}

// TaskDetector scans normalized text for actionable work. Task IDs come
// from a detector-owned monotonic counter, so IDs are unique for the life
// of the instance and safe under concurrent detection.
type TaskDetector struct {
	counter  atomic.Uint64
	patterns []TaskPattern

	provider        *regexp.Regexp
	question        *regexp.Regexp
	appointmentType *regexp.Regexp
}

// NewTaskDetector compiles the task trigger table.
func NewTaskDetector() *TaskDetector {
	return &TaskDetector{
		patterns: []TaskPattern{
			{
				Type: TaskRetrieveRecords,
				Patterns: compile(
					`(?i)\b(?:need|get|obtain|request|retrieve|pull)\s+(?:my\s+|the\s+)?(?:medical\s+)?(?:records?|bills?|receipts?|documents?)\b`,
					`(?i)\bmedical\s+(?:records?|bills?|documentation)\b`,
					`(?i)\b(?:billing|treatment|employment)\s+records\b`,
					`(?i)\brecords?\s+(?:from|request)`,
					`(?i)\b(?:mri|x-ray|ct scan|surgery|treatment|hospital|clinic|doctor|dr)\b\.?.{0,80}?\b(?:bills?|billing|receipts?|invoices?|records?)\b`,
				),
				Summary: "Retrieve records referenced in the message",
			},
			{
				Type: TaskScheduleAppointment,
				Patterns: compile(
					`(?i)\bschedule\s+(?:a|an|the|my)?\s*(?:appointment|meeting|consultation|deposition|call)`,
					`(?i)\b(?:set\s+up|book)\s+(?:a|an|the)?\s*(?:time|appointment|meeting|call)`,
					`(?i)\breschedule\b`,
				),
				Summary: "Schedule the requested appointment",
			},
			{
				Type: TaskCourtFiling,
				Patterns: compile(
					`(?i)\bcourt\s+filing\b`,
					`(?i)\bfile\s+(?:a|the)\s+(?:motion|complaint|petition|response)`,
					`(?i)\bfile\s+with\s+the\s+court\b`,
				),
				Summary: "Prepare the court filing",
			},
			{
				Type: TaskDraftLetter,
				Patterns: compile(
					`(?i)\b(?:draft|write|prepare|send)\s+(?:a|the)?\s*(?:demand\s+)?letter\b`,
					`(?i)\bdemand\s+letter\b`,
				),
				Summary: "Draft the requested letter",
			},
			{
				Type: TaskLegalResearch,
				Patterns: compile(
					`(?i)\b(?:legal\s+)?research\b`,
					`(?i)\bstatute\s+of\s+limitations\b`,
					`(?i)\bcase\s+law\b`,
					`(?i)\bprecedent\b`,
				),
				Summary: "Research the legal question raised",
			},
			{
				Type: TaskDocumentOrganization,
				Patterns: compile(
					`(?i)\b(?:organize|sort|categorize)\b.{0,40}\b(?:documents?|files?|paperwork|photos?|evidence)\b`,
					`(?i)\b(?:attached|enclosed)\b.{0,40}\b(?:documents?|files?|photos?)\b`,
				),
				Summary: "Organize the submitted documents",
			},
			{
				Type: TaskDeadlineReminder,
				Patterns: compile(
					`(?i)\bdeadline\b`,
					`(?i)\bdue\s+(?:date|by|on)\b`,
					`(?i)\bremind(?:er)?\b`,
					`(?i)\bexpires?\b`,
				),
				Summary: "Set a reminder for the stated deadline",
			},
			{
				Type: TaskFollowUp,
				Patterns: compile(
					`(?i)\bfollow[\s-]?up\b`,
					`(?i)\bcheck(?:ing)?\s+in\b`,
					`(?i)\b(?:any|status)\s+update\b`,
					`(?i)\bhaven'?t\s+heard\b`,
				),
				Summary: "Follow up on the pending item",
			},
			{
				Type: TaskClientCommunication,
				Patterns: compile(
					`(?i)\b(?:call|phone)\s+me\b`,
					`(?i)\blet\s+me\s+know\b`,
					`(?i)\b(?:get\s+back|respond)\s+to\s+me\b`,
					`(?i)\bquestion\b`,
					`(?i)\b(?:worried|concerned|anxious)\b`,
				),
				Summary: "Respond to the client's message",
			},
		},
		provider:        regexp.MustCompile(`\b(?:Dr\.?\s+[A-Z][a-z]+|[A-Z][a-z]+\s+(?:Hospital|Clinic|Medical\s+Center|Imaging))\b`),
		question:        regexp.MustCompile(`[^.!?]*\?`),
		appointmentType: regexp.MustCompile(`(?i)\b(deposition|consultation|mediation|hearing|follow-up visit|meeting|call)\b`),
	}
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Detect scans the text once and returns at most one task per task type.
// Priority is computed once for the whole input and stamped onto every
// detected task.
func (d *TaskDetector) Detect(text string, source SourceType, entities EntitySet) []Task {
	priority := d.DetectPriority(text)
	now := time.Now().UTC()

	var tasks []Task
	for _, tp := range d.patterns {
		for _, re := range tp.Patterns {
			if !re.MatchString(text) {
				continue
			}
			tasks = append(tasks, Task{
				ID:            d.nextID(),
				Type:          tp.Type,
				Priority:      priority,
				Description:   tp.Summary,
				ExtractedData: d.context(tp.Type, text, entities),
				SourceType:    source,
				DetectedAt:    now,
			})
			break
		}
	}
	return tasks
}

// DetectPriority maps urgency keywords to a priority level. Urgent wins
// over high; anything without a trigger word is medium.
func (d *TaskDetector) DetectPriority(text string) Priority {
	lower := strings.ToLower(text)
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			return PriorityUrgent
		}
	}
	for _, kw := range highKeywords {
		if strings.Contains(lower, kw) {
			return PriorityHigh
		}
	}
	return PriorityMedium
}

// context builds the per-type extracted data attached to a task.
func (d *TaskDetector) context(tt TaskType, text string, entities EntitySet) map[string]interface{} {
	data := make(map[string]interface{})
	switch tt {
	case TaskRetrieveRecords:
		if len(entities.MedicalTerms) > 0 {
			data["medical_terms"] = entities.MedicalTerms
		}
		if providers := dedupe(d.provider.FindAllString(text, -1)); len(providers) > 0 {
			data["providers"] = providers
		}
	case TaskScheduleAppointment:
		if m := d.appointmentType.FindString(text); m != "" {
			data["appointment_type"] = strings.ToLower(m)
		}
		if len(entities.Dates) > 0 {
			data["candidate_dates"] = entities.Dates
		}
	case TaskClientCommunication:
		var questions []string
		for _, q := range d.question.FindAllString(text, -1) {
			q = strings.TrimSpace(q)
			if len(q) > 10 {
				questions = append(questions, q)
			}
		}
		if len(questions) > 0 {
			data["questions"] = questions
		}
		lower := strings.ToLower(text)
		var concerns []string
		for _, kw := range concernKeywords {
			if strings.Contains(lower, kw) {
				concerns = append(concerns, kw)
			}
		}
		if len(concerns) > 0 {
			data["concerns"] = concerns
		}
	case TaskLegalResearch:
		if len(entities.LegalTerms) > 0 {
			data["research_topics"] = entities.LegalTerms
		}
	case TaskDeadlineReminder:
		if len(entities.Dates) > 0 {
			data["dates"] = entities.Dates
		}
	}
	return data
}

// nextID returns the next unique task identifier.
func (d *TaskDetector) nextID() string {
	return fmt.Sprintf("task-%d", d.counter.Add(1))
}
