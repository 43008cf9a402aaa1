// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"regexp"
	"sort"
)

// maskedSSN is the only representation of a social security number that
// ever leaves the labeler. Raw SSN digits are matched for span offsets and
// discarded immediately.
const maskedSSN = "***-**-****"

// SensitivePattern binds a regulated-data category to its detection regex.
type SensitivePattern struct {
	Type     string
	Pattern  *regexp.Regexp
	Severity string
	Redact   bool
}

// PIILabeler categorizes extracted entities into PII and PHI labels and
// scans the raw text for regulated spans (SSN, email, phone) that callers
// can redact by offset.
type PIILabeler struct {
	patterns []SensitivePattern
}

// NewPIILabeler compiles the sensitive-data pattern table.
func NewPIILabeler() *PIILabeler {
	return &PIILabeler{
		patterns: []SensitivePattern{
			{
				Type:     "ssn",
				Pattern:  regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
				Severity: "critical",
				Redact:   true,
			},
			{
				Type:     "email",
				Pattern:  regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
				Severity: "medium",
				Redact:   true,
			},
			{
				Type:     "phone",
				Pattern:  regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
				Severity: "medium",
				Redact:   true,
			},
		},
	}
}

// Label builds the PII/PHI report for one input. Contact entities become
// PII labels, medical entities become HIPAA-flagged PHI labels, and every
// SSN match is reported only in masked form.
func (p *PIILabeler) Label(text string, entities EntitySet) PIIReport {
	report := PIIReport{
		PII:                []PIILabel{},
		PHI:                []PHILabel{},
		SensitiveLocations: []SensitiveSpan{},
	}

	for _, contact := range entities.ContactInfo {
		report.PII = append(report.PII, PIILabel{
			Type:               "contact_info",
			Value:              contact,
			RequiresProtection: true,
		})
	}

	for _, term := range entities.MedicalTerms {
		report.PHI = append(report.PHI, PHILabel{
			Type:                    "medical_information",
			Term:                    term,
			RequiresHIPAAProtection: true,
		})
	}

	for _, sp := range p.patterns {
		for _, loc := range sp.Pattern.FindAllStringIndex(text, -1) {
			report.SensitiveLocations = append(report.SensitiveLocations, SensitiveSpan{
				Type:         sp.Type,
				Start:        loc[0],
				End:          loc[1],
				ShouldRedact: sp.Redact,
			})
			if sp.Type == "ssn" {
				report.PII = append(report.PII, PIILabel{
					Type:               "ssn",
					Value:              maskedSSN,
					RequiresProtection: true,
					Severity:           sp.Severity,
				})
			}
		}
	}

	return report
}

// Redact replaces every should-redact span in text with a fixed-width
// placeholder, processing spans right to left so earlier offsets stay valid.
func (p *PIILabeler) Redact(text string, spans []SensitiveSpan) string {
	ordered := make([]SensitiveSpan, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	out := []byte(text)
	for i := len(ordered) - 1; i >= 0; i-- {
		sp := ordered[i]
		if !sp.ShouldRedact || sp.Start < 0 || sp.End > len(out) || sp.Start >= sp.End {
			continue
		}
		replacement := "[REDACTED-" + sp.Type + "]"
		out = append(out[:sp.Start], append([]byte(replacement), out[sp.End:]...)...)
	}
	return string(out)
}
