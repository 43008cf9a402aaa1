// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"strings"
	"testing"
)

func TestLabel_SSNAlwaysMasked(t *testing.T) {
	p := NewPIILabeler()
	text := "my ssn is 123-45-6789 thanks"
	report := p.Label(text, EntitySet{})

	var ssnLabels []PIILabel
	for _, l := range report.PII {
		if l.Type == "ssn" {
			ssnLabels = append(ssnLabels, l)
		}
	}
	if len(ssnLabels) != 1 {
		t.Fatalf("ssn labels = %d, want 1", len(ssnLabels))
	}
	if ssnLabels[0].Value != "***-**-****" {
		t.Errorf("ssn Value = %q, want masked", ssnLabels[0].Value)
	}
	if ssnLabels[0].Severity != "critical" {
		t.Errorf("ssn Severity = %q, want critical", ssnLabels[0].Severity)
	}

	// the raw digits must not appear anywhere in the report
	for _, l := range report.PII {
		if strings.Contains(l.Value, "123-45-6789") {
			t.Errorf("raw ssn leaked into label %+v", l)
		}
	}

	var ssnSpan *SensitiveSpan
	for i := range report.SensitiveLocations {
		if report.SensitiveLocations[i].Type == "ssn" {
			ssnSpan = &report.SensitiveLocations[i]
		}
	}
	if ssnSpan == nil {
		t.Fatal("no ssn span recorded")
	}
	if text[ssnSpan.Start:ssnSpan.End] != "123-45-6789" {
		t.Errorf("span covers %q", text[ssnSpan.Start:ssnSpan.End])
	}
	if !ssnSpan.ShouldRedact {
		t.Error("ssn span not marked for redaction")
	}
}

func TestLabel_ContactAndMedicalEntities(t *testing.T) {
	p := NewPIILabeler()
	entities := EntitySet{
		ContactInfo:  []string{"email:a@b.com", "phone:555-123-4567"},
		MedicalTerms: []string{"surgery", "mri"},
	}
	report := p.Label("reach me at a@b.com or 555-123-4567 about the surgery", entities)

	if len(report.PII) < 2 {
		t.Fatalf("PII labels = %d, want at least 2", len(report.PII))
	}
	for _, l := range report.PII[:2] {
		if l.Type != "contact_info" || !l.RequiresProtection {
			t.Errorf("unexpected PII label %+v", l)
		}
	}
	if len(report.PHI) != 2 {
		t.Fatalf("PHI labels = %d, want 2", len(report.PHI))
	}
	for _, l := range report.PHI {
		if l.Type != "medical_information" || !l.RequiresHIPAAProtection {
			t.Errorf("unexpected PHI label %+v", l)
		}
	}
}

func TestLabel_SpanTypes(t *testing.T) {
	p := NewPIILabeler()
	text := "ssn 123-45-6789, email a@b.com, phone 555-123-4567"
	report := p.Label(text, EntitySet{})

	seen := map[string]bool{}
	for _, sp := range report.SensitiveLocations {
		seen[sp.Type] = true
		if got := text[sp.Start:sp.End]; got == "" {
			t.Errorf("empty span for %s", sp.Type)
		}
	}
	for _, want := range []string{"ssn", "email", "phone"} {
		if !seen[want] {
			t.Errorf("no %s span recorded", want)
		}
	}
}

func TestLabel_CleanTextEmptyReport(t *testing.T) {
	p := NewPIILabeler()
	report := p.Label("please organize the case documents", EntitySet{})
	if len(report.PII) != 0 || len(report.PHI) != 0 || len(report.SensitiveLocations) != 0 {
		t.Errorf("report not empty: %+v", report)
	}
}

func TestRedact_ReplacesSpans(t *testing.T) {
	p := NewPIILabeler()
	text := "ssn 123-45-6789 and email a@b.com here"
	report := p.Label(text, EntitySet{})

	got := p.Redact(text, report.SensitiveLocations)
	if strings.Contains(got, "123-45-6789") {
		t.Errorf("ssn survived redaction: %q", got)
	}
	if strings.Contains(got, "a@b.com") {
		t.Errorf("email survived redaction: %q", got)
	}
	if !strings.Contains(got, "[REDACTED-ssn]") || !strings.Contains(got, "[REDACTED-email]") {
		t.Errorf("placeholders missing: %q", got)
	}
	if !strings.HasSuffix(got, " here") {
		t.Errorf("trailing text damaged: %q", got)
	}
}
