// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"regexp"
	"strings"
)

// EntityExtractor pulls names, dates, medical and legal vocabulary,
// contact details, case numbers, and monetary amounts out of normalized
// text using compiled heuristics. It performs no network calls.
type EntityExtractor struct {
	personName   *regexp.Regexp
	titledName   *regexp.Regexp
	numericDate  *regexp.Regexp
	isoDate      *regexp.Regexp
	writtenDate  *regexp.Regexp
	relativeDate *regexp.Regexp
	email        *regexp.Regexp
	phone        *regexp.Regexp
	caseNumber   *regexp.Regexp
	monetary     *regexp.Regexp
	medicalVocab []string
	legalVocab   []string
}

// NewEntityExtractor compiles the extraction patterns and vocabularies.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{
		personName:   regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`),
		titledName:   regexp.MustCompile(`\b(?:Dr|Mr|Mrs|Ms|Judge|Atty)\.? [A-Z][a-z]+(?: [A-Z][a-z]+)?`),
		numericDate:  regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
		isoDate:      regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		writtenDate:  regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2}(?:st|nd|rd|th)?(?:,? \d{4})?\b`),
		relativeDate: regexp.MustCompile(`(?i)\b(?:today|tomorrow|next (?:week|month|monday|tuesday|wednesday|thursday|friday)|this (?:week|friday))\b`),
		email:        regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		phone:        regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		caseNumber:   regexp.MustCompile(`(?i)\b(?:case|claim|file)\s*(?:no\.?|number|#)?\s*[:#]?\s*([A-Za-z0-9-]*\d[A-Za-z0-9-]*)`),
		monetary:     regexp.MustCompile(`\$\s?[0-9][0-9,]*(?:\.[0-9]{2})?`),
		medicalVocab: []string{
			"surgery", "diagnosis", "treatment", "injury", "injuries", "mri",
			"x-ray", "ct scan", "physical therapy", "medication", "prescription",
			"hospital", "doctor", "physician", "specialist", "chiropractor",
			"medical records", "therapy", "concussion", "fracture", "whiplash",
		},
		legalVocab: []string{
			"deposition", "settlement", "lawsuit", "claim", "liability",
			"negligence", "damages", "statute of limitations", "subpoena",
			"discovery", "motion", "hearing", "trial", "mediation",
			"arbitration", "demand letter", "complaint", "insurance adjuster",
		},
	}
}

// Extract runs every heuristic against the normalized text and returns
// a deduplicated EntitySet. Locations extraction is not implemented yet
// and that list is always empty.
func (e *EntityExtractor) Extract(text string) EntitySet {
	lower := strings.ToLower(text)

	names := e.titledName.FindAllString(text, -1)
	for _, cand := range e.personName.FindAllString(text, -1) {
		if !isVocabPhrase(cand) {
			names = append(names, cand)
		}
	}

	var dates []string
	dates = append(dates, e.numericDate.FindAllString(text, -1)...)
	dates = append(dates, e.isoDate.FindAllString(text, -1)...)
	dates = append(dates, e.writtenDate.FindAllString(text, -1)...)
	dates = append(dates, e.relativeDate.FindAllString(text, -1)...)

	// Contact entries carry a kind prefix so downstream consumers can tell
	// phones from emails without re-matching.
	var contact []string
	for _, m := range e.email.FindAllString(text, -1) {
		contact = append(contact, "email:"+m)
	}
	for _, m := range e.phone.FindAllString(text, -1) {
		contact = append(contact, "phone:"+m)
	}

	var cases []string
	for _, m := range e.caseNumber.FindAllStringSubmatch(text, -1) {
		cases = append(cases, m[1])
	}

	return EntitySet{
		Names:           dedupe(names),
		Dates:           dedupe(dates),
		MedicalTerms:    dedupe(matchVocab(lower, e.medicalVocab)),
		LegalTerms:      dedupe(matchVocab(lower, e.legalVocab)),
		Locations:       []string{},
		ContactInfo:     dedupe(contact),
		CaseNumbers:     dedupe(cases),
		MonetaryAmounts: dedupe(e.monetary.FindAllString(text, -1)),
	}
}

// matchVocab returns each vocabulary term present in the lowercased text.
func matchVocab(lower string, vocab []string) []string {
	var found []string
	for _, term := range vocab {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// isVocabPhrase filters capitalized two-word matches that are common
// sentence openers rather than names.
func isVocabPhrase(s string) bool {
	switch s {
	case "Thank You", "Best Regards", "Kind Regards", "Dear Sir", "Good Morning", "Good Afternoon":
		return true
	}
	return false
}

// dedupe preserves first-seen order while removing duplicates.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
