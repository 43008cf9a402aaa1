// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"regexp"
	"strings"
)

// Normalizer cleans channel-specific noise out of raw input text before
// entity extraction and task detection run. Normalization is idempotent:
// running it twice yields the same text as running it once.
type Normalizer struct {
	spaceRun       *regexp.Regexp
	lineEdges      *regexp.Regexp
	blankLines     *regexp.Regexp
	emailHeaders   *regexp.Regexp
	replyMarker    *regexp.Regexp
	quotedLine     *regexp.Regexp
	speakerLabel   *regexp.Regexp
	timestampMark  *regexp.Regexp
	bracketedStamp *regexp.Regexp
}

// NewNormalizer compiles the normalization patterns once.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		spaceRun:       regexp.MustCompile(`[ \t]+`),
		lineEdges:      regexp.MustCompile(`(?m)^ | $`),
		blankLines:     regexp.MustCompile(`\n{3,}`),
		emailHeaders:   regexp.MustCompile(`(?im)^(from|to|cc|bcc|subject|date|sent|reply-to):.*$`),
		replyMarker:    regexp.MustCompile(`(?is)on .{0,80}? wrote:.*$`),
		quotedLine:     regexp.MustCompile(`(?m)^>.*$`),
		speakerLabel:   regexp.MustCompile(`(?im)^[ \t]*(speaker\s*\d+|caller|agent|attorney|client|operator|receptionist)\s*:\s*`),
		timestampMark:  regexp.MustCompile(`(?m)\b\d{1,2}:\d{2}(:\d{2})?\s*(am|pm|AM|PM)?\s*[-–]\s*`),
		bracketedStamp: regexp.MustCompile(`\[\d{1,2}:\d{2}(:\d{2})?\]`),
	}
}

// Normalize applies the rules for the given source. SMS and manual entries
// only get whitespace collapse; emails additionally lose headers and quoted
// reply chains; transcript-like sources lose speaker labels and timestamps.
// Timestamps come off before speaker labels so a label that followed a
// timestamp sits at the start of its line when the label rule runs.
func (n *Normalizer) Normalize(text string, source SourceType) string {
	switch source {
	case SourceEmail:
		text = n.emailHeaders.ReplaceAllString(text, "")
		text = n.replyMarker.ReplaceAllString(text, "")
		text = n.quotedLine.ReplaceAllString(text, "")
	case SourcePhoneTranscript, SourceVoicemail:
		text = n.bracketedStamp.ReplaceAllString(text, "")
		text = n.timestampMark.ReplaceAllString(text, "")
		text = n.speakerLabel.ReplaceAllString(text, "")
	}
	return n.collapse(text)
}

// collapse folds runs of spaces and tabs into single spaces, trims each
// line, collapses runs of blank lines into exactly one blank line, and
// trims the edges. Paragraph breaks survive normalization.
func (n *Normalizer) collapse(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = n.spaceRun.ReplaceAllString(text, " ")
	text = n.lineEdges.ReplaceAllString(text, "")
	text = n.blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
