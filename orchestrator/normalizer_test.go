// Copyright 2025 Tender
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"strings"
	"testing"
)

func TestNormalize_EmailStripsHeadersAndQuotes(t *testing.T) {
	n := NewNormalizer()
	raw := `From: client@example.com
To: intake@firm.example
Subject: Records question

Please request my records from Dr. Patel.

> quoted earlier message
On Mon, Jan 6, 2025 at 9:00 AM someone wrote: old thread content here`

	got := n.Normalize(raw, SourceEmail)
	if strings.Contains(got, "Subject:") || strings.Contains(got, "From:") {
		t.Errorf("headers survived normalization: %q", got)
	}
	if strings.Contains(got, "quoted earlier") || strings.Contains(got, "old thread") {
		t.Errorf("quoted reply survived normalization: %q", got)
	}
	if !strings.Contains(got, "request my records from Dr. Patel") {
		t.Errorf("body content lost: %q", got)
	}
}

func TestNormalize_TranscriptStripsSpeakersAndTimestamps(t *testing.T) {
	n := NewNormalizer()
	raw := `Caller: Hi, I need to schedule a deposition.
[10:32] Agent: Of course.
10:35 AM - Caller: Next Tuesday works.`

	got := n.Normalize(raw, SourcePhoneTranscript)
	if strings.Contains(got, "Caller:") || strings.Contains(got, "Agent:") {
		t.Errorf("speaker labels survived: %q", got)
	}
	if strings.Contains(got, "[10:32]") || strings.Contains(got, "10:35") {
		t.Errorf("timestamps survived: %q", got)
	}
	if !strings.Contains(got, "schedule a deposition") {
		t.Errorf("content lost: %q", got)
	}
}

func TestNormalize_SMSOnlyCollapsesWhitespace(t *testing.T) {
	n := NewNormalizer()
	got := n.Normalize("  hey   any update   on my case?  ", SourceSMS)
	want := "hey any update on my case?"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer()
	inputs := []struct {
		text   string
		source SourceType
	}{
		{"From: a@b.com\n\nHello   there", SourceEmail},
		{"Caller: need an appointment [10:00]", SourcePhoneTranscript},
		{"  plain   text  ", SourceSMS},
		{"portal message\n\nwith breaks", SourceClientPortal},
	}
	for _, in := range inputs {
		once := n.Normalize(in.text, in.source)
		twice := n.Normalize(once, in.source)
		if once != twice {
			t.Errorf("not idempotent for %s: %q != %q", in.source, once, twice)
		}
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	n := NewNormalizer()
	for _, src := range AllSourceTypes {
		if got := n.Normalize("", src); got != "" {
			t.Errorf("Normalize(\"\", %s) = %q, want empty", src, got)
		}
	}
}
