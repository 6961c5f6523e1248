package renderer

import (
	"strings"
	"testing"

	"github.com/clinicforms/consent-engine/pkg/formspec"
)

func mixedSections() []formspec.Section {
	return []formspec.Section{
		{Type: "info", Subtitle: "About", Body: "about the clinic"},
		{Type: "consent", Subtitle: "Research", Body: "research use"},
		{Type: "consent", Subtitle: "Contact", Body: "future contact"},
		{Type: "info", Subtitle: "Privacy", Body: "privacy statement"},
		{Type: "consent", Subtitle: "Students", Body: "student observation"},
	}
}

func acceptedStates(bound []boundSection) []bool {
	var states []bool
	for _, bs := range bound {
		if bs.IsConsent() {
			states = append(states, bs.accepted)
		}
	}
	return states
}

func TestBindConsent_PositionalOrder(t *testing.T) {
	bound := bindConsent(mixedSections(), []bool{true, false, true})

	if len(bound) != 5 {
		t.Fatalf("Expected 5 bound sections, got %d", len(bound))
	}

	got := acceptedStates(bound)
	want := []bool{true, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Consent section %d: accepted=%v, want %v", i, got[i], want[i])
		}
	}

	// Info sections never consume a flag and never carry accepted state
	for _, idx := range []int{0, 3} {
		if bound[idx].accepted {
			t.Errorf("Info section %d unexpectedly marked accepted", idx)
		}
	}
}

func TestBindConsent_MissingFlagsDefaultFalse(t *testing.T) {
	sections := []formspec.Section{
		{Type: "consent", Subtitle: "Research", Body: "research use"},
		{Type: "consent", Subtitle: "Students", Body: "student observation"},
	}

	got := acceptedStates(bindConsent(sections, []bool{true}))
	if !got[0] {
		t.Error("Expected first consent section accepted")
	}
	if got[1] {
		t.Error("Expected second consent section to default to not-accepted")
	}
}

func TestBindConsent_EmptyFlags(t *testing.T) {
	for i, accepted := range acceptedStates(bindConsent(mixedSections(), nil)) {
		if accepted {
			t.Errorf("Consent section %d should default to not-accepted", i)
		}
	}
}

func TestBindConsent_ExtraFlagsIgnored(t *testing.T) {
	sections := []formspec.Section{
		{Type: "consent", Subtitle: "Research", Body: "research use"},
	}

	bound := bindConsent(sections, []bool{false, true, true})
	if bound[0].accepted {
		t.Error("Expected first flag to bind, extras ignored")
	}
}

func TestConsentLines_Exclusive(t *testing.T) {
	for _, accepted := range []bool{true, false} {
		lines := consentLines(accepted)

		marks := 0
		for _, line := range lines {
			if strings.Contains(line.label, "[X]") {
				marks++
				if !line.marked {
					t.Errorf("accepted=%v: marked flag disagrees with label %q", accepted, line.label)
				}
			}
		}
		if marks != 1 {
			t.Errorf("accepted=%v: expected exactly one [X] mark, got %d", accepted, marks)
		}
	}
}

func TestConsentLines_MarkPlacement(t *testing.T) {
	lines := consentLines(true)
	if !strings.HasPrefix(lines[0].label, "[X]") || !strings.Contains(lines[0].label, "I CONSENT") {
		t.Errorf("Expected [X] on the consent line, got %q", lines[0].label)
	}
	if !strings.HasPrefix(lines[1].label, "[   ]") {
		t.Errorf("Expected empty box on the do-not-consent line, got %q", lines[1].label)
	}

	lines = consentLines(false)
	if !strings.HasPrefix(lines[1].label, "[X]") || !strings.Contains(lines[1].label, "I DO NOT CONSENT") {
		t.Errorf("Expected [X] on the do-not-consent line, got %q", lines[1].label)
	}
}
