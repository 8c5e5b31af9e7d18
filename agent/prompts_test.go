package agent

import (
	"strings"
	"testing"

	"github.com/tbxark/intakeagent/types"
)

func TestStepGuidanceCoversModelSteps(t *testing.T) {
	for s := types.StepName; s <= types.StepComplete; s++ {
		_, ok := stepGuidance[s]
		if want := !s.Deterministic() && !s.Terminal(); ok != want {
			t.Errorf("guidance for %s present = %v, want %v", s, ok, want)
		}
	}
}

func TestSystemPromptEmbedsWelcome(t *testing.T) {
	if !strings.Contains(SystemPrompt, WelcomeMessage) {
		t.Error("system prompt should contain the welcome message")
	}
}

func TestSummaryDefaults(t *testing.T) {
	r := types.Record{
		FullName:         "John Roe",
		DateOfBirth:      "12/31/1980",
		Address:          "10 Main St, Springfield, IL 62701, USA",
		InsuranceCompany: "None",
		ReasonForVisit:   "Checkup",
		AppointmentTime:  "10:00 AM Monday",
	}
	got := Summary(r)
	want := "✅ Patient Intake Complete! Here's a summary of your information:\n\n" +
		"- Full Name: John Roe\n" +
		"- Date of Birth: 12/31/1980\n" +
		"- Address: 10 Main St, Springfield, IL 62701, USA\n" +
		"- Insurance: None (no ID provided)\n" +
		"- Reason for Visit: Checkup\n" +
		"- Selected Appointment Time: 10:00 AM Monday\n" +
		"- Assigned Physician: Dr. Smith\n\n" +
		"Your appointment is confirmed. Have a nice day! 😊"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestNewSession(t *testing.T) {
	a, b := NewSession(), NewSession()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("session IDs should be unique: %q %q", a.ID, b.ID)
	}
	if a.Record.Step != types.StepName || len(a.History) != 1 || a.History[0].Content != WelcomeMessage {
		t.Errorf("unexpected new session %+v", a)
	}
}
