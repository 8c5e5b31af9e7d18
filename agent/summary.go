package agent

import (
	"fmt"
	"strings"

	"github.com/tbxark/intakeagent/types"
)

// Summary renders the terminal intake summary.
func Summary(r types.Record) string {
	insuranceID := r.InsuranceID
	if insuranceID == "" {
		insuranceID = "no ID provided"
	}
	physician := r.AssignedPhysician
	if physician == "" {
		physician = types.DefaultPhysician
	}

	var sb strings.Builder
	sb.WriteString("✅ Patient Intake Complete! Here's a summary of your information:\n\n")
	fmt.Fprintf(&sb, "- Full Name: %s\n", r.FullName)
	fmt.Fprintf(&sb, "- Date of Birth: %s\n", r.DateOfBirth)
	fmt.Fprintf(&sb, "- Address: %s\n", r.Address)
	fmt.Fprintf(&sb, "- Insurance: %s (%s)\n", r.InsuranceCompany, insuranceID)
	fmt.Fprintf(&sb, "- Reason for Visit: %s\n", r.ReasonForVisit)
	fmt.Fprintf(&sb, "- Selected Appointment Time: %s\n", r.AppointmentTime)
	fmt.Fprintf(&sb, "- Assigned Physician: %s\n\n", physician)
	sb.WriteString(ConfirmationSentence + " 😊")
	return sb.String()
}
