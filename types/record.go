package types

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/eino-contrib/jsonschema"
)

const DefaultPhysician = "Dr. Smith"

// Record is the intake state of a single conversation.
type Record struct {
	Step                Step   `json:"step"`
	FullName            string `json:"full_name" jsonschema:"description=Patient full name"`
	DateOfBirth         string `json:"date_of_birth" jsonschema:"description=Date of birth in MM/DD/YYYY"`
	Address             string `json:"address" jsonschema:"description=Verified postal address (set by the assistant only)"`
	InsuranceCompany    string `json:"insurance_company" jsonschema:"description=Insurance company name"`
	InsuranceID         string `json:"insurance_id" jsonschema:"description=Optional insurance member ID"`
	InsuranceIDDeclined bool   `json:"insurance_id_declined" jsonschema:"description=True when the patient has no insurance ID to give"`
	ReasonForVisit      string `json:"reason_for_visit" jsonschema:"description=Reason for the visit"`
	AppointmentTime     string `json:"appointment_time" jsonschema:"description=Selected appointment slot (set by the assistant only)"`
	AssignedPhysician   string `json:"assigned_physician" jsonschema:"description=Physician assigned to the visit"`
}

func NewRecord() Record {
	return Record{
		Step:              StepName,
		AssignedPhysician: DefaultPhysician,
	}
}

// Satisfied reports whether the record holds what step collects.
func (r Record) Satisfied(step Step) bool {
	switch step {
	case StepName:
		return filled(r.FullName)
	case StepDOB:
		return filled(r.DateOfBirth)
	case StepAddress:
		return filled(r.Address)
	case StepInsurance:
		return filled(r.InsuranceCompany)
	case StepInsuranceID:
		return filled(r.InsuranceID) || r.InsuranceIDDeclined
	case StepReason:
		return filled(r.ReasonForVisit)
	case StepAppointment:
		return filled(r.AppointmentTime)
	default:
		return false
	}
}

// Advance moves Step forward past every model-collected step that is
// already satisfied. It stops at deterministic steps, which advance only
// through their own validators.
func (r *Record) Advance() {
	for r.Step.Valid() && !r.Step.Terminal() && !r.Step.Deterministic() && r.Satisfied(r.Step) {
		r.Step = r.Step.Next()
	}
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

// RecordSchema returns the JSON schema of Record, used to describe the
// record to the language model.
func RecordSchema() (string, error) {
	schema := jsonschema.Reflect(&Record{})
	schema.Title = "Patient intake record"
	schema.Description = "Fields collected from a patient before their visit."
	out, err := sonic.MarshalString(schema)
	if err != nil {
		return "", fmt.Errorf("marshal record schema: %w", err)
	}
	return out, nil
}
