package types

import (
	"fmt"

	"github.com/eino-contrib/jsonschema"
)

// Step is one stage of the intake sequence. The zero value is StepName.
type Step int

const (
	StepName Step = iota
	StepDOB
	StepAddress
	StepInsurance
	StepInsuranceID
	StepReason
	StepAppointment
	StepComplete
)

var stepLabels = [...]string{
	StepName:        "NAME",
	StepDOB:         "DOB",
	StepAddress:     "ADDRESS",
	StepInsurance:   "INSURANCE",
	StepInsuranceID: "INSURANCE_ID",
	StepReason:      "REASON",
	StepAppointment: "APPOINTMENT",
	StepComplete:    "COMPLETE",
}

func (s Step) Valid() bool {
	return s >= StepName && s <= StepComplete
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepLabels[s]
}

// Next returns the following step. COMPLETE is its own successor.
func (s Step) Next() Step {
	if s >= StepComplete {
		return StepComplete
	}
	return s + 1
}

// Deterministic reports whether the step is handled without the language model.
func (s Step) Deterministic() bool {
	return s == StepAddress || s == StepAppointment
}

func (s Step) Terminal() bool {
	return s == StepComplete
}

func ParseStep(label string) (Step, error) {
	for i, l := range stepLabels {
		if l == label {
			return Step(i), nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", label)
}

func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid step %d", int(s))
	}
	return []byte(stepLabels[s]), nil
}

func (s *Step) UnmarshalText(text []byte) error {
	step, err := ParseStep(string(text))
	if err != nil {
		return err
	}
	*s = step
	return nil
}

func (Step) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(stepLabels))
	for _, l := range stepLabels {
		enum = append(enum, l)
	}
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Current intake step, managed by the assistant. Never edit.",
		Enum:        enum,
	}
}

type FieldInfo struct {
	JSONPointer string `json:"json_pointer"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

var (
	FieldFullName = FieldInfo{
		JSONPointer: "/full_name",
		DisplayName: "Full name",
		Description: "Patient's full legal name",
		Required:    true,
	}
	FieldDateOfBirth = FieldInfo{
		JSONPointer: "/date_of_birth",
		DisplayName: "Date of birth",
		Description: "Formatted as MM/DD/YYYY",
		Required:    true,
	}
	FieldInsuranceCompany = FieldInfo{
		JSONPointer: "/insurance_company",
		DisplayName: "Insurance company",
		Description: `Insurer name, or "None" when the patient is uninsured`,
		Required:    true,
	}
	FieldInsuranceID = FieldInfo{
		JSONPointer: "/insurance_id",
		DisplayName: "Insurance ID",
		Description: "Member ID printed on the insurance card",
	}
	FieldInsuranceIDDeclined = FieldInfo{
		JSONPointer: "/insurance_id_declined",
		DisplayName: "No insurance ID",
		Description: "Set to true when the patient is uninsured or says they have no ID to give",
	}
	FieldReasonForVisit = FieldInfo{
		JSONPointer: "/reason_for_visit",
		DisplayName: "Reason for visit",
		Description: "Chief complaint in the patient's own words",
		Required:    true,
	}
)

// StepFields lists the fields the language model may fill while the
// record is at step. Deterministic and terminal steps return nil.
func StepFields(step Step) []FieldInfo {
	switch step {
	case StepName:
		return []FieldInfo{FieldFullName}
	case StepDOB:
		return []FieldInfo{FieldDateOfBirth}
	case StepInsurance:
		return []FieldInfo{FieldInsuranceCompany, FieldInsuranceID, FieldInsuranceIDDeclined}
	case StepInsuranceID:
		return []FieldInfo{FieldInsuranceID, FieldInsuranceIDDeclined}
	case StepReason:
		return []FieldInfo{FieldReasonForVisit}
	default:
		return nil
	}
}

// StepPointers returns the JSON pointers of StepFields(step).
func StepPointers(step Step) []string {
	fields := StepFields(step)
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		paths = append(paths, f.JSONPointer)
	}
	return paths
}
