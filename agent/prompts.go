package agent

import "github.com/tbxark/intakeagent/types"

// prompts.go holds every fixed string the patient can see, plus the
// instruction set sent to the language model.

// SystemPrompt is the fixed instruction set placed before the transcript
// on every model-delegated turn.
const SystemPrompt = `You are a patient-intake assistant for a healthcare clinic.

Your job is to collect patient information step-by-step before the patient sees a clinician.

Required Information (in order):
1. Patient Information:
   - Full name
   - Date of birth (MM/DD/YYYY)
   - Address (street, city, state, zip code). The clinic system verifies it.

2. Insurance Information:
   - Insurance company name
   - Insurance ID (optional, ask only if the user indicates they have it)

3. Medical Information:
   - Reason for visit (chief complaint)

4. Appointment Selection:
   - The clinic system presents the available time slots and records the choice.

Interaction Rules:
1. You must ask ONLY ONE question at a time.
2. Follow the order of required information exactly.
3. If the user's answer is unclear or incomplete, ask a clarifying question.
4. If a user says they do not have insurance, skip the insurance ID step.
5. Do NOT provide medical advice or diagnosis.
6. Be friendly and welcoming.
7. After collecting all required fields, respond only in a readable summary format with all collected information, including:
   - Selected appointment time/date
   - Assigned physician
   - Full patient intake information (name, DOB, address, insurance, reason for visit)
8. End the conversation with a friendly confirmation message like:
   "Your appointment is confirmed. Have a nice day!"
9. If any field is missing, continue the conversation and ask only for the missing field (one at a time).
10. Follow the "Intake progress" note: it names the field to ask for next.

Begin the conversation with this welcome message:

"` + WelcomeMessage + `"
`

const WelcomeMessage = "Hi there! I'm here to help with your check-in today. I'll ask you a few quick questions so we can get your information to the care team. Let's get started — what's your full name?"

// RetryMessage is returned when a collaborator call fails.
const RetryMessage = "I'm having trouble right now—can we try again soon?"

const (
	AddressPrompt              = "Thanks! What is your home address? Please enter it in the format: street, city, state, zip code."
	MalformedAddressMessage    = "Please provide your full address in the format: street, city, state, zip code."
	UnverifiableAddressMessage = "Sorry, we couldn't verify that address. Can you enter it again, including street, city, state, and zip code?"
	verifiedAddressTemplate    = "Got it! Verified address: %s. Next, what is your insurance company name?"

	appointmentPromptTemplate = "Thank you. Here are the available appointment times:\n%s\n\nPlease choose one by entering the corresponding number."
	invalidChoiceTemplate     = "Sorry, that is not a valid choice. Please select a number from 1 to %d."
	appointmentSetTemplate    = "Great! Your appointment is set for %s."
	completeTemplate          = "Your check-in is already complete and your appointment is confirmed for %s. Type 'quit' to exit."

	ConfirmationSentence = "Your appointment is confirmed. Have a nice day!"
)

var stepGuidance = map[types.Step]string{
	types.StepName:        "the patient's full name",
	types.StepDOB:         "the patient's date of birth (MM/DD/YYYY)",
	types.StepInsurance:   "the name of the patient's insurance company",
	types.StepInsuranceID: "the patient's insurance ID; it is optional and the patient may say they don't have one",
	types.StepReason:      "the reason for today's visit",
}

const progressTemplate = "Intake progress: ask only for %s."
