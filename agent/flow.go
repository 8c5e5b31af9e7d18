package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intakeagent/address"
	"github.com/tbxark/intakeagent/appointment"
	"github.com/tbxark/intakeagent/extract"
	"github.com/tbxark/intakeagent/reply"
	"github.com/tbxark/intakeagent/types"
)

var (
	// ErrCollaboratorFailure wraps a failed model or geocoding call.
	ErrCollaboratorFailure = errors.New("collaborator call failed")
	ErrUnknownStep         = errors.New("unknown intake step")
	ErrNilSession          = errors.New("session is nil")
)

// Response is the outcome of one Handle call.
type Response struct {
	Message   string     `json:"message"`
	Step      types.Step `json:"step"`
	Completed bool       `json:"completed"`

	// Err is the recoverable problem with this turn, if any: an address or
	// selection error, or ErrCollaboratorFailure. The session was not
	// modified when Err is set.
	Err error `json:"-"`
}

// Orchestrator routes each patient message to a deterministic validator or
// to the language model. It keeps no per-conversation state.
type Orchestrator struct {
	extractor extract.Extractor
	replies   reply.Generator
	geocoder  address.Geocoder
	slots     []string
}

func NewOrchestrator(extractor extract.Extractor, replies reply.Generator, geocoder address.Geocoder) (*Orchestrator, error) {
	if extractor == nil || replies == nil || geocoder == nil {
		return nil, errors.New("extractor, reply generator and geocoder are required")
	}
	slots := make([]string, len(appointment.DefaultSlots))
	copy(slots, appointment.DefaultSlots)
	return &Orchestrator{
		extractor: extractor,
		replies:   replies,
		geocoder:  geocoder,
		slots:     slots,
	}, nil
}

type toolBasedOptions struct {
	replyOptions   []reply.GeneratorOption
	extractOptions []model.Option
}

type ToolBasedOption func(*toolBasedOptions)

func WithReplyOptions(opts ...reply.GeneratorOption) ToolBasedOption {
	return func(o *toolBasedOptions) {
		o.replyOptions = append(o.replyOptions, opts...)
	}
}

func WithExtractModelOptions(opts ...model.Option) ToolBasedOption {
	return func(o *toolBasedOptions) {
		o.extractOptions = append(o.extractOptions, opts...)
	}
}

// NewToolBasedOrchestrator uses chatModel both for field extraction and
// for conversational replies.
func NewToolBasedOrchestrator(
	chatModel model.ToolCallingChatModel,
	geocoder address.Geocoder,
	opts ...ToolBasedOption,
) (*Orchestrator, error) {
	var o toolBasedOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	extractor, err := extract.NewToolBasedExtractor(chatModel, append([]model.Option{model.WithTemperature(0)}, o.extractOptions...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create field extractor: %w", err)
	}
	replies := reply.NewChatModelGenerator(chatModel, SystemPrompt, o.replyOptions...)
	return NewOrchestrator(extractor, replies, geocoder)
}

// Slots returns a copy of the appointment times offered at the
// APPOINTMENT step, in menu order.
func (o *Orchestrator) Slots() []string {
	out := make([]string, len(o.slots))
	copy(out, o.slots)
	return out
}

// Handle processes one patient message against session and returns the
// assistant's reply. The returned error is reserved for misuse (nil
// session, corrupted step); every conversational failure is reported in
// Response.Err with a reply the patient can act on.
func (o *Orchestrator) Handle(ctx context.Context, s *Session, message string) (*Response, error) {
	if s == nil {
		return nil, ErrNilSession
	}
	ctx = callbacks.EnsureRunInfo(ctx, "IntakeOrchestrator", "Agent")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"session": s.ID,
		"input":   message,
		"step":    s.Record.Step.String(),
	})

	resp, err := o.dispatch(ctx, s, message)
	if err != nil {
		callbacks.OnError(ctx, err)
		return nil, err
	}
	resp.Step = s.Record.Step
	resp.Completed = s.Completed()

	callbacks.OnEnd(ctx, map[string]any{
		"session":   s.ID,
		"step":      resp.Step.String(),
		"completed": resp.Completed,
	})
	return resp, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, s *Session, message string) (*Response, error) {
	slog.Debug("Handling turn", "session", s.ID, "step", s.Record.Step)
	switch step := s.Record.Step; step {
	case types.StepAddress:
		return o.handleAddress(ctx, s, message), nil
	case types.StepAppointment:
		return o.handleAppointment(s, message), nil
	case types.StepComplete:
		return &Response{Message: fmt.Sprintf(completeTemplate, s.Record.AppointmentTime)}, nil
	case types.StepName, types.StepDOB, types.StepInsurance, types.StepInsuranceID, types.StepReason:
		return o.handleConversation(ctx, s, message), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
}

func (o *Orchestrator) handleAddress(ctx context.Context, s *Session, message string) *Response {
	result, err := address.Validate(ctx, o.geocoder, message)
	switch {
	case errors.Is(err, address.ErrMalformedAddress):
		return &Response{Message: MalformedAddressMessage, Err: err}
	case errors.Is(err, address.ErrUnverifiableAddress):
		return &Response{Message: UnverifiableAddressMessage, Err: err}
	case err != nil:
		return o.collaboratorFailure(s, fmt.Errorf("validate address: %w", err))
	}

	s.Record.Address = result.FormattedAddress
	s.Record.Step = s.Record.Step.Next()
	slog.Info("Address verified", "session", s.ID, "lat", result.Latitude, "lng", result.Longitude)

	answer := fmt.Sprintf(verifiedAddressTemplate, result.FormattedAddress)
	s.History = appendHistory(s.History,
		schema.UserMessage(message),
		schema.AssistantMessage(answer, nil),
	)
	return &Response{Message: answer}
}

func (o *Orchestrator) handleAppointment(s *Session, message string) *Response {
	slot, err := appointment.Select(message, o.slots)
	if err != nil {
		return &Response{Message: fmt.Sprintf(invalidChoiceTemplate, len(o.slots)), Err: err}
	}

	s.Record.AppointmentTime = slot
	s.Record.Step = types.StepComplete
	slog.Info("Appointment booked", "session", s.ID, "slot", slot)

	summary := Summary(s.Record)
	s.History = appendHistory(s.History,
		schema.UserMessage(message),
		schema.AssistantMessage(fmt.Sprintf(appointmentSetTemplate, slot), nil),
		schema.AssistantMessage(summary, nil),
	)
	return &Response{Message: summary}
}

// handleConversation extracts the fields the message provides, advances
// the step, and produces the next question. Nothing is committed to the
// session unless every model call succeeds.
func (o *Orchestrator) handleConversation(ctx context.Context, s *Session, message string) *Response {
	updated := s.Record
	args, err := o.extractor.Extract(ctx, &types.ToolRequest{
		Record: updated,
		MessagePair: types.MessagePair{
			Question: lastAssistantMessage(s.History),
			Answer:   message,
		},
		Fields: types.StepFields(updated.Step),
	})
	if err != nil {
		return o.collaboratorFailure(s, fmt.Errorf("extract fields: %w", err))
	}
	if args != nil && len(args.Ops) > 0 {
		slog.Debug("Applying extracted fields", "session", s.ID, "ops", args.Ops)
		updated, err = extract.ApplyRFC6902(updated, args.Ops)
		if err != nil {
			return o.collaboratorFailure(s, fmt.Errorf("apply extracted fields: %w", err))
		}
	}
	updated.Step = s.Record.Step
	updated.Advance()

	var answer string
	switch updated.Step {
	case types.StepAddress:
		answer = AddressPrompt
	case types.StepAppointment:
		answer = fmt.Sprintf(appointmentPromptTemplate, appointment.Menu(o.slots))
	default:
		answer, err = o.replies.GenerateReply(ctx, &reply.Request{
			History:  s.History,
			Message:  message,
			Guidance: fmt.Sprintf(progressTemplate, stepGuidance[updated.Step]),
		})
		if err != nil {
			return o.collaboratorFailure(s, fmt.Errorf("generate reply: %w", err))
		}
	}

	if updated.Step != s.Record.Step {
		slog.Info("Step advanced", "session", s.ID, "from", s.Record.Step, "to", updated.Step)
	}
	s.Record = updated
	s.History = appendHistory(s.History,
		schema.UserMessage(message),
		schema.AssistantMessage(answer, nil),
	)
	return &Response{Message: answer}
}

func (o *Orchestrator) collaboratorFailure(s *Session, err error) *Response {
	slog.Warn("Collaborator call failed", "session", s.ID, "step", s.Record.Step, "error", err)
	return &Response{
		Message: RetryMessage,
		Err:     fmt.Errorf("%w: %w", ErrCollaboratorFailure, err),
	}
}
