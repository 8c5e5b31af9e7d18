package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intakeagent/structured"
	"github.com/tbxark/intakeagent/types"
)

const (
	updateRecordToolName        = "update_intake_record"
	updateRecordToolDescription = "Generate RFC6902 JSON Patch operations that record the intake fields the patient just provided. Only include information the patient stated explicitly."
)

// DefaultExtractSystemPromptTemplate is the system prompt of
// ToolBasedExtractor. The single "%s" is replaced by the tool name.
const DefaultExtractSystemPromptTemplate = `You are the record keeper of a clinic's patient-intake assistant.

Read the assistant's latest question and the patient's answer, then call %s with patch operations for the fields listed under "Fields collected at step".

Rules:
- Only use information the patient stated explicitly. Never guess or invent values.
- Only write the listed pointers. Other fields are filled by other parts of the system.
- Use "replace" for every operation.
- All values except insurance_id_declined are strings, including IDs made only of digits.
- Write dates of birth as MM/DD/YYYY.
- If the patient says they have no insurance, set insurance_company to "None" and insurance_id_declined to true.
- If the patient says they have no insurance ID or prefer not to give it, set insurance_id_declined to true.
- If the answer is unclear, off-topic, or incomplete, return an empty ops list.`

type ToolBasedExtractor struct {
	chain        *structured.Chain[*types.ToolRequest, UpdateArgs]
	recordSchema string
}

var _ Extractor = (*ToolBasedExtractor)(nil)

func NewToolBasedExtractor(chatModel model.ToolCallingChatModel, opts ...model.Option) (*ToolBasedExtractor, error) {
	recordSchema, err := types.RecordSchema()
	if err != nil {
		return nil, err
	}
	chain, err := structured.NewChain[*types.ToolRequest, UpdateArgs](
		chatModel,
		buildExtractPrompt,
		updateRecordToolName,
		updateRecordToolDescription,
		structured.WithModelOptions(opts...),
	)
	if err != nil {
		return nil, err
	}
	return &ToolBasedExtractor{chain: chain, recordSchema: recordSchema}, nil
}

// Extract asks the model for patches and keeps those writing a pointer
// that is writable at req.Record.Step. Other patches are dropped.
func (e *ToolBasedExtractor) Extract(ctx context.Context, req *types.ToolRequest) (*UpdateArgs, error) {
	if req.RecordSchema == "" {
		withSchema := *req
		withSchema.RecordSchema = e.recordSchema
		req = &withSchema
	}
	result, err := e.chain.Invoke(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	kept, dropped, err := FilterOperations(result.Ops, types.StepPointers(req.Record.Step))
	if err != nil {
		return nil, fmt.Errorf("generated patches failed validation: %w", err)
	}
	if len(dropped) > 0 {
		slog.Debug("Dropped patches outside the current step", "step", req.Record.Step, "ops", dropped)
	}
	result.Ops = Normalize(kept)
	return result, nil
}

func buildExtractPrompt(ctx context.Context, req *types.ToolRequest) ([]*schema.Message, error) {
	message, err := types.FormatToolRequest(req)
	if err != nil {
		return nil, fmt.Errorf("convert to prompt message failed: %w", err)
	}
	return []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(DefaultExtractSystemPromptTemplate, updateRecordToolName)),
		schema.UserMessage(message),
	}, nil
}
