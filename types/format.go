package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

type MessagePair struct {
	Question string
	Answer   string
}

// ToolRequest carries everything a model-backed tool needs to reason
// about the current turn.
type ToolRequest struct {
	Record       Record
	RecordSchema string
	MessagePair  MessagePair
	Fields       []FieldInfo
}

func formatFieldsSection(step Step, fields []FieldInfo) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("# Fields collected at step %s:\n", step))
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Pointer", "Required", "Description")
	for _, field := range fields {
		required := "no"
		if field.Required {
			required = "yes"
		}
		_ = table.Append(field.DisplayName, field.JSONPointer, required, field.Description)
	}
	_ = table.Render()
	return buf.String()
}

func FormatToolRequest(req *ToolRequest) (string, error) {
	recordJSON, err := sonic.MarshalString(req.Record)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	sections := []string{
		fmt.Sprintf("# Current Date:\n%s", time.Now().Format(time.RFC3339)),
		fmt.Sprintf("# Intake record JSON:\n```json\n%s\n```", recordJSON),
	}
	if req.RecordSchema != "" {
		sections = append(sections, fmt.Sprintf("# Intake record schema JSON:\n```json\n%s\n```", req.RecordSchema))
	}
	sections = append(sections, fmt.Sprintf("# Current Step:\n%s", req.Record.Step))
	if req.MessagePair.Question != "" || req.MessagePair.Answer != "" {
		sections = append(sections, "# Latest Dialogue:")
		if req.MessagePair.Question != "" {
			sections = append(sections, fmt.Sprintf("## Assistant Question:\n%s", req.MessagePair.Question))
		}
		if req.MessagePair.Answer != "" {
			sections = append(sections, fmt.Sprintf("## Patient Answer:\n%s", req.MessagePair.Answer))
		}
	}
	if s := formatFieldsSection(req.Record.Step, req.Fields); s != "" {
		sections = append(sections, s)
	}
	return strings.Join(sections, "\n\n"), nil
}
