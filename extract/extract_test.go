package extract

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tbxark/intakeagent/testcases"
	"github.com/tbxark/intakeagent/types"
)

func TestFilterOperations(t *testing.T) {
	allowed := types.StepPointers(types.StepInsurance)
	ops := []Operation{
		{Op: OperationReplace, Path: "/insurance_company", Value: "Aetna"},
		{Op: OperationReplace, Path: "/address", Value: "1 Main St"},
		{Op: OperationAdd, Path: "/insurance_id_declined", Value: true},
		{Op: OperationReplace, Path: "/step", Value: "COMPLETE"},
	}
	kept, dropped, err := FilterOperations(ops, allowed)
	if err != nil {
		t.Fatalf("FilterOperations: %v", err)
	}
	if len(kept) != 2 || kept[0].Path != "/insurance_company" || kept[1].Path != "/insurance_id_declined" {
		t.Errorf("unexpected kept ops %+v", kept)
	}
	if len(dropped) != 2 || dropped[0].Path != "/address" || dropped[1].Path != "/step" {
		t.Errorf("unexpected dropped ops %+v", dropped)
	}

	remove := []Operation{{Op: "remove", Path: "/insurance_company"}}
	if _, _, err := FilterOperations(remove, allowed); err == nil {
		t.Error("remove should be rejected")
	}
	kept, _, err = FilterOperations(ops, nil)
	if err != nil || len(kept) != 0 {
		t.Errorf("an empty allowed set should permit nothing, got %+v, %v", kept, err)
	}
}

func TestNormalize(t *testing.T) {
	ops := Normalize([]Operation{
		{Op: OperationReplace, Path: "/full_name", Value: "  Jane Doe "},
		{Op: OperationReplace, Path: "/date_of_birth", Value: "   "},
		{Op: OperationReplace, Path: "/insurance_id_declined", Value: true},
		{Op: OperationReplace, Path: "/insurance_id", Value: float64(123456)},
		{Op: OperationReplace, Path: "/insurance_company", Value: json.Number("42")},
	})
	if len(ops) != 4 {
		t.Fatalf("expected blank value dropped, got %+v", ops)
	}
	if ops[0].Value != "Jane Doe" {
		t.Errorf("value not trimmed: %q", ops[0].Value)
	}
	if ops[1].Value != true {
		t.Errorf("boolean field must stay boolean, got %#v", ops[1].Value)
	}
	if ops[2].Value != "123456" {
		t.Errorf("numeric ID not converted: %#v", ops[2].Value)
	}
	if ops[3].Value != "42" {
		t.Errorf("json.Number not converted: %#v", ops[3].Value)
	}
}

func TestApplyRFC6902(t *testing.T) {
	r := types.NewRecord()
	r.Step = types.StepInsurance
	updated, err := ApplyRFC6902(r, []Operation{
		{Op: OperationReplace, Path: "/insurance_company", Value: "None"},
		{Op: OperationReplace, Path: "/insurance_id_declined", Value: true},
	})
	if err != nil {
		t.Fatalf("ApplyRFC6902: %v", err)
	}
	if updated.InsuranceCompany != "None" || !updated.InsuranceIDDeclined {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Step != types.StepInsurance || updated.AssignedPhysician != types.DefaultPhysician {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if r.InsuranceCompany != "" {
		t.Error("input record must not be modified")
	}

	if _, err := ApplyRFC6902(r, []Operation{{Op: OperationReplace, Path: "/insurance_id_declined", Value: "yes"}}); err == nil {
		t.Error("type mismatch should fail")
	}
}

func TestToolBasedExtractor(t *testing.T) {
	cm := testcases.NewChatModel(testcases.ToolCall(updateRecordToolName,
		`{"ops":[{"op":"replace","path":"/full_name","value":" Jane Doe "}]}`))
	ex, err := NewToolBasedExtractor(cm)
	if err != nil {
		t.Fatalf("NewToolBasedExtractor: %v", err)
	}
	req := &types.ToolRequest{
		Record:      types.NewRecord(),
		MessagePair: types.MessagePair{Question: "What's your full name?", Answer: "Jane Doe"},
		Fields:      types.StepFields(types.StepName),
	}
	args, err := ex.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(args.Ops) != 1 || args.Ops[0].Value != "Jane Doe" {
		t.Errorf("unexpected ops %+v", args.Ops)
	}

	calls := cm.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one model call, got %d", len(calls))
	}
	prompt := calls[0].Input[1].Content
	if !strings.Contains(prompt, "Intake record schema JSON") {
		t.Errorf("schema missing from prompt:\n%s", prompt)
	}
	if req.RecordSchema != "" {
		t.Error("caller request must not be modified")
	}
}

func TestToolBasedExtractorDropsForeignPaths(t *testing.T) {
	cm := testcases.NewChatModel(testcases.ToolCall(updateRecordToolName,
		`{"ops":[{"op":"replace","path":"/full_name","value":"Jane Doe"},{"op":"replace","path":"/date_of_birth","value":"01/02/1990"},{"op":"replace","path":"/appointment_time","value":"10:00 AM Monday"}]}`))
	ex, err := NewToolBasedExtractor(cm)
	if err != nil {
		t.Fatalf("NewToolBasedExtractor: %v", err)
	}
	args, err := ex.Extract(context.Background(), &types.ToolRequest{Record: types.NewRecord()})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(args.Ops) != 1 || args.Ops[0].Path != "/full_name" {
		t.Fatalf("expected only /full_name kept, got %+v", args.Ops)
	}
	updated, err := ApplyRFC6902(types.NewRecord(), args.Ops)
	if err != nil {
		t.Fatalf("ApplyRFC6902: %v", err)
	}
	if updated.FullName != "Jane Doe" || updated.DateOfBirth != "" || updated.AppointmentTime != "" {
		t.Errorf("unexpected record %+v", updated)
	}
}

func TestToolBasedExtractorRejectsUnsupportedOps(t *testing.T) {
	cm := testcases.NewChatModel(testcases.ToolCall(updateRecordToolName,
		`{"ops":[{"op":"remove","path":"/full_name"}]}`))
	ex, err := NewToolBasedExtractor(cm)
	if err != nil {
		t.Fatalf("NewToolBasedExtractor: %v", err)
	}
	if _, err := ex.Extract(context.Background(), &types.ToolRequest{Record: types.NewRecord()}); err == nil {
		t.Error("remove operation should fail extraction")
	}
}

func TestToolBasedExtractorNumericInsuranceID(t *testing.T) {
	cm := testcases.NewChatModel(testcases.ToolCall(updateRecordToolName,
		`{"ops":[{"op":"replace","path":"/insurance_id","value":123456}]}`))
	ex, err := NewToolBasedExtractor(cm)
	if err != nil {
		t.Fatalf("NewToolBasedExtractor: %v", err)
	}
	r := types.NewRecord()
	r.Step = types.StepInsuranceID
	args, err := ex.Extract(context.Background(), &types.ToolRequest{Record: r})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	updated, err := ApplyRFC6902(r, args.Ops)
	if err != nil {
		t.Fatalf("ApplyRFC6902: %v", err)
	}
	if updated.InsuranceID != "123456" {
		t.Errorf("insurance ID = %q, want %q", updated.InsuranceID, "123456")
	}
}
