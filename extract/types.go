// Package extract asks the language model which intake fields the
// patient's latest answer fills, expressed as RFC6902 patch operations.
package extract

import (
	"context"

	"github.com/tbxark/intakeagent/types"
)

const (
	OperationAdd     = "add"
	OperationReplace = "replace"
)

type Operation struct {
	Op    string `json:"op" jsonschema:"required,enum=add,enum=replace,description=Patch operation"`
	Path  string `json:"path" jsonschema:"required,description=JSON pointer of the field to set"`
	Value any    `json:"value,omitempty" jsonschema:"description=New field value"`
}

type UpdateArgs struct {
	Ops []Operation `json:"ops" jsonschema:"required,description=Operations for the fields the patient's answer provides; empty when nothing usable was said"`
}

type Extractor interface {
	Extract(ctx context.Context, req *types.ToolRequest) (*UpdateArgs, error)
}
