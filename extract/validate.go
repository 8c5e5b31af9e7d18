package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tbxark/intakeagent/types"
)

// booleanPaths are the only record pointers that do not hold strings.
var booleanPaths = map[string]bool{
	types.FieldInsuranceIDDeclined.JSONPointer: true,
}

// FilterOperations splits ops into those touching an allowed path and
// those that do not. An empty allowed set permits nothing. Only ops other
// than add/replace are an error.
func FilterOperations(ops []Operation, allowed []string) (kept, dropped []Operation, err error) {
	allowedSet := make(map[string]bool, len(allowed))
	for _, p := range allowed {
		allowedSet[p] = true
	}
	for i, op := range ops {
		switch op.Op {
		case OperationAdd, OperationReplace:
		default:
			return nil, nil, fmt.Errorf("operation %d: unsupported op %q", i, op.Op)
		}
		if allowedSet[op.Path] {
			kept = append(kept, op)
		} else {
			dropped = append(dropped, op)
		}
	}
	return kept, dropped, nil
}

// Normalize coerces values to the record's field types and drops
// operations that would write an empty string. Numbers bound for string
// fields become their decimal text.
func Normalize(ops []Operation) []Operation {
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if !booleanPaths[op.Path] {
			op.Value = stringify(op.Value)
		}
		if s, ok := op.Value.(string); ok {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			op.Value = s
		}
		out = append(out, op)
	}
	return out
}

func stringify(v any) any {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case json.Number:
		return n.String()
	default:
		return v
	}
}
