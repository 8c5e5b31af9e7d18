package extract

import (
	"fmt"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyRFC6902 applies ops to a JSON round trip of current and decodes the
// result back into T. current is never modified.
func ApplyRFC6902[T any](current T, ops []Operation) (T, error) {
	var zero T

	if len(ops) == 0 {
		return current, nil
	}

	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal current state: %w", err)
	}

	ops = fixOperations(currentJSON, ops)

	patchJSON, err := sonic.Marshal(ops)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal patch operations: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to apply patch: %w", err)
	}

	var result T
	if err := sonic.Unmarshal(modifiedJSON, &result); err != nil {
		return zero, fmt.Errorf("type mismatch: patch would result in invalid record: %w", err)
	}

	return result, nil
}

// fixOperations turns replace into add for top-level keys the document
// does not have yet, which models confuse often.
func fixOperations(currentJSON []byte, ops []Operation) []Operation {
	var doc map[string]any
	if err := sonic.Unmarshal(currentJSON, &doc); err != nil {
		return ops
	}
	fixed := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if op.Op == OperationReplace {
			if _, ok := doc[pointerKey(op.Path)]; !ok {
				op.Op = OperationAdd
			}
		}
		fixed = append(fixed, op)
	}
	return fixed
}

func pointerKey(path string) string {
	if len(path) == 0 || path[0] != '/' {
		return path
	}
	return unescapePointer(path[1:])
}

func unescapePointer(token string) string {
	out := make([]byte, 0, len(token))
	for i := 0; i < len(token); i++ {
		if token[i] == '~' && i+1 < len(token) {
			switch token[i+1] {
			case '0':
				out = append(out, '~')
				i++
				continue
			case '1':
				out = append(out, '/')
				i++
				continue
			}
		}
		out = append(out, token[i])
	}
	return string(out)
}
