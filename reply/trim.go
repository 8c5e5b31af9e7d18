package reply

import "github.com/cloudwego/eino/schema"

// Trimmer selects the part of a transcript replayed to the model.
type Trimmer interface {
	Trim(history []*schema.Message) []*schema.Message
}

// KeepSystemLastNTrimmer keeps every system message plus the newest N
// other messages, in their original order. N <= 0 keeps everything.
type KeepSystemLastNTrimmer struct {
	N int
}

func (t KeepSystemLastNTrimmer) Trim(history []*schema.Message) []*schema.Message {
	if t.N <= 0 {
		return history
	}

	keep := make([]bool, len(history))
	budget := t.N
	dropped := false
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		switch {
		case m == nil:
			dropped = true
		case m.Role == schema.System:
			keep[i] = true
		case budget > 0:
			keep[i] = true
			budget--
		default:
			dropped = true
		}
	}
	if !dropped {
		return history
	}

	out := make([]*schema.Message, 0, len(history))
	for i, m := range history {
		if keep[i] {
			out = append(out, m)
		}
	}
	return out
}
