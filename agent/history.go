package agent

import "github.com/cloudwego/eino/schema"

// appendHistory appends msgs in order, skipping nils. Consecutive
// duplicates are kept: the transcript is a faithful log.
func appendHistory(history []*schema.Message, msgs ...*schema.Message) []*schema.Message {
	for _, msg := range msgs {
		if msg != nil {
			history = append(history, msg)
		}
	}
	return history
}

// lastAssistantMessage returns the content of the most recent assistant
// turn, or "" if there is none.
func lastAssistantMessage(history []*schema.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if m := history[i]; m != nil && m.Role == schema.Assistant {
			return m.Content
		}
	}
	return ""
}
