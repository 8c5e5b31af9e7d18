package agent

import (
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/tbxark/intakeagent/types"
)

// Session is the caller-owned state of one conversation. It is not safe
// for concurrent use.
type Session struct {
	ID      string
	Record  types.Record
	History []*schema.Message
}

// NewSession starts a conversation at the first step with the welcome
// message as the opening assistant turn.
func NewSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Record:  types.NewRecord(),
		History: []*schema.Message{schema.AssistantMessage(WelcomeMessage, nil)},
	}
}

func (s *Session) Completed() bool {
	return s.Record.Step.Terminal()
}
