// Package testcases holds the scripted chat model shared by package tests
// and the opt-in live conversation tests.
package testcases

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var ErrNoScriptedReply = errors.New("no scripted reply left")

type Reply struct {
	Message *schema.Message
	Err     error
}

type Call struct {
	Input   []*schema.Message
	Options *model.Options
}

// ChatModel replays scripted replies in order and records every call.
type ChatModel struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Call
}

var _ model.ToolCallingChatModel = (*ChatModel)(nil)

func NewChatModel(replies ...Reply) *ChatModel {
	return &ChatModel{replies: replies}
}

func Text(content string) Reply {
	return Reply{Message: schema.AssistantMessage(content, nil)}
}

func ToolCall(name, arguments string) Reply {
	return Reply{Message: schema.AssistantMessage("", []schema.ToolCall{{
		ID: "call_1",
		Function: schema.FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}})}
}

func Fail(err error) Reply {
	return Reply{Err: err}
}

func (m *ChatModel) Script(replies ...Reply) {
	m.mu.Lock()
	m.replies = append(m.replies, replies...)
	m.mu.Unlock()
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]*schema.Message, len(input))
	copy(copied, input)
	m.calls = append(m.calls, Call{Input: copied, Options: model.GetCommonOptions(nil, opts...)})
	if len(m.replies) == 0 {
		return nil, ErrNoScriptedReply
	}
	next := m.replies[0]
	m.replies = m.replies[1:]
	return next.Message, next.Err
}

func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *ChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func (m *ChatModel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Pending reports how many scripted replies were not consumed.
func (m *ChatModel) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.replies)
}

// InitChatModel builds a real OpenAI chat model for live tests. It skips
// the test unless INTAKEAGENT_RUN_LIVE_TESTS=1 and OPENAI_API_KEY are set.
func InitChatModel(t *testing.T) *openai.ChatModel {
	t.Helper()
	if os.Getenv("INTAKEAGENT_RUN_LIVE_TESTS") != "1" {
		t.Skip("set INTAKEAGENT_RUN_LIVE_TESTS=1 to run live LLM tests")
		return nil
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY is empty")
		return nil
	}
	modelName := os.Getenv("OPENAI_MODEL")
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	chatModel, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		APIKey:  apiKey,
		Model:   modelName,
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	})
	if err != nil {
		t.Fatalf("failed to init chat model: %v", err)
		return nil
	}
	return chatModel
}
