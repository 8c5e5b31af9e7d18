// Package reply produces the assistant's conversational turns.
package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var ErrEmptyReply = errors.New("model returned an empty reply")

// DefaultTemperature keeps replies close to the scripted intake flow.
const DefaultTemperature float32 = 0.3

type Request struct {
	History []*schema.Message
	Message string

	// Guidance is an optional system note placed right after the system
	// prompt, ahead of the transcript.
	Guidance string
}

type Generator interface {
	GenerateReply(ctx context.Context, req *Request) (string, error)
}

type ChatModelGenerator struct {
	systemPrompt string
	chatModel    model.BaseChatModel
	modelOptions []model.Option
	window       Trimmer
}

type generatorOptions struct {
	temperature  float32
	modelOptions []model.Option
	window       Trimmer
}

type GeneratorOption func(*generatorOptions)

func WithTemperature(t float32) GeneratorOption {
	return func(o *generatorOptions) {
		o.temperature = t
	}
}

func WithModelOptions(opts ...model.Option) GeneratorOption {
	return func(o *generatorOptions) {
		o.modelOptions = append(o.modelOptions, opts...)
	}
}

// WithHistoryWindow limits how much history is replayed to the model.
// Stored history is never trimmed.
func WithHistoryWindow(t Trimmer) GeneratorOption {
	return func(o *generatorOptions) {
		o.window = t
	}
}

func NewChatModelGenerator(chatModel model.BaseChatModel, systemPrompt string, opts ...GeneratorOption) *ChatModelGenerator {
	options := generatorOptions{temperature: DefaultTemperature}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	modelOptions := append([]model.Option{model.WithTemperature(options.temperature)}, options.modelOptions...)
	return &ChatModelGenerator{
		systemPrompt: systemPrompt,
		chatModel:    chatModel,
		modelOptions: modelOptions,
		window:       options.window,
	}
}

func (g *ChatModelGenerator) GenerateReply(ctx context.Context, req *Request) (string, error) {
	messages := g.buildPrompt(req)
	response, err := g.chatModel.Generate(ctx, messages, g.modelOptions...)
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", ErrEmptyReply
	}
	return response.Content, nil
}

// buildPrompt returns system prompt, guidance, prior history, then the new user message.
func (g *ChatModelGenerator) buildPrompt(req *Request) []*schema.Message {
	history := req.History
	if g.window != nil {
		history = g.window.Trim(history)
	}
	messages := make([]*schema.Message, 0, len(history)+3)
	messages = append(messages, schema.SystemMessage(g.systemPrompt))
	if req.Guidance != "" {
		messages = append(messages, schema.SystemMessage(req.Guidance))
	}
	for _, m := range history {
		if m != nil {
			messages = append(messages, m)
		}
	}
	messages = append(messages, schema.UserMessage(req.Message))
	return messages
}
