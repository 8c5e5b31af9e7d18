package command

import (
	"context"
	"strings"
)

type LocalCommandParser struct {
	QuitKeywords []string
}

func NewLocalCommandParser() *LocalCommandParser {
	return &LocalCommandParser{
		QuitKeywords: []string{"quit"},
	}
}

// ParseCommand matches the whole input, case-insensitively, against the
// keyword lists.
func (p *LocalCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	normalized := strings.TrimSpace(input)
	for _, keyword := range p.QuitKeywords {
		if strings.EqualFold(normalized, keyword) {
			return Quit, nil
		}
	}
	return None, nil
}
