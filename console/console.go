// Package console runs an intake conversation over a line-oriented
// reader and writer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tbxark/intakeagent/agent"
	"github.com/tbxark/intakeagent/command"
)

const Banner = "Chatbot started! Type 'quit' to exit."

// Handler is the part of agent.Orchestrator the console needs.
type Handler interface {
	Handle(ctx context.Context, s *agent.Session, message string) (*agent.Response, error)
}

type Console struct {
	handler  Handler
	commands command.Parser
	in       *bufio.Scanner
	out      io.Writer
}

type Option func(*Console)

// WithCommandParser replaces the default quit-keyword parser.
func WithCommandParser(p command.Parser) Option {
	return func(c *Console) {
		c.commands = p
	}
}

func New(handler Handler, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		handler:  handler,
		commands: command.NewLocalCommandParser(),
		in:       bufio.NewScanner(in),
		out:      out,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Run drives one session until the patient quits or input ends. The
// returned session holds whatever was collected.
func (c *Console) Run(ctx context.Context) (*agent.Session, error) {
	session := agent.NewSession()
	slog.Info("Session started", "session", session.ID)
	defer func() {
		slog.Info("Session ended", "session", session.ID, "step", session.Record.Step, "completed", session.Completed())
	}()

	if _, err := fmt.Fprintf(c.out, "%s\n\nBot: %s\n", Banner, agent.WelcomeMessage); err != nil {
		return session, err
	}
	for {
		if _, err := fmt.Fprint(c.out, "You: "); err != nil {
			return session, err
		}
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return session, fmt.Errorf("read input: %w", err)
			}
			_, _ = fmt.Fprintln(c.out)
			return session, nil
		}
		input := strings.TrimRight(c.in.Text(), "\r")

		cmd, err := c.commands.ParseCommand(ctx, input)
		if err != nil {
			slog.Warn("Command parsing failed", "error", err)
		} else if cmd == command.Quit {
			return session, nil
		}

		resp, err := c.handler.Handle(ctx, session, input)
		if err != nil {
			return session, err
		}
		if resp.Err != nil && !errors.Is(resp.Err, agent.ErrCollaboratorFailure) {
			slog.Debug("Input rejected", "session", session.ID, "error", resp.Err)
		}
		if _, err := fmt.Fprintf(c.out, "Bot: %s\n", resp.Message); err != nil {
			return session, err
		}
	}
}
