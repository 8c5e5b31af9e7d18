// Package command recognizes console control words typed instead of an answer.
package command

import "context"

type Command string

const (
	Quit Command = "quit"
	None Command = "none"
)

type Parser interface {
	ParseCommand(ctx context.Context, input string) (Command, error)
}
