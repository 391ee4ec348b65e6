package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, userID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, userID string, args []string) (string, error)
}
