package telegram

import (
	"context"

	"github.com/sandevgo/deskbot/internal/core"
)

const feedbackCommandName = "feedback"

// feedbackCommand lists /feedback in help. The bot intercepts the command
// itself since it switches the chat into feedback mode.
type feedbackCommand struct{}

func NewFeedbackCommand() core.Command {
	return feedbackCommand{}
}

func (feedbackCommand) Name() string        { return feedbackCommandName }
func (feedbackCommand) Description() string { return "Написать администратору" }

func (feedbackCommand) Execute(context.Context, string, []string) (string, error) {
	return textFeedbackPrompt, nil
}
