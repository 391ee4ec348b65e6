package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/deskbot/internal/core"
)

const WelcomeText = "Привет! Я виртуальный секретарь разработчика.\n" +
	"Я могу рассказать о наших услугах, сориентировать по ценам и принять заявку.\n" +
	"Используйте кнопки меню для навигации или просто напишите ваш вопрос."

// Sessions is the per-user conversation state the commands manage.
type Sessions interface {
	Clear(userID string)
	Reset(userID string)
	Profile(ctx context.Context, userID string) (*core.ContactRecord, error)
}

type StartCommand struct {
	sessions Sessions
}

func NewStartCommand(sessions Sessions) *StartCommand {
	return &StartCommand{sessions: sessions}
}

func (c *StartCommand) Name() string        { return "start" }
func (c *StartCommand) Description() string { return "Начать диалог заново" }

func (c *StartCommand) Execute(_ context.Context, userID string, _ []string) (string, error) {
	c.sessions.Reset(userID)
	return WelcomeText, nil
}

type ClearCommand struct {
	sessions Sessions
}

func NewClearCommand(sessions Sessions) *ClearCommand {
	return &ClearCommand{sessions: sessions}
}

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Description() string { return "Очистить историю диалога" }

func (c *ClearCommand) Execute(_ context.Context, userID string, _ []string) (string, error) {
	c.sessions.Clear(userID)
	return "🧹 История диалога очищена.", nil
}

const NoProfileText = "❌ У меня нет ваших сохраненных данных."

type ProfileCommand struct {
	sessions  Sessions
	formatter *ResponseFormatter
}

func NewProfileCommand(sessions Sessions) *ProfileCommand {
	return &ProfileCommand{sessions: sessions, formatter: NewResponseFormatter()}
}

func (c *ProfileCommand) Name() string        { return "profile" }
func (c *ProfileCommand) Description() string { return "Мои сохраненные данные" }

func (c *ProfileCommand) Execute(ctx context.Context, userID string, _ []string) (string, error) {
	rec, err := c.sessions.Profile(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	if rec == nil {
		return NoProfileText, nil
	}
	return c.formatter.Combine(
		"👤 **Ваш профиль:**\n",
		c.formatter.Label("Имя", rec.Name)+c.formatter.Label("Телефон", rec.Phone),
	), nil
}
