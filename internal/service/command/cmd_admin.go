package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/deskbot/internal/core"
)

type AdminCommand struct {
	formatter *ResponseFormatter
}

func NewAdminCommand() *AdminCommand {
	return &AdminCommand{formatter: NewResponseFormatter()}
}

func (c *AdminCommand) Name() string        { return "admin" }
func (c *AdminCommand) Description() string { return "Панель администратора" }

func (c *AdminCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Панель администратора:"),
		"/set_mode <mode> - Сменить режим бота\n"+
			"/modes - Список доступных режимов\n"+
			"/set_admin - Узнать ID чата для конфига",
	), nil
}

type SetAdminCommand struct{}

func NewSetAdminCommand() *SetAdminCommand {
	return &SetAdminCommand{}
}

func (c *SetAdminCommand) Name() string        { return "set_admin" }
func (c *SetAdminCommand) Description() string { return "Узнать ID чата для конфига" }

func (c *SetAdminCommand) Execute(_ context.Context, userID string, _ []string) (string, error) {
	return fmt.Sprintf("ID этого чата: `%s`.\n"+
		"Добавьте эту строку в ваш .env файл:\n"+
		"ADMIN_CHAT_ID=%s\n"+
		"Затем перезапустите бота.", userID, userID), nil
}

// adminOnly restricts cmd to adminID. With no admin configured everyone
// passes, so the first operator can bootstrap the bot.
type adminOnly struct {
	core.Command
	adminID string
}

func AdminOnly(cmd core.Command, adminID string) core.Command {
	return &adminOnly{Command: cmd, adminID: adminID}
}

func (a *adminOnly) Execute(ctx context.Context, userID string, args []string) (string, error) {
	if a.adminID != "" && userID != a.adminID {
		return "", userError("Команда доступна только администратору.", nil)
	}
	return a.Command.Execute(ctx, userID, args)
}
