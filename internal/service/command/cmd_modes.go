package command

import (
	"context"
	"fmt"
)

type Modes interface {
	List() []string
	Current() string
	SetMode(name string) error
}

type ModesCommand struct {
	modes     Modes
	formatter *ResponseFormatter
}

func NewModesCommand(modes Modes) *ModesCommand {
	return &ModesCommand{modes: modes, formatter: NewResponseFormatter()}
}

func (c *ModesCommand) Name() string        { return "modes" }
func (c *ModesCommand) Description() string { return "Список доступных режимов" }

func (c *ModesCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	return c.formatter.Combine(
		fmt.Sprintf("Текущий режим: **%s**\n", c.modes.Current()),
		"Доступные режимы:\n"+c.formatter.List(c.modes.List()),
	), nil
}

type SetModeCommand struct {
	modes     Modes
	formatter *ResponseFormatter
}

func NewSetModeCommand(modes Modes) *SetModeCommand {
	return &SetModeCommand{modes: modes, formatter: NewResponseFormatter()}
}

func (c *SetModeCommand) Name() string        { return "set_mode" }
func (c *SetModeCommand) Description() string { return "Сменить режим бота" }

func (c *SetModeCommand) Execute(_ context.Context, _ string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/set_mode <mode_name>"), nil
	}

	mode := args[0]
	if err := c.modes.SetMode(mode); err != nil {
		return "", userError(fmt.Sprintf("Режим `%s` не найден.", mode), err)
	}
	return c.formatter.Success(fmt.Sprintf("Режим бота изменен на: **%s**", mode)), nil
}
