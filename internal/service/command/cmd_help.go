package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

type HelpCommand struct {
	list func() []core.Command
}

// NewHelpCommand lists whatever list returns at call time, so it can be
// registered in the router it describes.
func NewHelpCommand(list func() []core.Command) *HelpCommand {
	return &HelpCommand{list: list}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Справка" }

func (c *HelpCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("📋 **Доступные команды:**\n\n")
	for _, cmd := range c.list() {
		if _, admin := cmd.(*adminOnly); admin {
			continue
		}
		sb.WriteString(fmt.Sprintf("/%s - %s\n", cmd.Name(), cmd.Description()))
	}
	return strings.TrimSpace(sb.String()), nil
}
