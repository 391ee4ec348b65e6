package command

import (
	"github.com/sandevgo/deskbot/internal/core"
)

// NewRouter wires the commands shared by every transport plus the
// transport's own extra commands. adminID restricts the operator
// commands; empty leaves them open.
func NewRouter(sessions Sessions, modes Modes, adminID string, extra ...core.Command) *Router {
	r := New(extra)
	for _, cmd := range []core.Command{
		NewStartCommand(sessions),
		NewClearCommand(sessions),
		NewProfileCommand(sessions),
		NewHelpCommand(r.ListCommands),
		AdminOnly(NewSetAdminCommand(), adminID),
		AdminOnly(NewAdminCommand(), adminID),
		AdminOnly(NewModesCommand(modes), adminID),
		AdminOnly(NewSetModeCommand(modes), adminID),
	} {
		r.commands[cmd.Name()] = cmd
	}
	return r
}
