package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/deskbot/internal/service/command"
	"github.com/sandevgo/deskbot/internal/transport/cli"
	"github.com/sandevgo/deskbot/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Talk to the bot in the terminal",
	Long:         `Runs the conversation core against a local readline session. Leads cannot be forwarded without an operator chat.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := loadAppConfig(ctx)
		st, err := initStorage(ctx, appCfg)
		if err != nil {
			return err
		}
		defer closeAll(ctx, st.cleanups)

		desk, modes := newDesk(ctx, appCfg, st, nil)
		router := command.NewRouter(desk, modes, "")

		rl, err := cli.NewReadLine(desk, router, appCfg)
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func closeAll(ctx context.Context, services []srv.Service) {
	for i := len(services) - 1; i >= 0; i-- {
		_ = services[i].Shutdown(context.WithoutCancel(ctx))
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
