package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/transport/mcp"
	"github.com/sandevgo/deskbot/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve bookings and the catalog over MCP stdio",
	Long:         `Starts a Model Context Protocol server on stdin/stdout with read-only operator tools.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries the protocol, logs go to stderr
		var flushLog func()
		ctx, flushLog = log.NewContextWithWriter(ctx, debug || config.IsDebug(), os.Stderr)
		defer flushLog()

		appCfg := loadAppConfig(ctx)
		st, err := initStorage(ctx, appCfg)
		if err != nil {
			return err
		}
		defer closeAll(ctx, st.cleanups)

		server := mcp.NewServer(st.catalog, st.bookings, st.contacts)
		log.FromCtx(ctx).Debug().Msg("serving mcp over stdio")
		return server.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
