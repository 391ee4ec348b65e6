package main

import (
	"fmt"

	"github.com/sandevgo/deskbot/internal/storage/sqlite"
	"github.com/sandevgo/deskbot/pkg/log"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Load the service catalog into the database",
	Long:         `Upserts services from services.yaml (runtime dir, or --file) into the catalog table.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := loadAppConfig(ctx)
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		path := seedFile
		if path == "" {
			path = appCfg.GetServicesPath()
		}

		services, err := sqlite.LoadServices(path)
		if err != nil {
			return err
		}

		n, err := sqlite.NewCatalogRepo(db).Seed(ctx, services)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}

		log.FromCtx(ctx).Info().Int("services", n).Str("path", path).Msg("catalog seeded")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "services yaml to load")
	rootCmd.AddCommand(seedCmd)
}
