package cmd

import (
	"fmt"

	"github.com/sambbaron/tuneful/db"
	"github.com/sambbaron/tuneful/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建或更新数据库表",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Connect(cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close(gdb)

		if err := db.Migrate(gdb); err != nil {
			return err
		}
		logger.Info("Database schema is up to date", logger.String("driver", cfg.DB.Driver))
		fmt.Fprintln(cmd.OutOrStdout(), "Migration complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
