package cli

import (
	"github.com/spf13/cobra"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := newContainer(cmd.Context())
		defer c.Close()
		if err := db.MigrateUp(c.cfg.Database.DSN()); err != nil {
			return err
		}
		c.logger.Info().Msg("migrations applied")
		return nil
	},
}

var migrateDownSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := newContainer(cmd.Context())
		defer c.Close()
		if err := db.MigrateDown(c.cfg.Database.DSN(), migrateDownSteps); err != nil {
			return err
		}
		c.logger.Info().Int("steps", migrateDownSteps).Msg("migrations rolled back")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back, 0 for all")
}
