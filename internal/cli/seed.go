package cli

import (
	"github.com/spf13/cobra"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the starter categories and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx := newContainer(cmd.Context())
		defer c.Close()
		conn, err := c.openDB(ctx)
		if err != nil {
			return err
		}
		return db.Seed(ctx, conn, c.cfg.UploadPublicPrefix)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
