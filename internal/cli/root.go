// Package cli holds the bookstore command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "bookstore",
	Short:        "Bookstore catalog API",
	SilenceUsage: true,
	Long: `Bookstore catalog API and its maintenance tasks. Usage:

	bookstore serve
	bookstore migrate up
	bookstore seed
	bookstore mail-worker
`,
}

// Execute runs the command tree until it finishes or SIGINT/SIGTERM arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
