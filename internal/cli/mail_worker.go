package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/transport/mail"
)

var mailWorkerCmd = &cobra.Command{
	Use:   "mail-worker",
	Short: "Deliver queued password reset emails over SMTP",
	Long: `Consumes the MAIL_QUEUE queue on RABBITMQ_URL and sends each password
reset email through the configured SMTP server. Run it when the API uses
MAIL_DELIVERY=queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx := newContainer(cmd.Context())
		defer c.Close()

		broker, err := c.openBroker()
		if err != nil {
			return err
		}
		worker := mail.NewWorker(broker, c.cfg.MailQueue, c.smtpMailer())
		c.logger.Info().Str("queue", c.cfg.MailQueue).Msg("mail worker started")
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		c.logger.Info().Msg("mail worker stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mailWorkerCmd)
}
