package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/config"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/logging"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/mq"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/gcs"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/local"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/minio"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/transport/mail"
)

// container owns the process-wide resources of one command run.
type container struct {
	cfg     config.Config
	logger  zerolog.Logger
	db      *sqlx.DB
	closers []func() error
}

func newContainer(ctx context.Context) (*container, context.Context) {
	cfg := config.Load()
	logger, logCloser := logging.New(cfg.LogLevel, cfg.LogstashTCPAddr)
	c := &container{cfg: cfg, logger: logger}
	c.onClose(logCloser.Close)
	return c, logger.WithContext(ctx)
}

func (c *container) onClose(fn func() error) {
	c.closers = append(c.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (c *container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.logger.Warn().Err(err).Msg("shutdown: close failed")
		}
	}
}

func (c *container) openDB(ctx context.Context) (*sqlx.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	db, err := postgres.New(ctx, c.cfg.Database.Driver, c.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.db = db
	c.onClose(db.Close)
	return db, nil
}

// openStorage returns the configured upload backend and, for the local one,
// the directory the HTTP server has to serve.
func (c *container) openStorage(ctx context.Context) (ports.ObjectStorage, string, error) {
	cfg := c.cfg
	switch cfg.StorageBackend {
	case "", "local":
		store, err := local.NewStorage(cfg.UploadDir, cfg.UploadPublicPrefix)
		if err != nil {
			return nil, "", fmt.Errorf("local storage: %w", err)
		}
		return store, store.Root(), nil
	case "minio":
		client, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		store := minio.NewStorage(client, cfg.MinIOBucket, cfg.MinIOPublicURL)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, "", fmt.Errorf("minio bucket: %w", err)
		}
		return store, "", nil
	case "gcs":
		store, err := gcs.NewStorage(ctx, gcs.Config{
			Bucket:          cfg.GCSBucket,
			ProjectID:       cfg.GCSProjectID,
			CredentialsFile: cfg.GCSCredentialsFile,
			PublicURL:       cfg.GCSPublicURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("gcs storage: %w", err)
		}
		c.onClose(store.Close)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, "", fmt.Errorf("gcs bucket: %w", err)
		}
		return store, "", nil
	default:
		return nil, "", fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}

func (c *container) smtpMailer() *mail.PasswordResetMailer {
	cfg := c.cfg
	return mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPUseTLS, cfg.PasswordResetTTL)
}

func (c *container) openBroker() (*mq.RabbitMQClient, error) {
	client, err := mq.NewRabbitMQClient(mq.RabbitMQConfig{URL: c.cfg.RabbitMQURL, PrefetchCount: 4})
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	c.onClose(client.Close)
	return client, nil
}

// resetSender picks inline SMTP delivery or the queue drained by mail-worker.
func (c *container) resetSender() (service.PasswordResetSender, error) {
	switch strings.ToLower(c.cfg.MailDelivery) {
	case "", "smtp":
		return c.smtpMailer(), nil
	case "queue":
		broker, err := c.openBroker()
		if err != nil {
			return nil, err
		}
		return mail.NewQueueMailer(broker, c.cfg.MailQueue), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_DELIVERY %q", c.cfg.MailDelivery)
	}
}
