package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/redis"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
	httpx "github.com/njprem/Bookstore_APP_BackEnd/internal/transport/http"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctx := newContainer(cmd.Context())
		defer c.Close()
		return serve(ctx, c)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, c *container) error {
	cfg := c.cfg
	logger := c.logger

	db, err := c.openDB(ctx)
	if err != nil {
		return err
	}
	storage, staticDir, err := c.openStorage(ctx)
	if err != nil {
		return err
	}
	sender, err := c.resetSender()
	if err != nil {
		return err
	}

	var cache ports.CategoryCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		c.onClose(rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, category cache disabled")
		} else {
			cache = redis.NewCategoryCache(rdb, cfg.CategoryCacheTTL)
		}
	}

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	services := httpx.Services{
		Auth: service.NewAuthService(
			postgres.NewUserRepo(db),
			postgres.NewPasswordResetRepo(db),
			sender,
			jwtManager,
			cfg.PasswordResetTTL,
			cfg.PasswordResetOTPLength,
		),
		Categories: service.NewCategoryService(postgres.NewCategoryRepo(db), cache),
		Products:   service.NewProductService(postgres.NewProductRepo(db)),
		Uploads:    service.NewUploadService(storage, cfg.UploadMaxBytes),
	}

	e := httpx.NewRouter(logger, cfg.AllowOrigins)
	httpx.RegisterRoutes(e, services, httpx.RouteOptions{
		AuthRateLimit:        cfg.AuthRateLimit,
		AuthRateBurst:        cfg.AuthRateBurst,
		ProtectCatalogWrites: cfg.ProtectCatalogWrites,
		StaticDir:            staticDir,
		StaticPrefix:         cfg.UploadPublicPrefix,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("storage", cfg.StorageBackend).
			Str("mail_delivery", cfg.MailDelivery).
			Bool("category_cache", cache != nil).
			Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
