package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
)

type Services struct {
	Auth       *service.AuthService
	Categories *service.CategoryService
	Products   *service.ProductService
	Uploads    *service.UploadService
}

type RouteOptions struct {
	AuthRateLimit        float64
	AuthRateBurst        int
	ProtectCatalogWrites bool
	// StaticDir is served under StaticPrefix when the local storage backend
	// is in use. Empty disables it.
	StaticDir    string
	StaticPrefix string
}

func NewRouter(logger zerolog.Logger, allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	allowCredentials := true
	for _, origin := range allowOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	registerLogging(e, logger)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: allowCredentials,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	return e
}

// RegisterRoutes mounts every API route on e.
func RegisterRoutes(e *echo.Echo, s Services, opts RouteOptions) {
	requireAuth := RequireAuth(s.Auth)
	var catalogGuard echo.MiddlewareFunc
	if opts.ProtectCatalogWrites {
		catalogGuard = requireAuth
	}

	RegisterAuth(e, s.Auth, RateLimit(opts.AuthRateLimit, opts.AuthRateBurst))
	RegisterCategories(e, s.Categories, catalogGuard)
	RegisterProducts(e, s.Products, catalogGuard)
	RegisterUploads(e, s.Uploads, requireAuth)
	RegisterSwagger(e)

	if opts.StaticDir != "" {
		prefix := "/" + strings.Trim(opts.StaticPrefix, "/")
		if prefix == "/" {
			prefix = "/upload"
		}
		e.Static(prefix, opts.StaticDir)
	}
}
