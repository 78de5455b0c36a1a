package http

import (
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

const (
	contextUserKey   = "auth.user"
	contextClaimsKey = "auth.claims"
)

// RequireAuth verifies the bearer token and loads the user it belongs to.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey: contextClaimsKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return auth.JWT().Parse(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			zerolog.Ctx(c.Request().Context()).Debug().Err(err).Msg("bearer token rejected")
			return c.JSON(http.StatusUnauthorized, util.Error(service.ErrUnauthorized.Message))
		},
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(loadUser(auth)(next))
	}
}

func loadUser(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(contextClaimsKey).(*util.Claims)
			user, err := auth.UserFromClaims(c.Request().Context(), claims)
			if err != nil {
				return writeError(c, err, service.ErrUnauthorized.Message)
			}
			c.Set(contextUserKey, user)
			ctx := zerolog.Ctx(c.Request().Context()).With().Str("user_id", user.ID.String()).Logger().WithContext(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok && user != nil
}

// RateLimit limits requests per client IP. A non-positive limit disables it.
func RateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if burst < 1 {
		burst = 1
	}
	tooMany := func(c echo.Context) error {
		return c.JSON(http.StatusTooManyRequests, util.Error("Too many requests, please try again later"))
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return tooMany(c)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return tooMany(c)
		},
	})
}
