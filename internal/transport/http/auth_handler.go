package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, limiter echo.MiddlewareFunc) {
	h := &AuthHandler{auth: auth}
	g := e.Group("/api/auth", limiter)
	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if _, err := h.auth.Signup(c.Request().Context(), req.Email, req.Password); err != nil {
		return writeError(c, err, "Signup failed")
	}
	return c.JSON(http.StatusCreated, util.Message("User registered successfully"))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err, "Login failed")
	}
	return c.JSON(http.StatusOK, AuthTokenResponse{
		Token:     res.Token,
		ExpiresAt: formatTime(res.ExpiresAt),
		User:      toAuthUser(res.User),
	})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err, "Failed to send OTP email")
	}
	return c.JSON(http.StatusOK, util.Message("OTP sent to email"))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return writeError(c, err, "Password reset failed")
	}
	return c.JSON(http.StatusOK, util.Message("Password reset successful"))
}
