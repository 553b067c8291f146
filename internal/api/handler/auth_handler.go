package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tradingportal/companies-api/internal/core/domain"
	"github.com/tradingportal/companies-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type googleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

type authResponse struct {
	Access  string       `json:"access,omitempty"`
	Refresh string       `json:"refresh,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates with email and password and returns a token pair.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Access: pair.Access, Refresh: pair.Refresh, User: user})
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh JWT tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// GoogleLogin authenticates via a Google authorization code.
//
// @Summary      Login with Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Google authorization code"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.authService.GoogleLogin(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Access: pair.Access, Refresh: pair.Refresh, User: user})
}
