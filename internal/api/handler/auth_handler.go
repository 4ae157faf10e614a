package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

type registerRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"confirm_password" validate:"required"`
	Roles           []string `json:"roles,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type recoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new account via public self-registration. The creation
// policy limits the roles to exactly [USER]; anything else is rejected.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roles, err := domain.ParseRoles(req.Roles)
	if err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), nil, ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Roles:           roles,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Login authenticates a credential and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Status re-validates the current session and hands back a fresh token.
//
// @Summary      Check session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /auth/status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	token, err := h.authService.CheckStatus(c.Request().Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// RecoverPassword resets an account to a random password delivered by mail.
// The response is deliberately identical whether or not the account exists.
//
// @Summary      Recover password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      recoveryRequest  true  "Account email"
// @Success      202   {object}  map[string]string
// @Router       /auth/recovery-password [patch]
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	var req recoveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.RecoverPassword(c.Request().Context(), req.Email); err != nil {
		// Swallow not-found so the endpoint cannot be used to enumerate
		// accounts; everything else surfaces.
		if err != domain.ErrUserNotFound {
			return err
		}
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "if the account exists, a recovery email has been sent",
	})
}
