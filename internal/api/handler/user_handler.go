package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"confirm_password" validate:"required"`
	Roles           []string `json:"roles,omitempty"`
}

type updateUserRequest struct {
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	Password        string   `json:"password,omitempty" validate:"omitempty,min=6"`
	ConfirmPassword string   `json:"confirm_password,omitempty"`
	Roles           []string `json:"roles,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// Create is the admin-initiated account creation path; the policy decides
// which role sets the caller may assign.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createUserRequest
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

	user, err := h.userService.Create(c.Request().Context(), acting, ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Roles:           roles,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// List returns all users, paginated.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	users, err := h.userService.FindAll(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListActive returns only active users, paginated.
//
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users/active [get]
func (h *UserHandler) ListActive(c echo.Context) error {
	limit, offset := pagination(c)
	users, err := h.userService.FindAllActive(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get resolves a user by id or email. Non-admin callers may only look
// themselves up.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id or email"
// @Success      200  {object}  domain.User
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	term := c.Param("id")
	user, err := h.userService.FindByIDOrEmail(c.Request().Context(), term)
	if err != nil {
		return err
	}

	if user.ID != acting.ID &&
		!acting.HasRole(domain.RoleAdmin) && !acting.HasRole(domain.RoleSuperAdmin) {
		return domain.ErrForbiddenOperation
	}

	return c.JSON(http.StatusOK, user)
}

// Update applies a partial mutation; the edit policy arbitrates role changes
// and cross-user edits.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// nil roles means "unchanged"; the policy compares against the target's
	// current roles in that case.
	roles, err := domain.ParseRoles(req.Roles)
	if err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), acting, c.Param("id"), ports.UpdateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Roles:           roles,
		IsActive:        req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Delete removes an account; authorized exactly as a role-preserving edit.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), acting, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func pagination(c echo.Context) (limit, offset int64) {
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ = strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	return limit, offset
}
