package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fichaje/workday-api/internal/core/ports"
)

// AdminHandler serves the /admin routes. Authorization is enforced by the
// RequireAdmin middleware on the group.
type AdminHandler struct {
	users    ports.UserService
	workdays ports.WorkdayService
}

func NewAdminHandler(users ports.UserService, workdays ports.WorkdayService) *AdminHandler {
	return &AdminHandler{users: users, workdays: workdays}
}

// ListUsers handles GET /admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Param        X-User-DNI  header    string  true  "Admin DNI"
// @Success      200         {object}  usersResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Success: true, Users: users})
}

// RegisterUser handles POST /admin/register_user.
//
// @Summary      Register a new user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-User-DNI  header    string               true  "Admin DNI"
// @Param        body        body      registerUserRequest  true  "New account; role defaults to user"
// @Success      201         {object}  messageResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      409         {object}  ErrorResponse
// @Router       /admin/register_user [post]
func (h *AdminHandler) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.users.Register(c.Request().Context(), req.DNI, req.Password, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ok("user registered"))
}

// UpdateUser handles PUT /admin/user/:dni.
//
// @Summary      Change a user's password and/or role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-User-DNI  header    string             true  "Admin DNI"
// @Param        dni         path      string             true  "DNI of the user to update"
// @Param        body        body      updateUserRequest  true  "Fields to change"
// @Success      200         {object}  messageResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /admin/user/{dni} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	dni := c.Param("dni")
	err := h.users.Update(c.Request().Context(), dni, ports.UpdateUserInput{
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("user "+dni+" updated"))
}

// DeleteUser handles DELETE /admin/user/:dni. The user's workdays are removed
// with it.
//
// @Summary      Delete a user and all of their workdays
// @Tags         admin
// @Produce      json
// @Param        X-User-DNI  header    string  true  "Admin DNI"
// @Param        dni         path      string  true  "DNI of the user to delete"
// @Success      200         {object}  messageResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /admin/user/{dni} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	dni := c.Param("dni")
	if err := h.users.Delete(c.Request().Context(), dni); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("user "+dni+" deleted"))
}

// AllWorkdays handles GET /admin/all_workdays.
//
// @Summary      List every user's workdays
// @Tags         admin
// @Produce      json
// @Param        X-User-DNI  header    string  true  "Admin DNI"
// @Success      200         {object}  workdaysResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      403         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /admin/all_workdays [get]
func (h *AdminHandler) AllWorkdays(c echo.Context) error {
	list, err := h.workdays.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workdaysResponse{Success: true, Workdays: list})
}
