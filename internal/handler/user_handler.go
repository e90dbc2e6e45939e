package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"userhub/internal/errors"
	"userhub/internal/model"
	"userhub/internal/service"
)

// UserHandler bundles user record HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserResponse wraps a mutated record with a human-readable message.
type UserResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// ListUsersResponse is one page of records plus pagination totals.
type ListUsersResponse struct {
	Users       []model.User `json:"users"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	TotalUsers  int64        `json:"totalUsers"`
}

func writeError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// CreateUser godoc
// @Summary Create a user record
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.CreateUserInput true "User payload"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var input service.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "malformed request body",
			Code:  "BAD_REQUEST",
		})
	}
	user, err := h.svc.Create(c.Request().Context(), &input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, UserResponse{
		Message: "user created",
		User:    user,
	})
}

// ListUsers godoc
// @Summary List user records, newest first
// @Tags users
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} ListUsersResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.svc.List(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ListUsersResponse{
		Users:       result.Users,
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		TotalUsers:  result.TotalUsers,
	})
}

// GetUser godoc
// @Summary Get a user record by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_ID",
		})
	}
	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user record
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body service.UpdateUserInput true "Fields to replace"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_ID",
		})
	}
	var input service.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "malformed request body",
			Code:  "BAD_REQUEST",
		})
	}
	user, err := h.svc.Update(c.Request().Context(), id, &input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "user updated",
		User:    user,
	})
}

// DeleteUser godoc
// @Summary Delete a user record
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_ID",
		})
	}
	user, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "user deleted",
		User:    user,
	})
}

// SearchUsers godoc
// @Summary Search user records by name or email substring
// @Tags users
// @Produce json
// @Param query path string true "Search term"
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/search/{query} [get]
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.svc.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
