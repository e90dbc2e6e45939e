package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "userhub/internal/errors"
	"userhub/internal/model"
	"userhub/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, input *service.CreateUserInput) (*model.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, page, limit int) (*service.UserPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserPage), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, input *service.UpdateUserInput) (*model.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Search(ctx context.Context, query string) ([]model.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.CreateUserInput")).
			Return(&model.User{ID: uuid.New(), Name: "Jo Ann", Email: "jo@x.com"}, nil)

		h := NewUserHandler(mockSvc)
		c, rec := newContext(http.MethodPost, "/api/users", `{"name":"Jo Ann","email":"jo@x.com"}`)

		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user created"`)
		assert.Contains(t, rec.Body.String(), `"jo@x.com"`)
	})

	t.Run("duplicate email is a 400", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicateEmail)

		h := NewUserHandler(mockSvc)
		c, rec := newContext(http.MethodPost, "/api/users", `{"name":"Jo Ann","email":"jo@x.com"}`)

		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "DUPLICATE_EMAIL")
	})

	t.Run("validation detail is surfaced per field", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.NewValidationError(
			[]apperrors.FieldViolation{{Field: "age", Reason: "must be at most 150"}},
		))

		h := NewUserHandler(mockSvc)
		c, rec := newContext(http.MethodPost, "/api/users", `{"name":"Jo Ann","email":"jo@x.com","age":200}`)

		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"age"`)
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		h := NewUserHandler(mockSvc)
		c, rec := newContext(http.MethodPost, "/api/users", `{"name":"Jo Ann","email":"jo@x.com"}`)

		assert.NoError(t, h.CreateUser(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		h := NewUserHandler(new(MockUserService))
		c, rec := newContext(http.MethodGet, "/api/users/not-a-uuid", "")
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		assert.NoError(t, h.GetUser(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mockSvc := new(MockUserService)
		mockSvc.On("Get", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)

		h := NewUserHandler(mockSvc)
		c, rec := newContext(http.MethodGet, "/api/users/"+id.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.GetUser(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("List", mock.Anything, 2, 5).Return(&service.UserPage{
		Users:       []model.User{},
		CurrentPage: 2,
		TotalPages:  3,
		TotalUsers:  11,
	}, nil)

	h := NewUserHandler(mockSvc)
	c, rec := newContext(http.MethodGet, "/api/users?page=2&limit=5", "")

	assert.NoError(t, h.ListUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currentPage":2`)
	assert.Contains(t, rec.Body.String(), `"totalPages":3`)
	assert.Contains(t, rec.Body.String(), `"totalUsers":11`)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	id := uuid.New()
	mockSvc := new(MockUserService)
	mockSvc.On("Delete", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)

	h := NewUserHandler(mockSvc)
	c, rec := newContext(http.MethodDelete, "/api/users/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	assert.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_SearchUsers(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("Search", mock.Anything, "jo").Return([]model.User{{Name: "Jo Ann"}}, nil)

	h := NewUserHandler(mockSvc)
	c, rec := newContext(http.MethodGet, "/api/users/search/jo", "")
	c.SetParamNames("query")
	c.SetParamValues("jo")

	assert.NoError(t, h.SearchUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jo Ann")
}
