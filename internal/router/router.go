package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"userhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	// Health and probe endpoints
	e.GET("/health", healthHandler.Basic)
	e.GET("/health/detailed", healthHandler.Detailed)
	e.GET("/health/database", healthHandler.Database)
	e.GET("/health/dashboard", healthHandler.Dashboard)
	e.GET("/ready", healthHandler.Ready)
	e.GET("/alive", healthHandler.Alive)
	e.GET("/metrics", healthHandler.Metrics)
	e.GET("/metrics/prometheus", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ping", healthHandler.Ping)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// User record routes
	api.POST("/users", userHandler.CreateUser)
	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/search/:query", userHandler.SearchUsers)
	api.GET("/users/:id", userHandler.GetUser)
	api.PUT("/users/:id", userHandler.UpdateUser)
	api.DELETE("/users/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
