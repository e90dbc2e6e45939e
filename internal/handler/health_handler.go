package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"userhub/internal/health"
)

// HealthHandler exposes health aggregator views over HTTP.
type HealthHandler struct {
	agg *health.Aggregator
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(agg *health.Aggregator) *HealthHandler {
	return &HealthHandler{agg: agg}
}

// Basic godoc
// @Summary Basic health check
// @Tags health
// @Produce json
// @Success 200 {object} health.BasicReport
// @Router /health [get]
func (h *HealthHandler) Basic(c echo.Context) error {
	return c.JSON(http.StatusOK, h.agg.Basic())
}

// Detailed godoc
// @Summary Detailed health check including store ping and process figures
// @Tags health
// @Produce json
// @Success 200 {object} health.DetailedReport
// @Failure 503 {object} health.DetailedReport
// @Router /health/detailed [get]
func (h *HealthHandler) Detailed(c echo.Context) error {
	report := h.agg.Detailed(c.Request().Context())
	status := http.StatusOK
	if report.Status != health.StatusOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}

// Database godoc
// @Summary Record store connectivity check
// @Tags health
// @Produce json
// @Success 200 {object} health.DatabaseReport
// @Failure 503 {object} health.DatabaseReport
// @Router /health/database [get]
func (h *HealthHandler) Database(c echo.Context) error {
	report := h.agg.Database(c.Request().Context())
	status := http.StatusOK
	if report.Status != health.StatusOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}

// Dashboard godoc
// @Summary Aggregate view over every health check
// @Tags health
// @Produce json
// @Success 200 {object} health.DashboardReport
// @Router /health/dashboard [get]
func (h *HealthHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.agg.Dashboard(c.Request().Context()))
}

// Ready godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} health.ReadinessReport
// @Failure 503 {object} health.ReadinessReport
// @Router /ready [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	report := h.agg.Readiness(c.Request().Context())
	status := http.StatusOK
	if report.Status != health.StatusReady {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}

// Alive godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} health.LivenessReport
// @Router /alive [get]
func (h *HealthHandler) Alive(c echo.Context) error {
	return c.JSON(http.StatusOK, h.agg.Liveness())
}

// Metrics godoc
// @Summary Raw process and runtime figures
// @Tags health
// @Produce json
// @Success 200 {object} health.MetricsReport
// @Router /metrics [get]
func (h *HealthHandler) Metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.agg.Metrics())
}

// PingResponse is the trivial reachability reply.
type PingResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Ping godoc
// @Summary Trivial reachability check
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (h *HealthHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, PingResponse{
		Status:    health.StatusOK,
		Message:   "pong",
		Timestamp: time.Now(),
	})
}
