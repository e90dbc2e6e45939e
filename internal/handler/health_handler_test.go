package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"userhub/internal/db"
	apperrors "userhub/internal/errors"
	"userhub/internal/health"
)

type stubPinger struct {
	state db.State
	err   error
}

func (s *stubPinger) State() db.State { return s.state }

func (s *stubPinger) Ping(ctx context.Context) (time.Duration, error) {
	return time.Millisecond, s.err
}

func newHealthHandler(store *stubPinger) *HealthHandler {
	return NewHealthHandler(health.New(store, "test", nil))
}

func TestHealthHandler_StatusCodes(t *testing.T) {
	connected := &stubPinger{state: db.StateConnected}
	disconnected := &stubPinger{state: db.StateDisconnected, err: apperrors.ErrStoreUnavailable}

	tests := []struct {
		name     string
		store    *stubPinger
		invoke   func(*HealthHandler, echo.Context) error
		wantCode int
	}{
		{"basic is 200 when store is down", disconnected, (*HealthHandler).Basic, http.StatusOK},
		{"detailed is 200 when healthy", connected, (*HealthHandler).Detailed, http.StatusOK},
		{"detailed is 503 when store is down", disconnected, (*HealthHandler).Detailed, http.StatusServiceUnavailable},
		{"database is 200 when healthy", connected, (*HealthHandler).Database, http.StatusOK},
		{"database is 503 when store is down", disconnected, (*HealthHandler).Database, http.StatusServiceUnavailable},
		{"ready is 200 when healthy", connected, (*HealthHandler).Ready, http.StatusOK},
		{"ready is 503 when store is down", disconnected, (*HealthHandler).Ready, http.StatusServiceUnavailable},
		{"alive is 200 when store is down", disconnected, (*HealthHandler).Alive, http.StatusOK},
		{"dashboard is 200 when store is down", disconnected, (*HealthHandler).Dashboard, http.StatusOK},
		{"metrics is 200", connected, (*HealthHandler).Metrics, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHealthHandler(tt.store)
			c, rec := newContext(http.MethodGet, "/", "")

			assert.NoError(t, tt.invoke(h, c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHealthHandler_Ping(t *testing.T) {
	h := newHealthHandler(&stubPinger{state: db.StateDisconnected, err: apperrors.ErrStoreUnavailable})
	c, rec := newContext(http.MethodGet, "/ping", "")

	assert.NoError(t, h.Ping(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pong"`)
}

func TestHealthHandler_ReadyBodyNamesReason(t *testing.T) {
	h := newHealthHandler(&stubPinger{state: db.StateConnecting})
	c, rec := newContext(http.MethodGet, "/ready", "")

	assert.NoError(t, h.Ready(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_READY")
	assert.Contains(t, rec.Body.String(), "connecting")
}

func TestHealthHandler_DashboardReportsPartialResults(t *testing.T) {
	h := newHealthHandler(&stubPinger{state: db.StateDisconnected, err: apperrors.ErrStoreUnavailable})
	c, rec := newContext(http.MethodGet, "/health/dashboard", "")

	assert.NoError(t, h.Dashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"overall_status":"ERROR"`)
	assert.Contains(t, body, `"ALIVE"`)
	assert.Contains(t, body, `"NOT_READY"`)
}
