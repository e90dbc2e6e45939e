package health

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"userhub/internal/db"
	"userhub/internal/metrics"
)

// Version is reported by the basic health view.
const Version = "1.0.0"

// Status values used across health views.
const (
	StatusOK       = "OK"
	StatusError    = "ERROR"
	StatusReady    = "READY"
	StatusNotReady = "NOT_READY"
	StatusAlive    = "ALIVE"
)

// StorePinger is the slice of the store adapter the aggregator needs.
type StorePinger interface {
	State() db.State
	Ping(ctx context.Context) (time.Duration, error)
}

// Aggregator synthesizes health views for load balancers, orchestrators and
// human operators. Each view is recomputed on every call; the only state
// carried across calls is the process start time and the served counter.
type Aggregator struct {
	store       StorePinger
	environment string
	started     time.Time
	served      atomic.Int64
	metrics     *metrics.Metrics
	proc        *processInfo
}

// New creates an aggregator anchored at the current time.
func New(store StorePinger, environment string, m *metrics.Metrics) *Aggregator {
	return &Aggregator{
		store:       store,
		environment: environment,
		started:     time.Now(),
		metrics:     m,
		proc:        newProcessInfo(),
	}
}

func (a *Aggregator) uptime() float64 {
	return time.Since(a.started).Seconds()
}

// BasicReport is the always-OK view served to load balancers.
type BasicReport struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	Message   string    `json:"message"`
	Version   string    `json:"version"`
}

// Basic reports OK whenever the process is running, and counts the call.
func (a *Aggregator) Basic() BasicReport {
	a.served.Add(1)
	if a.metrics != nil {
		a.metrics.HealthChecksServed.Inc()
	}
	return BasicReport{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Uptime:    a.uptime(),
		Message:   "service is running",
		Version:   Version,
	}
}

// DatabaseReport isolates the store ping result.
type DatabaseReport struct {
	Status    string    `json:"status"`
	State     string    `json:"state"`
	LatencyMS float64   `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Database pings the store and mirrors the outcome.
func (a *Aggregator) Database(ctx context.Context) DatabaseReport {
	report := DatabaseReport{
		State:     a.store.State().String(),
		Timestamp: time.Now(),
	}
	latency, err := a.store.Ping(ctx)
	if err != nil {
		report.Status = StatusError
		report.Error = err.Error()
		return report
	}
	report.Status = StatusOK
	report.LatencyMS = float64(latency.Microseconds()) / 1000
	return report
}

// DetailedReport is the operator-facing view with process figures.
type DetailedReport struct {
	Status             string         `json:"status"`
	Timestamp          time.Time      `json:"timestamp"`
	Uptime             float64        `json:"uptime"`
	Environment        string         `json:"environment"`
	Database           DatabaseReport `json:"database"`
	Memory             MemoryReport   `json:"memory"`
	HealthChecksServed int64          `json:"healthChecksServed"`
}

// Detailed is OK only when the store ping succeeds.
func (a *Aggregator) Detailed(ctx context.Context) DetailedReport {
	dbReport := a.Database(ctx)
	status := StatusOK
	if dbReport.Status != StatusOK {
		status = StatusError
	}
	return DetailedReport{
		Status:             status,
		Timestamp:          time.Now(),
		Uptime:             a.uptime(),
		Environment:        a.environment,
		Database:           dbReport,
		Memory:             a.proc.memory(),
		HealthChecksServed: a.served.Load(),
	}
}

// ReadinessReport tells the orchestrator whether to route traffic here.
type ReadinessReport struct {
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Readiness is READY iff the store is connected and answers a ping.
func (a *Aggregator) Readiness(ctx context.Context) ReadinessReport {
	report := ReadinessReport{Timestamp: time.Now()}
	if state := a.store.State(); state != db.StateConnected {
		report.Status = StatusNotReady
		report.Reason = fmt.Sprintf("store is %s", state)
		return report
	}
	if _, err := a.store.Ping(ctx); err != nil {
		report.Status = StatusNotReady
		report.Reason = err.Error()
		return report
	}
	report.Status = StatusReady
	return report
}

// LivenessReport signals whether the process itself should be restarted.
type LivenessReport struct {
	Status    string    `json:"status"`
	Uptime    float64   `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// Liveness never consults the store: a stuck store must not trigger a
// process restart, only a hung process should.
func (a *Aggregator) Liveness() LivenessReport {
	return LivenessReport{
		Status:    StatusAlive,
		Uptime:    a.uptime(),
		Timestamp: time.Now(),
	}
}

// MetricsReport carries raw process figures with no interpretation.
type MetricsReport struct {
	GoVersion  string       `json:"goVersion"`
	Platform   string       `json:"platform"`
	Arch       string       `json:"arch"`
	PID        int          `json:"pid"`
	StartTime  time.Time    `json:"startTime"`
	Memory     MemoryReport `json:"memory"`
	CPU        CPUReport    `json:"cpu"`
	Goroutines int          `json:"goroutines"`
	Error      string       `json:"error,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// Metrics collects runtime and process figures.
func (a *Aggregator) Metrics() MetricsReport {
	report := a.proc.metrics()
	report.StartTime = a.started
	report.Timestamp = time.Now()
	return report
}

// DashboardReport is the fan-out view over every other check.
type DashboardReport struct {
	OverallStatus string           `json:"overall_status"`
	Timestamp     time.Time        `json:"timestamp"`
	Basic         *BasicReport     `json:"basic,omitempty"`
	Detailed      *DetailedReport  `json:"detailed,omitempty"`
	Database      *DatabaseReport  `json:"database,omitempty"`
	Readiness     *ReadinessReport `json:"readiness,omitempty"`
	Liveness      *LivenessReport  `json:"liveness,omitempty"`
	Metrics       *MetricsReport   `json:"metrics,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// Dashboard computes every view concurrently and joins the results. A failure
// inside one sub-check surfaces in that check's own fields and never aborts
// the others; only a panic in the aggregation itself degrades the whole
// dashboard to ERROR.
func (a *Aggregator) Dashboard(ctx context.Context) (report DashboardReport) {
	report.Timestamp = time.Now()
	defer func() {
		if r := recover(); r != nil {
			report.OverallStatus = StatusError
			report.Error = fmt.Sprintf("dashboard aggregation failed: %v", r)
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		basic := a.Basic()
		report.Basic = &basic
		return nil
	})
	g.Go(func() error {
		detailed := a.Detailed(ctx)
		report.Detailed = &detailed
		return nil
	})
	g.Go(func() error {
		database := a.Database(ctx)
		report.Database = &database
		return nil
	})
	g.Go(func() error {
		readiness := a.Readiness(ctx)
		report.Readiness = &readiness
		return nil
	})
	g.Go(func() error {
		liveness := a.Liveness()
		report.Liveness = &liveness
		return nil
	})
	g.Go(func() error {
		m := a.Metrics()
		report.Metrics = &m
		return nil
	})
	_ = g.Wait()

	report.OverallStatus = report.Detailed.Status
	return report
}
