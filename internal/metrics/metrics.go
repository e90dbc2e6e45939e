package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated       prometheus.Counter
	HealthChecksServed prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userhub_users_created_total",
			Help: "Total number of user records created",
		}),
		HealthChecksServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "userhub_health_checks_served_total",
			Help: "Total number of basic health checks served since process start",
		}),
	}
}
