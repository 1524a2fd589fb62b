package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated            prometheus.Counter
	ContactRequestsCreated  prometheus.Counter
	ContactRequestsApproved prometheus.Counter
	PremiumRequests         prometheus.Counter
	PremiumApprovals        prometheus.Counter
	RequestDuration         *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on a caller-supplied registry. Tests pass a
// fresh registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulmate_users_created_total",
			Help: "Total number of users created in the system",
		}),
		ContactRequestsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulmate_contact_requests_created_total",
			Help: "Total number of contact disclosure requests created",
		}),
		ContactRequestsApproved: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulmate_contact_requests_approved_total",
			Help: "Total number of contact disclosure requests approved",
		}),
		PremiumRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulmate_premium_requests_total",
			Help: "Total number of premium upgrade requests",
		}),
		PremiumApprovals: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulmate_premium_approvals_total",
			Help: "Total number of premium upgrades approved",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soulmate_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
