package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CustomerOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_operations_total",
			Help: "Customer endpoint calls by operation and outcome",
		},
		[]string{"op", "outcome"}, // list|get|create|update|delete , ok|not_found|invalid|error
	)

	WelcomeEmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_welcome_emails_total",
			Help: "Welcome emails by result",
		},
		[]string{"result"}, // sent|failed
	)
)

var registerOnce sync.Once

// MustRegister registers the collectors once; later calls are ignored.
func MustRegister(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(
			CustomerOpsTotal,
			WelcomeEmailsTotal,
		)
	})
}
