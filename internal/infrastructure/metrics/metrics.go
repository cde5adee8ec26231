package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the reconciliation core.
type Metrics struct {
	// Webhook pipeline
	EventsReceived  *prometheus.CounterVec
	EventsDropped   *prometheus.CounterVec
	SignatureDenied *prometheus.CounterVec

	// Ledger
	CreditsApplied  prometheus.Counter
	DebitsApplied   prometheus.Counter
	DuplicateEvents prometheus.Counter

	// Withdrawals
	WithdrawalsInitiated prometheus.Counter
	WithdrawalsRejected  *prometheus.CounterVec
	StaleLocksReleased   prometheus.Counter

	// Gateway client
	GatewayRequests *prometheus.CounterVec

	// Worker pool
	TasksQueued  prometheus.Gauge
	TaskRetries  prometheus.Counter
	TaskFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EventsReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kudipay_webhook_events_total",
				Help: "Total webhook events received, by classified kind",
			},
			[]string{"kind"},
		),
		EventsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kudipay_webhook_events_dropped_total",
				Help: "Total webhook events dropped without mutation, by reason",
			},
			[]string{"reason"},
		),
		SignatureDenied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kudipay_webhook_signature_denied_total",
				Help: "Total webhook deliveries rejected at the signature check",
			},
			[]string{"reason"},
		),

		CreditsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kudipay_ledger_credits_applied_total",
			Help: "Total credit mutations applied",
		}),
		DebitsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kudipay_ledger_debits_applied_total",
			Help: "Total debit mutations applied",
		}),
		DuplicateEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kudipay_ledger_duplicate_events_total",
			Help: "Total mutations skipped because the dedup key was consumed",
		}),

		WithdrawalsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kudipay_withdrawals_initiated_total",
			Help: "Total withdrawals accepted by the gateway",
		}),
		WithdrawalsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kudipay_withdrawals_rejected_total",
				Help: "Total withdrawal requests rejected, by reason",
			},
			[]string{"reason"},
		),
		StaleLocksReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kudipay_stale_locks_released_total",
			Help: "Total withdrawal locks force-released by the sweeper",
		}),

		GatewayRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kudipay_gateway_requests_total",
				Help: "Total outbound gateway requests, by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),

		TasksQueued: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kudipay_worker_tasks_queued",
			Help: "Tasks currently waiting in the post-ack queue",
		}),
		TaskRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kudipay_worker_task_retries_total",
			Help: "Total task retry attempts",
		}),
		TaskFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kudipay_worker_task_failures_total",
			Help: "Total tasks that exhausted their retries",
		}),
	}
}
