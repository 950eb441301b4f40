package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	BallotsCast     prometheus.Counter
	BallotsRejected prometheus.Counter
	ReceiptsSent    prometheus.Counter
	ReceiptsFailed  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		BallotsCast: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eboto_ballots_cast_total",
			Help: "Total number of ballots accepted and stored",
		}),
		BallotsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eboto_ballots_rejected_total",
			Help: "Total number of ballot submissions rejected by validation",
		}),
		ReceiptsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eboto_vote_receipts_sent_total",
			Help: "Total number of vote receipt emails delivered",
		}),
		ReceiptsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eboto_vote_receipts_failed_total",
			Help: "Total number of vote receipt emails that failed to send",
		}),
	}
}
