// Package metrics defines and registers all custom Prometheus metrics for the
// networking API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "networking"

// RowsIngestedTotal counts CSV upload rows by ingestion outcome.
// Label:
//   - result: "inserted", "duplicate" or "skipped"
var RowsIngestedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "csv_rows_ingested_total",
		Help:      "Total number of CSV rows processed, by outcome.",
	},
	[]string{"result"},
)

// ChooseRequestsTotal counts choose-and-store requests by outcome.
// Label:
//   - result: "created", "already_chosen", "no_employees" or "invalid"
var ChooseRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "choose_requests_total",
		Help:      "Total number of choose-and-store requests, by outcome.",
	},
	[]string{"result"},
)

// SelectionsCreatedTotal counts individual selection records written.
var SelectionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "selections_created_total",
		Help:      "Total number of selection records stored.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)
