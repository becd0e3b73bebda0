// Package metrics defines and registers the custom Prometheus metrics of the
// workday API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds domain counters.
//
// All metrics are registered with the default registry at package init via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workday"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UserChangesTotal counts administrative account changes.
// Label:
//   - action: "created", "updated" or "deleted"
var UserChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_changes_total",
		Help:      "Total number of user accounts created, updated or deleted.",
	},
	[]string{"action"},
)

// ── Workday metrics ───────────────────────────────────────────────────────────

var WorkdaysSavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workdays_saved_total",
		Help:      "Total number of workday upserts.",
	},
)

var WorkdaysDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workdays_deleted_total",
		Help:      "Total number of workday delete requests that reached storage.",
	},
)
