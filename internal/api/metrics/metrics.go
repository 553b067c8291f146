// Package metrics defines and registers all custom Prometheus metrics for the
// trading-companies portal. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// --- Watchlist metrics ---

// WatchlistAddsTotal counts add-to-watchlist calls that passed reference
// checks.
// Label:
//   - result: "created" (new membership) or "already_present" (idempotent no-op)
var WatchlistAddsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watchlist_adds_total",
		Help:      "Total number of watchlist add operations, by outcome.",
	},
	[]string{"result"},
)

// WatchlistRemovesTotal counts remove-from-watchlist calls that passed
// reference checks.
// Label:
//   - result: "removed" (membership deleted) or "absent" (idempotent no-op)
var WatchlistRemovesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watchlist_removes_total",
		Help:      "Total number of watchlist remove operations, by outcome.",
	},
	[]string{"result"},
)

// --- Company metrics ---

// CompaniesCreatedTotal counts companies created through the API.
var CompaniesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "companies_created_total",
		Help:      "Total number of companies created.",
	},
)

// ScripCodeRewritesTotal counts companies touched by the background
// scrip-code rewrite job.
var ScripCodeRewritesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scripcode_rewrites_total",
		Help:      "Total number of scrip codes rewritten by the scheduler.",
	},
)
