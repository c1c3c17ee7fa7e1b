// Package metrics defines the custom Prometheus metrics of the FoodRankr API.
// HTTP request metrics come from the echoprometheus middleware; the counters
// here track domain activity. All metrics are registered with the default
// registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodrankr"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations.
// Label:
//   - company: "assigned" when the reference resolved to an existing company,
//     approved or pending; "none" otherwise
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered.",
	},
	[]string{"company"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts responses rejected with 401.
// Label:
//   - route: the matched route path
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected as unauthenticated.",
	},
	[]string{"route"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// RanksCreatedTotal counts posted food ranks.
// Label:
//   - rating: the 1-5 rating given
var RanksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ranks_created_total",
		Help:      "Total number of food ranks posted, by rating.",
	},
	[]string{"rating"},
)

// CompanyApprovalsTotal counts admin approval decisions.
// Label:
//   - action: "approve", "unapprove" or "promote_request"
var CompanyApprovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "company_approvals_total",
		Help:      "Total number of company approval changes made by admins.",
	},
	[]string{"action"},
)
