// Package metrics defines the custom Prometheus metrics for the site. It is
// the single source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "site"

// AdminActionsTotal counts backoffice mutations.
// Labels:
//   - subject: what was acted on ("account", "staff", or the entity kind)
//   - action: the form action (e.g. "create", "toggle_active")
//   - outcome: "ok" or "rejected"
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of backoffice actions, by subject, action and outcome.",
	},
	[]string{"subject", "action", "outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// MailSendsTotal counts outbound mail attempts.
// Labels:
//   - kind: "contact" or "campaign"
//   - result: "sent" or "failed"
var MailSendsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sends_total",
		Help:      "Total number of outbound mail attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)
