package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PassesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "epass",
		Name:      "passes_submitted_total",
		Help:      "E-pass applications accepted for review.",
	})

	PassDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "epass",
		Name:      "pass_decisions_total",
		Help:      "Administrator decisions by outcome.",
	}, []string{"decision"})

	ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "epass",
		Name:      "validation_failures_total",
		Help:      "Submissions rejected by draft validation.",
	})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "epass",
		Name:      "logins_total",
		Help:      "Login attempts by role and result.",
	}, []string{"role", "result"})

	OutboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "epass",
		Name:      "outbox_published_total",
		Help:      "Outbox events handed to the broker, by result.",
	}, []string{"result"})
)
