package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the server's Prometheus counters. Verification outcomes
// are labelled so correct, incorrect and denied submissions can be told
// apart on a dashboard.
type Metrics struct {
	SessionsStarted   prometheus.Counter
	Verifications     *prometheus.CounterVec
	Substitutions     prometheus.Counter
	PlayersRegistered prometheus.Counter
	ScoresSubmitted   prometheus.Counter
}

// NewMetrics registers the counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hunt",
			Name:      "sessions_started_total",
			Help:      "Hunt sessions created.",
		}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hunt",
			Name:      "verifications_total",
			Help:      "Answer verifications by outcome.",
		}, []string{"outcome"}),
		Substitutions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hunt",
			Name:      "substitutions_total",
			Help:      "Challenges swapped for an alternate.",
		}),
		PlayersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hunt",
			Name:      "players_registered_total",
			Help:      "Players registered.",
		}),
		ScoresSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hunt",
			Name:      "scores_submitted_total",
			Help:      "Leaderboard entries recorded.",
		}),
	}
}

const (
	outcomeCorrect   = "correct"
	outcomeIncorrect = "incorrect"
	outcomeDenied    = "denied"
)
