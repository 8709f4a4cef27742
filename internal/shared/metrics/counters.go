package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de domínio expostos em /metrics.
var (
	PollTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livescores_poll_ticks_total",
		Help: "Ticks do poller de placares ao vivo.",
	})

	PollSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livescores_poll_skipped_total",
		Help: "Ticks pulados porque o anterior ainda estava em andamento.",
	})

	Broadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livescores_broadcasts_total",
		Help: "Broadcasts enviados ao hub (por esporte e globais).",
	})

	UpstreamFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liveodds_upstream_failures_total",
		Help: "Falhas de busca no feed upstream de odds.",
	})

	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bets_placed_total",
		Help: "Apostas aceitas pelo ledger.",
	})
)
