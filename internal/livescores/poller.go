package livescores

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/feed"
	"github.com/chanderhat/bet-backend/internal/liveodds"
	"github.com/chanderhat/bet-backend/internal/shared/metrics"
)

// Fetcher é o que o poller precisa do agregador de odds.
type Fetcher interface {
	FetchLive(ctx context.Context, sportID *int) *liveodds.FetchResult
}

// Pusher entrega updates aos clientes conectados (o hub WebSocket).
type Pusher interface {
	PushLiveUpdate(sportID *int, matches []feed.MatchEvent)
}

// Sink recebe uma cópia de cada broadcast (Kafka, ponte Redis entre
// instâncias). Falha de sink nunca interrompe o tick.
type Sink interface {
	Publish(ctx context.Context, sportID *int, matches []feed.MatchEvent)
}

// Poller busca os placares ao vivo em intervalo fixo e empurra os deltas pro
// hub, agrupados por esporte. Um tick ainda em andamento faz o próximo ser
// pulado (single-flight por processo).
type Poller struct {
	log      *zap.Logger
	fetcher  Fetcher
	pusher   Pusher
	sinks    []Sink
	interval time.Duration

	busy atomic.Bool
}

func NewPoller(log *zap.Logger, fetcher Fetcher, pusher Pusher, interval time.Duration, sinks ...Sink) *Poller {
	return &Poller{
		log:      log,
		fetcher:  fetcher,
		pusher:   pusher,
		sinks:    sinks,
		interval: interval,
	}
}

// Start roda o loop de polling até o contexto encerrar. O primeiro tick é
// imediato.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		p.log.Info("live score poller starting", zap.Duration("interval", p.interval))
		p.poll(ctx)

		t := time.NewTicker(p.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				p.log.Info("live score poller stopped")
				return
			case <-t.C:
				p.poll(ctx)
			}
		}
	}()
}

// poll executa um tick. Falha upstream é tratada como "sem partidas" e o
// polling segue no próximo tick; nada aqui propaga erro.
func (p *Poller) poll(ctx context.Context) {
	if !p.busy.CompareAndSwap(false, true) {
		metrics.PollSkipped.Inc()
		p.log.Debug("previous poll still in flight, skipping tick")
		return
	}
	defer p.busy.Store(false)

	metrics.PollTicks.Inc()

	res := p.fetcher.FetchLive(ctx, nil)
	if !res.Success {
		p.log.Warn("live fetch failed", zap.String("error", res.Error))
		return
	}
	if len(res.Results) == 0 {
		return
	}

	bySport := groupBySport(res.Results)
	for sportID, matches := range bySport {
		sid := sportID
		p.pusher.PushLiveUpdate(&sid, matches)
		metrics.Broadcasts.Inc()
		for _, s := range p.sinks {
			s.Publish(ctx, &sid, matches)
		}
	}

	p.pusher.PushLiveUpdate(nil, res.Results)
	metrics.Broadcasts.Inc()
	for _, s := range p.sinks {
		s.Publish(ctx, nil, res.Results)
	}

	p.log.Debug("poll complete",
		zap.Int("matches", len(res.Results)),
		zap.Int("sports", len(bySport)),
	)
}

func groupBySport(matches []feed.MatchEvent) map[int][]feed.MatchEvent {
	out := make(map[int][]feed.MatchEvent)
	for _, m := range matches {
		out[m.SportID] = append(out[m.SportID], m)
	}
	return out
}
