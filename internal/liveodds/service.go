package liveodds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/feed"
	"github.com/chanderhat/bet-backend/internal/shared/cache"
	"github.com/chanderhat/bet-backend/internal/shared/metrics"
)

// Upstream é o que o serviço precisa do cliente do feed.
type Upstream interface {
	Inplay(ctx context.Context) (json.RawMessage, error)
	Upcoming(ctx context.Context, day int) (json.RawMessage, error)
	EventDetail(ctx context.Context, eventID string) (json.RawMessage, error)
}

// Service agrega as partidas ao vivo normalizadas, com cache na frente do
// feed upstream.
type Service struct {
	log      *zap.Logger
	upstream Upstream
	cache    cache.Store

	liveTTL     time.Duration
	detailTTL   time.Duration
	upcomingTTL time.Duration
}

func NewService(log *zap.Logger, upstream Upstream, store cache.Store, liveTTL, detailTTL, upcomingTTL time.Duration) *Service {
	return &Service{
		log:         log,
		upstream:    upstream,
		cache:       store,
		liveTTL:     liveTTL,
		detailTTL:   detailTTL,
		upcomingTTL: upcomingTTL,
	}
}

func liveKey(sportID *int) string {
	if sportID == nil {
		return "liveodds:live:all"
	}
	return fmt.Sprintf("liveodds:live:%d", *sportID)
}

// FetchLive retorna as partidas ao vivo, opcionalmente filtradas por esporte.
// Resposta vazia é sucesso (nenhuma partida agora) e não é cacheada, pra não
// congelar um cache frio durante a janela de TTL.
func (s *Service) FetchLive(ctx context.Context, sportID *int) *FetchResult {
	key := liveKey(sportID)

	var cached FetchResult
	if ok, err := cache.GetJSON(ctx, s.cache, key, &cached); err == nil && ok {
		s.log.Debug("live cache hit", zap.String("key", key))
		return &cached
	}

	raw, err := s.upstream.Inplay(ctx)
	if err != nil {
		metrics.UpstreamFailures.Inc()
		s.log.Warn("inplay fetch failed", zap.Error(err))
		return failure(err)
	}

	matches := feed.ParseInplay(raw)
	if sportID != nil {
		matches = filterBySport(matches, *sportID)
	}

	result := &FetchResult{
		Success:   true,
		Results:   matches,
		Count:     len(matches),
		Timestamp: time.Now().UTC(),
	}

	if len(matches) > 0 {
		if err := cache.SetJSON(ctx, s.cache, key, result, s.liveTTL); err != nil {
			s.log.Warn("live cache set failed", zap.Error(err))
		}
	}

	return result
}

// FetchUpcoming retorna partidas agendadas (day 0 = hoje, 1 = amanhã).
// Eventos agendados não têm placar nem cronômetro.
func (s *Service) FetchUpcoming(ctx context.Context, sportID *int, day int) *FetchResult {
	key := fmt.Sprintf("liveodds:upcoming:%s:%d", sportKeyPart(sportID), day)

	var cached FetchResult
	if ok, err := cache.GetJSON(ctx, s.cache, key, &cached); err == nil && ok {
		return &cached
	}

	raw, err := s.upstream.Upcoming(ctx, day)
	if err != nil {
		metrics.UpstreamFailures.Inc()
		s.log.Warn("upcoming fetch failed", zap.Error(err))
		return failure(err)
	}

	matches := feed.ParseInplay(raw)
	if sportID != nil {
		matches = filterBySport(matches, *sportID)
	}
	for i := range matches {
		matches[i].TimeStatus = "0"
		matches[i].Score = ""
		matches[i].Timer = ""
	}

	result := &FetchResult{
		Success:   true,
		Results:   matches,
		Count:     len(matches),
		Timestamp: time.Now().UTC(),
	}

	if len(matches) > 0 {
		if err := cache.SetJSON(ctx, s.cache, key, result, s.upcomingTTL); err != nil {
			s.log.Warn("upcoming cache set failed", zap.Error(err))
		}
	}

	return result
}

// FetchEventDetail retorna o detalhe cru de um evento, com TTL curto próprio.
func (s *Service) FetchEventDetail(ctx context.Context, eventID string) *DetailResult {
	key := "liveodds:detail:" + eventID

	var cached DetailResult
	if ok, err := cache.GetJSON(ctx, s.cache, key, &cached); err == nil && ok {
		return &cached
	}

	raw, err := s.upstream.EventDetail(ctx, eventID)
	if err != nil {
		metrics.UpstreamFailures.Inc()
		s.log.Warn("event detail fetch failed", zap.String("event_id", eventID), zap.Error(err))
		return &DetailResult{Success: false, Timestamp: time.Now().UTC(), Error: err.Error()}
	}

	result := &DetailResult{
		Success:   true,
		Results:   raw,
		Timestamp: time.Now().UTC(),
	}

	if err := cache.SetJSON(ctx, s.cache, key, result, s.detailTTL); err != nil {
		s.log.Warn("detail cache set failed", zap.Error(err))
	}

	return result
}

func filterBySport(matches []feed.MatchEvent, sportID int) []feed.MatchEvent {
	out := []feed.MatchEvent{}
	for _, m := range matches {
		if m.SportID == sportID {
			out = append(out, m)
		}
	}
	return out
}

func sportKeyPart(sportID *int) string {
	if sportID == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *sportID)
}
