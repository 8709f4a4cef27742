package livescores

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/feed"
	skafka "github.com/chanderhat/bet-backend/internal/shared/kafka"
	"github.com/chanderhat/bet-backend/pkg/contracts/events"
)

// KafkaSink publica cada broadcast no tópico de live updates, pra consumo de
// sistemas a jusante (analytics, auditoria do feed).
type KafkaSink struct {
	writer *skafka.Writer
	log    *zap.Logger
}

func NewKafkaSink(brokers, topic string, log *zap.Logger) *KafkaSink {
	return &KafkaSink{
		writer: skafka.NewWriter(brokers, topic),
		log:    log,
	}
}

// Publish serializa o update e envia com a chave do esporte ("all" pro canal
// global), garantindo ordenação por partição dentro de cada esporte.
func (s *KafkaSink) Publish(ctx context.Context, sportID *int, matches []feed.MatchEvent) {
	now := time.Now().UTC()

	var key string
	var payload any
	if sportID != nil {
		key = strconv.Itoa(*sportID)
		payload = events.LiveUpdate{SportID: *sportID, Matches: matches, Timestamp: now}
	} else {
		key = "all"
		payload = events.LiveUpdateAll{Matches: matches, Timestamp: now}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := skafka.WriteJSON(ctx, s.writer, key, b); err != nil {
		s.log.Warn("kafka live update publish failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
