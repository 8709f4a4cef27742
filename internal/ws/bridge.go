package ws

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/feed"
)

// Bridge espelha broadcasts entre instâncias via Redis Pub/Sub: o que uma
// instância empurra pro hub local também é publicado no canal, e as demais
// repassam pros próprios clientes. O próprio eco é descartado pelo Origin.
type Bridge struct {
	log     *zap.Logger
	rdb     *redis.Client
	channel string
	origin  string
}

func NewBridge(log *zap.Logger, rdb *redis.Client, channel string) *Bridge {
	return &Bridge{
		log:     log,
		rdb:     rdb,
		channel: channel,
		origin:  uuid.NewString(),
	}
}

// Publish propaga um broadcast local pras outras instâncias. Falha de
// publicação só é logada; o broadcast local já aconteceu.
func (b *Bridge) Publish(ctx context.Context, sportID *int, matches []feed.MatchEvent) {
	payload, err := json.Marshal(bridgeMsg{Origin: b.origin, SportID: sportID, Matches: matches})
	if err != nil {
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.log.Warn("bridge publish failed", zap.Error(err))
	}
}

// Start inicia uma goroutine que escuta o canal e repassa as atualizações
// recebidas pro hub local.
func (b *Bridge) Start(ctx context.Context, hub *Hub) {
	sub := b.rdb.Subscribe(ctx, b.channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				var upd bridgeMsg
				if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
					b.log.Warn("bridge unmarshal error", zap.Error(err))
					continue
				}
				if upd.Origin == b.origin {
					continue
				}
				hub.PushLiveUpdate(upd.SportID, upd.Matches)
			}
		}
	}()
}
