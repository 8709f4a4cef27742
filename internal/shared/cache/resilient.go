package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Resilient tenta o store primário (rede) e degrada para o fallback local em
// qualquer erro. Escritas sempre replicam no fallback, para continuidade caso
// o primário caia em seguida. Chamadores nunca veem falha de cache.
type Resilient struct {
	primary  Store
	fallback *Memory
	log      *zap.Logger
}

func NewResilient(primary Store, fallback *Memory, log *zap.Logger) *Resilient {
	return &Resilient{primary: primary, fallback: fallback, log: log}
}

func (r *Resilient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r.primary != nil {
		b, ok, err := r.primary.Get(ctx, key)
		if err == nil {
			return b, ok, nil
		}
		r.log.Warn("cache primary get failed, using fallback", zap.String("key", key), zap.Error(err))
	}
	b, ok, _ := r.fallback.Get(ctx, key)
	return b, ok, nil
}

func (r *Resilient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_ = r.fallback.Set(ctx, key, value, ttl)
	if r.primary != nil {
		if err := r.primary.Set(ctx, key, value, ttl); err != nil {
			r.log.Warn("cache primary set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
