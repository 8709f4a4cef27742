package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/api"
	"github.com/chanderhat/bet-backend/internal/auth"
	"github.com/chanderhat/bet-backend/internal/bets"
	"github.com/chanderhat/bet-backend/internal/liveodds"
	"github.com/chanderhat/bet-backend/internal/livescores"
	"github.com/chanderhat/bet-backend/internal/shared/cache"
	"github.com/chanderhat/bet-backend/internal/shared/config"
	"github.com/chanderhat/bet-backend/internal/shared/db"
	"github.com/chanderhat/bet-backend/internal/shared/logger"
	"github.com/chanderhat/bet-backend/internal/shared/metrics"
	"github.com/chanderhat/bet-backend/internal/ws"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com db Postgres (obrigatório: carteira e sessão moram aqui)
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// conecta com cache Redis; sem Redis o serviço degrada pro cache em
	// memória e desliga a ponte pub/sub entre instâncias
	var redisClient *redis.Client
	var primary cache.Store
	if rc, err := cache.ConnectRedis(cfg.RedisAddr); err != nil {
		log.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
		primary = cache.NewRedis(redisClient)
		log.Info("redis connected")
	}

	memory := cache.NewMemory()
	memory.StartJanitor(ctx, time.Minute)
	store := cache.NewResilient(primary, memory, log)

	// hub WebSocket + ponte Redis (replica broadcasts entre instâncias)
	hub := ws.NewHub(log, nil)

	var sinks []livescores.Sink
	if redisClient != nil {
		bridge := ws.NewBridge(log, redisClient, cfg.RedisPubSubChannel)
		bridge.Start(ctx, hub)
		sinks = append(sinks, bridge)
	}

	// fan-out Kafka opcional
	if cfg.KafkaBrokers != "" {
		sink := livescores.NewKafkaSink(cfg.KafkaBrokers, cfg.TopicLiveUpdates, log)
		defer sink.Close()
		sinks = append(sinks, sink)
		log.Info("kafka sink ready", zap.String("topic", cfg.TopicLiveUpdates))
	}

	// agregador de odds ao vivo com cache na frente do feed upstream
	feedClient := liveodds.NewClient(cfg.FeedBaseURL, cfg.FeedToken, cfg.FeedTimeout)
	oddsSvc := liveodds.NewService(log, feedClient, store, cfg.LiveCacheTTL, cfg.DetailTTL, cfg.UpcomingTTL)

	// poller de placares ao vivo
	poller := livescores.NewPoller(log, oddsSvc, hub, cfg.PollInterval, sinks...)
	poller.Start(ctx)

	// serviços de domínio
	authSvc := auth.NewService(log, auth.NewPostgres(pg), cfg.JWTSecret, cfg.TokenTTL)
	betSvc := bets.NewService(log, bets.NewPostgres(pg))

	// servidor de métricas e health probe
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	// API pública
	server := api.NewServer(log, authSvc, betSvc, oddsSvc, hub, pg, redisClient)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.Router(),
	}

	go func() {
		log.Info("api server starting", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("api server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("api server shutdown", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics server shutdown", zap.Error(err))
	}

	log.Info("bye")
}
