package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodorder/configs"
	"foodorder/events"
	"foodorder/middlewares"
	"foodorder/routes"
	"foodorder/services"
	"foodorder/utils"
	"foodorder/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, envLoaded := configs.LoadConfig()
	log := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if !envLoaded {
		log.Debug("no .env file, using process environment")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *configs.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := configs.ConnectionDB(cfg, log)
	if err != nil {
		return err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedFile != "" {
		n, err := configs.SeedFromFile(db, cfg.SeedFile, cfg.DefaultPoint)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.WithField("users", n).Info("seed applied")
	}

	// Session store and ranking cache: redis when configured, memory otherwise
	var (
		sessions services.SessionStore
		ranking  services.RankingCache
	)
	rdb, err := configs.ConnectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		sessions = services.NewRedisSessionStore(rdb)
		ranking = services.NewRedisRankingCache(rdb, cfg.RankingCacheTTL)
		log.WithField("addr", cfg.RedisAddr).Info("redis connected")
	} else {
		sessions = services.NewMemorySessionStore()
		ranking = services.NewMemoryRankingCache(cfg.RankingCacheTTL)
	}

	// Order events: websocket hub always, broker when AMQP_URL is set
	hub := ws.NewOrderHub(log)
	go hub.Run(ctx)
	publishers := events.Fanout{hub}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer amqpPub.Close()
		publishers = append(publishers, amqpPub)
		log.WithField("exchange", cfg.AMQPExchange).Info("amqp publisher ready")
	}

	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanup(10*time.Minute, ctx.Done())

	// HTTP
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Sessions:  sessions,
		Ranking:   ranking,
		Publisher: publishers,
		Hub:       hub,
		Limiter:   limiter,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
