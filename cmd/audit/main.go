package main

import (
	"context"
	"errors"
	"github.com/ariefcatur/go-catalog-client/internal/audit"
	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	"github.com/ariefcatur/go-catalog-client/internal/config"
	"github.com/ariefcatur/go-catalog-client/internal/httpx"
	kafkax "github.com/ariefcatur/go-catalog-client/internal/kafka"
	"github.com/ariefcatur/go-catalog-client/internal/logger"
	"github.com/ariefcatur/go-catalog-client/internal/postgres"
	"github.com/ariefcatur/go-catalog-client/internal/redisx"
	"github.com/joho/godotenv"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	repo := &audit.Repo{DB: db}
	svc := &audit.Service{
		Store:       repo,
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-audit",
		Log:         log,
	}

	// Consumer
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AuditGroup, catalog.TopicFormSubmission, cfg.AuditWorkers, log)
	go func() {
		log.Info().
			Str("group", cfg.AuditGroup).
			Str("topic", catalog.TopicFormSubmission).
			Int("workers", cfg.AuditWorkers).
			Msg("audit consumer started")
		if err := cons.Start(ctx, svc.HandleSubmissionEvent); err != nil {
			log.Error().Err(err).Msg("consumer exit")
			cancel()
		}
	}()

	// HTTP read API
	router := httpx.NewRouter(log)
	(&httpx.AuditHandler{Repo: repo}).Register(router)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("listen")
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel()
	time.Sleep(500 * time.Millisecond)
}
