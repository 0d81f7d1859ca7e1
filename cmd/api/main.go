package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifetrack/stress-tracking-api/internal/api"
	"github.com/lifetrack/stress-tracking-api/internal/core/service"
	"github.com/lifetrack/stress-tracking-api/internal/infrastructure/config"
	mongodb "github.com/lifetrack/stress-tracking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lifetrack/stress-tracking-api/internal/infrastructure/db/redis"
	"github.com/lifetrack/stress-tracking-api/internal/infrastructure/modelsvc"
	"github.com/lifetrack/stress-tracking-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; a missing MODEL_SERVICE_URL or JWT_SECRET
		// must kill the process here, not surface per request.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	authRepo := mongodb.NewAuthRepository(db)
	entryRepo := mongodb.NewEntryRepository(db)
	predictionRepo := mongodb.NewPredictionRepository(db)

	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := entryRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create entry indexes")
	}
	if err := predictionRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create prediction indexes")
	}

	predictor := modelsvc.NewClient(cfg.ModelService.URL, cfg.ModelServiceTimeout(), log)
	predictionCache := redisdb.NewPredictionCache(rdb)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTLDuration())
	entryService := service.NewEntryService(entryRepo, predictionRepo, predictor, predictionCache, log)

	e := api.NewRouter(api.Deps{
		AuthService:  authService,
		EntryService: entryService,
		Mongo:        db,
		Redis:        rdb,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("model_service", cfg.ModelService.URL).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
