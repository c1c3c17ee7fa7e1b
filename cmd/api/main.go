// @title                       FoodRankr API
// @version                     1.0
// @description                 Food ranking backend: accounts, company approval and dish ranks.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/foodrankr/backend/docs"
	"github.com/foodrankr/backend/internal/api"
	"github.com/foodrankr/backend/internal/core/service"
	mongostore "github.com/foodrankr/backend/internal/infrastructure/db/mongo"
	redisstore "github.com/foodrankr/backend/internal/infrastructure/db/redis"
	"github.com/foodrankr/backend/internal/infrastructure/http/handlers"
	"github.com/foodrankr/backend/internal/infrastructure/security"
	"github.com/foodrankr/backend/internal/pkg/config"
	"github.com/foodrankr/backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{ServiceName: "foodrankr-api"})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		ServiceName: "foodrankr-api",
		Environment: cfg.Env,
		Level:       cfg.LogLevel,
		Pretty:      cfg.IsDevelopment(),
	})
	if envErr != nil {
		log.Debug().Msg(".env file not found, relying on environment")
	}

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error closing mongodb")
		}
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}()

	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.JWTIssuer,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token service")
	}
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	// --- Repositories ---
	users := mongostore.NewUserRepository(db)
	companies := mongostore.NewCompanyRepository(db)
	requests := mongostore.NewCompanyRequestRepository(db)
	ranks := mongostore.NewRankRepository(db)
	throttle := redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)

	// --- Services ---
	companyService := service.NewCompanyService(companies, requests, users, logger.Component("companies"))
	authService := service.NewAuthService(users, companyService, hasher, tokens, throttle, logger.Component("auth"))

	health := handlers.NewHealthHandler()
	ready := handlers.NewHealthDependenciesHandler(db, rdb)

	e := api.NewRouter(api.Deps{
		Log:            logger.Component("http"),
		AllowedOrigins: cfg.AllowedOrigins(),
		Identity:       service.NewIdentity(tokens, users),
		Auth:           authService,
		Companies:      companyService,
		Profiles:       service.NewProfileService(users, companyService),
		Ranks:          service.NewRankService(ranks, logger.Component("ranks")),
		Stats:          service.NewStatsService(users, companies, requests, ranks),
		Root:           health.Root,
		Liveness:       health.Liveness,
		Readiness:      ready.Readiness,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("api server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
