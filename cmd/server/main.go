package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cublex/internal/api"
	"cublex/internal/api/graphql"
	"cublex/internal/api/handler"
	"cublex/internal/api/middleware"
	"cublex/internal/app/service"
	"cublex/internal/app/worker"
	"cublex/internal/common/security"
	"cublex/internal/domain/repository"
	"cublex/internal/platform/cache"
	"cublex/internal/platform/config"
	"cublex/internal/platform/database"
	"cublex/internal/platform/logger"
)

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Log
	log.Info().Str("env", cfg.Env).Msg("configuration loaded")

	// 2. Initialize Stores
	var userRepo repository.UserRepository
	if cfg.UserStoreBackend == config.BackendPostgres {
		database.Connect()
		defer database.Close()
		userRepo = repository.NewPgUserRepository(database.DB)
		log.Info().Msg("database connected")
	} else {
		userRepo = repository.NewMemoryUserRepository()
		log.Info().Msg("using in-memory user store")
	}

	if cfg.SessionStoreBackend == config.BackendRedis {
		cache.ConnectRedis()
		defer cache.CloseRedis()
	}

	var sessionRepo repository.SessionRepository
	if cache.RDB != nil {
		sessionRepo = repository.NewRedisSessionRepository(cache.RDB, cfg.RedisPrefix)
		log.Info().Msg("using redis session store")
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
		log.Info().Msg("using in-memory session store")
	}

	// 3. Initialize Services
	catalog, err := service.LoadDefaultCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load server catalog")
	}
	sessions := service.NewSessionManager(sessionRepo, cfg.SessionTTL)
	guard := service.NewGuard(sessions)
	authService := service.NewAuthService(userRepo, sessions, log)
	serverService := service.NewServerService(catalog)
	adminService := service.NewAdminService(catalog, log)

	if cfg.SeedAdminEnabled() {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureAdmin(seedCtx, cfg.SeedAdminUsername, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			log.Error().Err(err).Msg("could not seed admin account")
		}
		cancel()
	}

	schema, err := graphql.NewSchema(serverService)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build graphql schema")
	}

	// 4. Initialize Session Sweeper (as a goroutine)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	sweeper := worker.NewSessionSweeper(sessions, cfg.SessionSweepSpec, log)
	go func() {
		if err := sweeper.Start(workerCtx); err != nil {
			log.Error().Err(err).Msg("session sweeper stopped")
		}
	}()

	// 5. Initialize Router & HTTP Server
	limiter := middleware.RateLimit(middleware.RateLimitOptions{
		Limit:  cfg.RateLimitMax,
		Window: cfg.RateLimitWindow,
		Redis:  cache.RDB,
		Prefix: cfg.RedisPrefix,
		Logger: log,
	})
	deps := api.Deps{
		AuthService:   authService,
		ServerService: serverService,
		AdminService:  adminService,
		Guard:         guard,
		Signer:        security.NewSessionSigner(cfg.SessionSecret, cfg.SessionCookieName),
		RateLimit:     limiter,
		GraphQL:       graphql.NewHandler(schema),
		Health:        handler.NewHealthHandler(database.Status, cache.Status),
		Logger:        log,
		ClientURL:     cfg.ClientURL,
		SecureCookie:  cfg.IsProduction(),
		TrustProxy:    cfg.TrustProxy,
	}
	if cfg.IsProduction() {
		deps.StaticDir = cfg.StaticDir
	}

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("port", cfg.APIPort).Msg("could not listen")
		}
	}()

	<-stop

	log.Info().Msg("shutting down server")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server and sweeper stopped gracefully")
}
