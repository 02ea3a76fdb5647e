package api

import (
	"net/http"
	"time"

	"cublex/internal/api/handler"
	"cublex/internal/api/middleware"
	"cublex/internal/app/service"
	"cublex/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"
)

// Deps is everything the HTTP layer needs from the rest of the application.
type Deps struct {
	AuthService   *service.AuthService
	ServerService *service.ServerService
	AdminService  *service.AdminService
	Guard         *service.Guard
	Signer        *security.SessionSigner
	RateLimit     func(http.Handler) http.Handler
	GraphQL       http.Handler
	Health        *handler.HealthHandler
	Logger        zerolog.Logger

	ClientURL    string
	SecureCookie bool
	// TrustProxy takes the client address from X-Forwarded-For and X-Real-IP.
	// Enable it only behind a reverse proxy that sets those headers.
	TrustProxy bool
	// StaticDir, when set, serves the built web client for non-API paths.
	StaticDir string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	if d.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(middleware.Logger(d.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(chiMiddleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(chiMiddleware.SetHeader("X-Frame-Options", "DENY"))
	r.Use(chiMiddleware.SetHeader("Referrer-Policy", "no-referrer"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The session envelope may arrive as a bearer token or the session cookie.
	r.Use(jwtauth.Verify(d.Signer.Auth(), d.Signer.TokenFromRequest))
	r.Use(middleware.SessionToken)

	r.Route("/api", func(api chi.Router) {
		if d.RateLimit != nil {
			api.Use(d.RateLimit)
		}

		api.Route("/health", d.Health.RegisterRoutes)

		authHandler := handler.NewAuthHandler(d.AuthService, d.Guard, d.Signer, d.SecureCookie, d.Logger)
		api.Route("/auth", authHandler.RegisterRoutes)

		serverHandler := handler.NewServerHandler(d.ServerService, d.Logger)
		api.Route("/server", serverHandler.RegisterRoutes)

		adminHandler := handler.NewAdminHandler(d.AdminService, d.Guard, d.Logger)
		api.Route("/admin", adminHandler.RegisterRoutes)
	})

	if d.GraphQL != nil {
		r.Handle("/graphql", d.GraphQL)
	}

	if d.StaticDir != "" {
		r.Handle("/*", handler.SPAHandler(d.StaticDir))
	}

	return r
}
