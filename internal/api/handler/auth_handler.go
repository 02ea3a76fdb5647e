package handler

import (
	"net/http"
	"time"

	"cublex/internal/api/middleware"
	"cublex/internal/app/service"
	"cublex/internal/common"
	"cublex/internal/common/security"
	"cublex/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService  *service.AuthService
	guard        *service.Guard
	signer       *security.SessionSigner
	secureCookie bool
	logger       zerolog.Logger
}

func NewAuthHandler(authService *service.AuthService, guard *service.Guard, signer *security.SessionSigner, secureCookie bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		guard:        guard,
		signer:       signer,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/status", h.status)
	r.With(middleware.RequireAuthenticated(h.guard, h.logger)).Get("/me", h.me)
}

type authResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

type statusResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *model.SessionUser `json:"user"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}

	res, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	h.respondWithSession(w, http.StatusCreated, "User registered successfully", res)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}

	res, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	h.respondWithSession(w, http.StatusOK, "Login successful", res)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.SessionTokenFromContext(r.Context())); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	http.SetCookie(w, h.cookie("", time.Unix(0, 0), -1))
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, h.logger, common.ErrUnauthenticated)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]model.SessionUser{"user": user})
}

func (h *AuthHandler) status(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Current(r.Context(), middleware.SessionTokenFromContext(r.Context()))
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, statusResponse{Authenticated: user != nil, User: user})
}

func (h *AuthHandler) respondWithSession(w http.ResponseWriter, code int, message string, res *service.AuthResult) {
	signed, err := h.signer.Sign(res.Session.Token, res.Session.ExpiresAt)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	maxAge := int(time.Until(res.Session.ExpiresAt).Seconds())
	http.SetCookie(w, h.cookie(signed, res.Session.ExpiresAt, maxAge))
	common.RespondWithJSON(w, code, authResponse{Message: message, User: res.User, Token: signed})
}

func (h *AuthHandler) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.signer.CookieName(),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
