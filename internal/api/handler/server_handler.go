package handler

import (
	"net/http"

	"cublex/internal/app/service"
	"cublex/internal/common"
	"cublex/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ServerHandler exposes the public site content. None of its routes are gated.
type ServerHandler struct {
	serverService *service.ServerService
	logger        zerolog.Logger
}

func NewServerHandler(ss *service.ServerService, logger zerolog.Logger) *ServerHandler {
	return &ServerHandler{serverService: ss, logger: logger}
}

func (h *ServerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.status)
	r.Get("/features", h.features)
	r.Get("/features/{feature}", h.feature)
	r.Get("/community", h.community)
	r.Get("/timeline", h.timeline)
	r.Get("/players", h.players)
	r.Get("/rules", h.rules)
	r.Get("/faq", h.faq)
	r.Get("/news", h.news)
}

func (h *ServerHandler) status(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.serverService.Status(r.Context()))
}

func (h *ServerHandler) features(w http.ResponseWriter, r *http.Request) {
	features := h.serverService.Features(r.Context())
	common.RespondWithJSON(w, http.StatusOK, struct {
		Features []model.Feature `json:"features"`
		Total    int             `json:"total"`
	}{features, len(features)})
}

func (h *ServerHandler) feature(w http.ResponseWriter, r *http.Request) {
	feature, err := h.serverService.Feature(r.Context(), chi.URLParam(r, "feature"))
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, feature)
}

func (h *ServerHandler) community(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.serverService.Community(r.Context()))
}

func (h *ServerHandler) timeline(w http.ResponseWriter, r *http.Request) {
	phases, current := h.serverService.Timeline(r.Context())
	common.RespondWithJSON(w, http.StatusOK, struct {
		Timeline     []model.TimelinePhase `json:"timeline"`
		CurrentPhase *model.TimelinePhase  `json:"currentPhase"`
	}{phases, current})
}

func (h *ServerHandler) players(w http.ResponseWriter, r *http.Request) {
	players, max := h.serverService.Players(r.Context())
	common.RespondWithJSON(w, http.StatusOK, struct {
		Players []model.Player `json:"players"`
		Total   int            `json:"total"`
		Max     int            `json:"max"`
	}{players, len(players), max})
}

func (h *ServerHandler) rules(w http.ResponseWriter, r *http.Request) {
	rules, consequences := h.serverService.Rules(r.Context())
	common.RespondWithJSON(w, http.StatusOK, struct {
		Rules        []string `json:"rules"`
		Consequences []string `json:"consequences"`
	}{rules, consequences})
}

func (h *ServerHandler) faq(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, struct {
		FAQ []model.FAQEntry `json:"faq"`
	}{h.serverService.FAQ(r.Context())})
}

func (h *ServerHandler) news(w http.ResponseWriter, r *http.Request) {
	news := h.serverService.News(r.Context())
	common.RespondWithJSON(w, http.StatusOK, struct {
		News  []model.NewsItem `json:"news"`
		Total int              `json:"total"`
	}{news, len(news)})
}
