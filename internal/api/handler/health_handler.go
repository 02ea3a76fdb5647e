package handler

import (
	"context"
	"net/http"
	"time"

	"cublex/internal/common"

	"github.com/go-chi/chi/v5"
)

// StatusFunc reports the state of a backing store, e.g. "connected".
type StatusFunc func(ctx context.Context) string

type HealthHandler struct {
	database StatusFunc
	redis    StatusFunc
	now      func() time.Time
}

func NewHealthHandler(database, redis StatusFunc) *HealthHandler {
	return &HealthHandler{database: database, redis: redis, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.health)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Redis     string    `json:"redis"`
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	common.RespondWithJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC(),
		Database:  h.database(ctx),
		Redis:     h.redis(ctx),
	})
}
