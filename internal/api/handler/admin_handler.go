package handler

import (
	"net/http"
	"strconv"
	"time"

	"cublex/internal/api/middleware"
	"cublex/internal/app/service"
	"cublex/internal/common"
	"cublex/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type AdminHandler struct {
	adminService *service.AdminService
	guard        *service.Guard
	logger       zerolog.Logger
}

func NewAdminHandler(as *service.AdminService, guard *service.Guard, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{adminService: as, guard: guard, logger: logger}
}

// RegisterRoutes mounts every admin route behind the admin role guard.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireRole(h.guard, model.RoleAdmin, h.logger))

	r.Get("/stats", h.stats)
	r.Get("/players", h.players)
	r.Get("/logs", h.logs)
	r.Get("/bans", h.bans)
	r.Post("/ban", h.ban)
	r.Post("/unban", h.unban)
	r.Post("/kick", h.kick)
	r.Post("/command", h.command)
	r.Get("/config", h.getConfig)
	r.Put("/config", h.updateConfig)
	r.Get("/analytics", h.analytics)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.adminService.Stats(r.Context()))
}

func (h *AdminHandler) players(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.adminService.Players(r.Context()))
}

func (h *AdminHandler) logs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, total := h.adminService.Logs(r.Context(), limit, r.URL.Query().Get("level"))
	common.RespondWithJSON(w, http.StatusOK, struct {
		Logs  []model.LogEntry `json:"logs"`
		Total int              `json:"total"`
	}{logs, total})
}

func (h *AdminHandler) bans(w http.ResponseWriter, r *http.Request) {
	bans := h.adminService.Bans(r.Context())
	common.RespondWithJSON(w, http.StatusOK, struct {
		Bans  []model.Ban `json:"bans"`
		Total int         `json:"total"`
	}{bans, len(bans)})
}

func (h *AdminHandler) ban(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())
	var req service.BanRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	ban, err := h.adminService.Ban(r.Context(), actor, req)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		Message string     `json:"message"`
		Ban     *model.Ban `json:"ban"`
	}{"Player " + ban.Username + " has been banned for " + ban.Duration, ban})
}

func (h *AdminHandler) unban(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())
	var req struct {
		Username string `json:"username"`
	}
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	unban, err := h.adminService.Unban(r.Context(), actor, req.Username)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		Message string       `json:"message"`
		Unban   *model.Unban `json:"unban"`
	}{"Player " + unban.Username + " has been unbanned", unban})
}

func (h *AdminHandler) kick(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())
	var req service.KickRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	kick, err := h.adminService.Kick(r.Context(), actor, req)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		Message string      `json:"message"`
		Kick    *model.Kick `json:"kick"`
	}{"Player " + kick.Username + " has been kicked", kick})
}

func (h *AdminHandler) command(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())
	var req struct {
		Command string `json:"command"`
	}
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	exec, err := h.adminService.ExecuteCommand(r.Context(), actor, req.Command)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		Message string                  `json:"message"`
		Command *model.CommandExecution `json:"command"`
	}{"Command executed successfully", exec})
}

func (h *AdminHandler) getConfig(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.adminService.Config(r.Context()))
}

func (h *AdminHandler) updateConfig(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())
	var req struct {
		Config model.ServerSettings `json:"config"`
	}
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	at, err := h.adminService.UpdateConfig(r.Context(), actor, req.Config)
	if err != nil {
		common.RespondWithDomainError(w, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		Message   string    `json:"message"`
		UpdatedAt time.Time `json:"updatedAt"`
		UpdatedBy string    `json:"updatedBy"`
	}{"Server configuration updated successfully", at, actor.Username})
}

func (h *AdminHandler) analytics(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.adminService.Analytics(r.Context(), r.URL.Query().Get("period")))
}
