package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cublex/internal/common"
	"cublex/internal/domain/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultLogLimit      = 50
	statsLogLimit        = 10
	maxRetainedLogs      = 500
	DefaultAnalyticsSpan = "24h"
)

// AdminService backs the admin panel. Its state lives in memory and is seeded
// from the catalog.
type AdminService struct {
	mu        sync.RWMutex
	stats     model.ServerStats
	players   []model.PlayerStat
	logs      []model.LogEntry // newest first
	bans      map[string]model.Ban
	config    model.ServerConfig
	analytics model.Analytics

	logger zerolog.Logger
	now    func() time.Time
}

func NewAdminService(catalog *Catalog, logger zerolog.Logger) *AdminService {
	s := &AdminService{
		stats:     catalog.Admin.Stats,
		players:   append([]model.PlayerStat(nil), catalog.Admin.Players...),
		bans:      make(map[string]model.Ban),
		config:    catalog.Admin.Config,
		analytics: catalog.Admin.Analytics,
		logger:    logger.With().Str("component", "admin").Logger(),
		now:       time.Now,
	}
	now := s.now().UTC()
	for i, l := range catalog.Admin.Logs {
		s.logs = append(s.logs, model.LogEntry{
			ID:        uuid.NewString(),
			Timestamp: now.Add(-time.Duration(i) * time.Minute),
			Level:     l.Level,
			Message:   l.Message,
			Player:    l.Player,
		})
	}
	return s
}

type AdminStats struct {
	Server  model.ServerStats  `json:"server"`
	Players []model.PlayerStat `json:"players"`
	Logs    []model.LogEntry   `json:"logs"`
}

func (s *AdminService) Stats(ctx context.Context) AdminStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AdminStats{
		Server:  s.stats,
		Players: append([]model.PlayerStat(nil), s.players...),
		Logs:    append([]model.LogEntry(nil), s.logs[:min(statsLogLimit, len(s.logs))]...),
	}
}

type PlayerRoster struct {
	Players []model.PlayerStat `json:"players"`
	Total   int                `json:"total"`
	Online  int                `json:"online"`
}

func (s *AdminService) Players(ctx context.Context) PlayerRoster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster := PlayerRoster{
		Players: append([]model.PlayerStat(nil), s.players...),
		Total:   len(s.players),
	}
	for _, p := range s.players {
		if p.Online() {
			roster.Online++
		}
	}
	return roster
}

// Logs returns up to limit entries, newest first, optionally filtered by
// level. total counts every entry that matched the filter.
func (s *AdminService) Logs(ctx context.Context, limit int, level string) (logs []model.LogEntry, total int) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	level = strings.ToUpper(strings.TrimSpace(level))

	s.mu.RLock()
	defer s.mu.RUnlock()
	logs = []model.LogEntry{}
	for _, l := range s.logs {
		if level != "" && l.Level != level {
			continue
		}
		total++
		if len(logs) < limit {
			logs = append(logs, l)
		}
	}
	return logs, total
}

type BanRequest struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
	Duration string `json:"duration"`
}

func (s *AdminService) Ban(ctx context.Context, actor model.SessionUser, req BanRequest) (*model.Ban, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, common.Validationf("username is required")
	}
	duration := strings.TrimSpace(req.Duration)
	if duration == "" {
		duration = "permanent"
	}
	ban := model.Ban{
		Username: username,
		Reason:   req.Reason,
		Duration: duration,
		BannedBy: actor.Username,
		BannedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.bans[strings.ToLower(username)] = ban
	s.appendLogLocked(model.LogLevelWarn, fmt.Sprintf("Player %s banned by %s for %s: %s", username, actor.Username, duration, req.Reason), &username)
	s.mu.Unlock()

	s.logger.Info().Str("player", username).Str("by", actor.Username).Str("duration", duration).Msg("player banned")
	return &ban, nil
}

func (s *AdminService) Unban(ctx context.Context, actor model.SessionUser, username string) (*model.Unban, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, common.Validationf("username is required")
	}
	unban := model.Unban{
		Username:   username,
		UnbannedBy: actor.Username,
		UnbannedAt: s.now().UTC(),
	}

	s.mu.Lock()
	delete(s.bans, strings.ToLower(username))
	s.appendLogLocked(model.LogLevelInfo, fmt.Sprintf("Player %s unbanned by %s", username, actor.Username), &username)
	s.mu.Unlock()

	s.logger.Info().Str("player", username).Str("by", actor.Username).Msg("player unbanned")
	return &unban, nil
}

// Bans lists active bans ordered by username.
func (s *AdminService) Bans(ctx context.Context) []model.Ban {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bans := make([]model.Ban, 0, len(s.bans))
	for _, b := range s.bans {
		bans = append(bans, b)
	}
	sort.Slice(bans, func(i, j int) bool { return bans[i].Username < bans[j].Username })
	return bans
}

type KickRequest struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

func (s *AdminService) Kick(ctx context.Context, actor model.SessionUser, req KickRequest) (*model.Kick, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, common.Validationf("username is required")
	}
	kick := model.Kick{
		Username: username,
		Reason:   req.Reason,
		KickedBy: actor.Username,
		KickedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.appendLogLocked(model.LogLevelInfo, fmt.Sprintf("Player %s kicked by %s: %s", username, actor.Username, req.Reason), &username)
	s.mu.Unlock()

	s.logger.Info().Str("player", username).Str("by", actor.Username).Msg("player kicked")
	return &kick, nil
}

func (s *AdminService) ExecuteCommand(ctx context.Context, actor model.SessionUser, command string) (*model.CommandExecution, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, common.Validationf("command is required")
	}
	exec := model.CommandExecution{
		Command:    command,
		ExecutedBy: actor.Username,
		ExecutedAt: s.now().UTC(),
		Result:     "Command completed successfully",
	}

	s.mu.Lock()
	s.appendLogLocked(model.LogLevelInfo, fmt.Sprintf("Command %q executed by %s", command, actor.Username), nil)
	s.mu.Unlock()

	s.logger.Info().Str("command", command).Str("by", actor.Username).Msg("server command executed")
	return &exec, nil
}

func (s *AdminService) Config(ctx context.Context) model.ServerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.config
	cfg.Worlds = append([]model.World(nil), s.config.Worlds...)
	return cfg
}

// UpdateConfig replaces the server settings and returns the time of the change.
func (s *AdminService) UpdateConfig(ctx context.Context, actor model.SessionUser, settings model.ServerSettings) (time.Time, error) {
	switch {
	case strings.TrimSpace(settings.Name) == "":
		return time.Time{}, common.Validationf("server name is required")
	case settings.Port < 1 || settings.Port > 65535:
		return time.Time{}, common.Validationf("port must be between 1 and 65535")
	case settings.MaxPlayers < 1:
		return time.Time{}, common.Validationf("maxPlayers must be positive")
	case settings.SpawnProtection < 0:
		return time.Time{}, common.Validationf("spawnProtection must not be negative")
	}

	at := s.now().UTC()
	s.mu.Lock()
	s.config.Server = settings
	s.stats.MaxPlayers = settings.MaxPlayers
	s.appendLogLocked(model.LogLevelInfo, fmt.Sprintf("Server configuration updated by %s", actor.Username), nil)
	s.mu.Unlock()

	s.logger.Info().Str("by", actor.Username).Msg("server configuration updated")
	return at, nil
}

func (s *AdminService) Analytics(ctx context.Context, period string) model.Analytics {
	period = strings.TrimSpace(period)
	if period == "" {
		period = DefaultAnalyticsSpan
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.analytics
	a.Period = period
	return a
}

func (s *AdminService) appendLogLocked(level, message string, player *string) {
	entry := model.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Level:     level,
		Message:   message,
		Player:    player,
	}
	s.logs = append([]model.LogEntry{entry}, s.logs...)
	if len(s.logs) > maxRetainedLogs {
		s.logs = s.logs[:maxRetainedLogs]
	}
}
