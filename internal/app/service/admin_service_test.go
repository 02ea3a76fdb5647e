package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cublex/internal/common"
	"cublex/internal/domain/model"
)

var adminActor = model.SessionUser{ID: "u-admin", Username: "admin", Role: model.RoleAdmin}

func newTestAdminService(t *testing.T) *AdminService {
	t.Helper()
	catalog, err := LoadDefaultCatalog()
	require.NoError(t, err)
	return NewAdminService(catalog, zerolog.Nop())
}

func TestAdminService_Players(t *testing.T) {
	s := newTestAdminService(t)
	roster := s.Players(context.Background())
	assert.Equal(t, 3, roster.Total)
	assert.Equal(t, 1, roster.Online)
}

func TestAdminService_StatsLimitsLogs(t *testing.T) {
	s := newTestAdminService(t)
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		_, err := s.Kick(ctx, adminActor, KickRequest{Username: "PlayerOne", Reason: "spam"})
		require.NoError(t, err)
	}
	stats := s.Stats(ctx)
	assert.Len(t, stats.Logs, 10)
	assert.Equal(t, 500, stats.Server.MaxPlayers)
}

func TestAdminService_LogsFilterAndLimit(t *testing.T) {
	s := newTestAdminService(t)
	ctx := context.Background()

	all, total := s.Logs(ctx, 0, "")
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	warn, total := s.Logs(ctx, 0, "warn")
	assert.Equal(t, 1, total)
	require.Len(t, warn, 1)
	assert.Equal(t, "High memory usage detected", warn[0].Message)

	one, total := s.Logs(ctx, 1, "INFO")
	assert.Equal(t, 2, total)
	assert.Len(t, one, 1)

	none, total := s.Logs(ctx, 5, "ERROR")
	assert.Zero(t, total)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestAdminService_BanUnban(t *testing.T) {
	s := newTestAdminService(t)
	ctx := context.Background()

	ban, err := s.Ban(ctx, adminActor, BanRequest{Username: "MinerPro", Reason: "griefing", Duration: "7d"})
	require.NoError(t, err)
	assert.Equal(t, "admin", ban.BannedBy)
	assert.Equal(t, "7d", ban.Duration)
	assert.Len(t, s.Bans(ctx), 1)

	logs, _ := s.Logs(ctx, 1, "")
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "MinerPro banned by admin")

	unban, err := s.Unban(ctx, adminActor, "minerpro")
	require.NoError(t, err)
	assert.Equal(t, "admin", unban.UnbannedBy)
	assert.Empty(t, s.Bans(ctx))
}

func TestAdminService_BanDefaultsToPermanent(t *testing.T) {
	s := newTestAdminService(t)
	ban, err := s.Ban(context.Background(), adminActor, BanRequest{Username: "MinerPro"})
	require.NoError(t, err)
	assert.Equal(t, "permanent", ban.Duration)
}

func TestAdminService_RequiredFields(t *testing.T) {
	s := newTestAdminService(t)
	ctx := context.Background()

	_, err := s.Ban(ctx, adminActor, BanRequest{})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = s.Unban(ctx, adminActor, " ")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = s.Kick(ctx, adminActor, KickRequest{})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = s.ExecuteCommand(ctx, adminActor, "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAdminService_ExecuteCommand(t *testing.T) {
	s := newTestAdminService(t)
	exec, err := s.ExecuteCommand(context.Background(), adminActor, "say hello")
	require.NoError(t, err)
	assert.Equal(t, "say hello", exec.Command)
	assert.Equal(t, "admin", exec.ExecutedBy)
	assert.NotEmpty(t, exec.Result)
}

func TestAdminService_UpdateConfig(t *testing.T) {
	s := newTestAdminService(t)
	ctx := context.Background()

	settings := s.Config(ctx).Server
	settings.MaxPlayers = 250
	settings.Difficulty = "hard"
	_, err := s.UpdateConfig(ctx, adminActor, settings)
	require.NoError(t, err)

	cfg := s.Config(ctx)
	assert.Equal(t, 250, cfg.Server.MaxPlayers)
	assert.Equal(t, "hard", cfg.Server.Difficulty)
	assert.Len(t, cfg.Worlds, 3)
	assert.Equal(t, 250, s.Stats(ctx).Server.MaxPlayers)

	bad := settings
	bad.Port = 70000
	_, err = s.UpdateConfig(ctx, adminActor, bad)
	assert.ErrorIs(t, err, common.ErrValidation)

	bad = settings
	bad.Name = ""
	_, err = s.UpdateConfig(ctx, adminActor, bad)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAdminService_Analytics(t *testing.T) {
	s := newTestAdminService(t)
	ctx := context.Background()

	assert.Equal(t, "24h", s.Analytics(ctx, "").Period)
	a := s.Analytics(ctx, "7d")
	assert.Equal(t, "7d", a.Period)
	assert.Len(t, a.PlayerCount.Data, 6)
	assert.Len(t, a.TopPlayers, 3)
}
