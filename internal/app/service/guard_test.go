package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cublex/internal/common"
	"cublex/internal/domain/model"
)

func TestGuard(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessionManager(time.Hour)
	guard := NewGuard(sessions)

	standard, err := sessions.Start(ctx, testUser())
	require.NoError(t, err)

	admin := testUser()
	admin.ID = "u-2"
	admin.Username = "admin"
	admin.Role = model.RoleAdmin
	adminSession, err := sessions.Start(ctx, admin)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		role    model.Role
		wantErr error
	}{
		{"anonymous", "", model.RoleAdmin, common.ErrUnauthenticated},
		{"unknown token", "forged", model.RoleAdmin, common.ErrUnauthenticated},
		{"standard user needs admin", standard.Token, model.RoleAdmin, common.ErrForbidden},
		{"admin needs admin", adminSession.Token, model.RoleAdmin, nil},
		{"standard needs standard", standard.Token, model.RoleStandard, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := guard.RequireRole(ctx, tt.token, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
		})
	}
}

func TestGuard_RequireAuthenticatedAfterDestroy(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessionManager(time.Hour)
	guard := NewGuard(sessions)

	s, err := sessions.Start(ctx, testUser())
	require.NoError(t, err)

	user, err := guard.RequireAuthenticated(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	require.NoError(t, sessions.Destroy(ctx, s.Token))
	_, err = guard.RequireAuthenticated(ctx, s.Token)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}
