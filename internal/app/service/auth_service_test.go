package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cublex/internal/common"
	"cublex/internal/domain/model"
	"cublex/internal/domain/repository"
)

type authFixture struct {
	auth     *AuthService
	users    repository.UserRepository
	sessions *SessionManager
	guard    *Guard
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	sessions := NewSessionManager(repository.NewMemorySessionRepository(), time.Hour)
	return &authFixture{
		auth:     NewAuthService(users, sessions, zerolog.Nop()),
		users:    users,
		sessions: sessions,
		guard:    NewGuard(sessions),
	}
}

func aliceRequest() RegisterRequest {
	return RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret123", MinecraftUsername: "AliceMC"}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	res, err := f.auth.Register(ctx, aliceRequest())
	require.NoError(t, err)
	assert.Equal(t, model.RoleStandard, res.User.Role)
	assert.Empty(t, res.User.HashedPassword, "hash must not leave the service")
	assert.Equal(t, "AliceMC", res.User.MinecraftUsername)
	require.NotNil(t, res.Session)

	stored, err := f.users.FindByUsernameOrEmail(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.HashedPassword)
	assert.NotContains(t, stored.HashedPassword, "secret123")

	resolved, err := f.sessions.Resolve(ctx, res.Session.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, res.User.ID, resolved.User.ID)

	login, err := f.auth.Login(ctx, LoginRequest{Identifier: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
	assert.NotEqual(t, res.Session.Token, login.Session.Token)
	require.NotNil(t, login.User.LastLoginAt)

	byEmail, err := f.auth.Login(ctx, LoginRequest{Identifier: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, byEmail.User.ID)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	tests := []struct {
		name string
		mut  func(*RegisterRequest)
		msg  string
	}{
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, "username is required"},
		{"blank username", func(r *RegisterRequest) { r.Username = "   " }, "username is required"},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email is required"},
		{"missing password", func(r *RegisterRequest) { r.Password = "" }, "password is required"},
		{"password too long", func(r *RegisterRequest) { r.Password = strings.Repeat("p", 73) }, "at most 72 bytes"},
		{"unknown role", func(r *RegisterRequest) { r.Role = "owner" }, "unknown role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := aliceRequest()
			tt.mut(&req)
			_, err := f.auth.Register(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	u, err := f.users.FindByUsernameOrEmail(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	_, err := f.auth.Register(ctx, aliceRequest())
	require.NoError(t, err)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"same username", RegisterRequest{Username: "alice", Email: "other@x.com", Password: "pw"}},
		{"same email", RegisterRequest{Username: "bob", Email: "a@x.com", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tt.req)
			assert.ErrorIs(t, err, common.ErrDuplicateIdentity)
		})
	}

	bob, err := f.users.FindByUsernameOrEmail(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, bob, "no user is created on conflict")
	other, err := f.users.FindByUsernameOrEmail(ctx, "other@x.com")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	_, err := f.auth.Register(ctx, aliceRequest())
	require.NoError(t, err)

	_, wrongPassword := f.auth.Login(ctx, LoginRequest{Identifier: "alice", Password: "wrong"})
	_, unknownUser := f.auth.Login(ctx, LoginRequest{Identifier: "mallory", Password: "secret123"})

	require.ErrorIs(t, wrongPassword, common.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Equal(t, common.PublicMessage(wrongPassword), common.PublicMessage(unknownUser))
	assert.Equal(t, common.HTTPStatusFromError(wrongPassword), common.HTTPStatusFromError(unknownUser))
}

func TestAuthService_LoginEmptyFields(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.auth.Login(context.Background(), LoginRequest{})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	res, err := f.auth.Register(ctx, aliceRequest())
	require.NoError(t, err)

	assert.NoError(t, f.auth.Logout(ctx, res.Session.Token))
	assert.NoError(t, f.auth.Logout(ctx, res.Session.Token))
	assert.NoError(t, f.auth.Logout(ctx, "never-issued"))

	current, err := f.auth.Current(ctx, res.Session.Token)
	assert.NoError(t, err)
	assert.Nil(t, current)
}

// Walks a standard user through registration, a failed and a successful
// login, an admin-only check and logout.
func TestAuthService_AliceScenario(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	reg, err := f.auth.Register(ctx, RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStandard, reg.User.Role)

	_, err = f.auth.Login(ctx, LoginRequest{Identifier: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	login, err := f.auth.Login(ctx, LoginRequest{Identifier: "alice", Password: "secret123"})
	require.NoError(t, err)
	token := login.Session.Token

	_, err = f.guard.RequireRole(ctx, token, model.RoleAdmin)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, f.auth.Logout(ctx, token))
	resolved, err := f.sessions.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestAuthService_Current(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	res, err := f.auth.Register(ctx, aliceRequest())
	require.NoError(t, err)

	current, err := f.auth.Current(ctx, res.Session.Token)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, res.User.Snapshot(), *current)

	anon, err := f.auth.Current(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, anon)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	require.NoError(t, f.auth.EnsureAdmin(ctx, "admin", "admin@cublex.com", "password"))
	require.NoError(t, f.auth.EnsureAdmin(ctx, "admin", "admin@cublex.com", "password"), "seeding twice is harmless")

	login, err := f.auth.Login(ctx, LoginRequest{Identifier: "admin@cublex.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, login.User.Role)

	user, err := f.guard.RequireRole(ctx, login.Session.Token, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

type brokenUserRepo struct {
	repository.UserRepository
}

func (brokenUserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	return nil, errors.New("connection reset")
}

func TestAuthService_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	sessions := NewSessionManager(repository.NewMemorySessionRepository(), time.Hour)
	auth := NewAuthService(brokenUserRepo{}, sessions, zerolog.Nop())

	_, err := auth.Login(context.Background(), LoginRequest{Identifier: "alice", Password: "pw"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, 500, common.HTTPStatusFromError(err))
	assert.Equal(t, "internal server error", common.PublicMessage(err))
}
