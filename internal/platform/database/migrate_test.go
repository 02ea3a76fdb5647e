package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cublex/internal/platform/database/migrations"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "00001_create_users.sql")
}

func TestMigrate_PropagatesGooseError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	err := Migrate(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goose up: boom")
	assert.Equal(t, ".", gotDir)
}

func TestStatus_NoDatabase(t *testing.T) {
	orig := DB
	t.Cleanup(func() { DB = orig })
	DB = nil
	assert.Equal(t, "development-mode", Status(context.Background()))
}
