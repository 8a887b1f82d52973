package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/docmatrix/pkg/database"
	"github.com/JaimeStill/docmatrix/pkg/logging"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &database.Config{Name: "docmatrix", User: "docmatrix"}

	require.NoError(t, cfg.Finalize(nil))

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, "15m", cfg.ConnMaxLifetime)
	assert.Equal(t, "5s", cfg.ConnTimeout)
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "envhost")
	t.Setenv("TEST_DB_PORT", "5434")
	t.Setenv("TEST_DB_NAME", "envdb")
	t.Setenv("TEST_DB_USER", "envuser")
	t.Setenv("TEST_DB_SSL", "require")
	t.Setenv("TEST_DB_MAX_OPEN", "100")
	t.Setenv("TEST_DB_TIMEOUT", "30s")

	cfg := &database.Config{}
	env := &database.Env{
		Host:         "TEST_DB_HOST",
		Port:         "TEST_DB_PORT",
		Name:         "TEST_DB_NAME",
		User:         "TEST_DB_USER",
		SSLMode:      "TEST_DB_SSL",
		MaxOpenConns: "TEST_DB_MAX_OPEN",
		ConnTimeout:  "TEST_DB_TIMEOUT",
	}

	require.NoError(t, cfg.Finalize(env))

	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, 5434, cfg.Port)
	assert.Equal(t, "envdb", cfg.Name)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, "30s", cfg.ConnTimeout)
}

func TestConfig_Finalize_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing name", database.Config{User: "user"}, "name required"},
		{"missing user", database.Config{Name: "db"}, "user required"},
		{"bad lifetime", database.Config{Name: "db", User: "user", ConnMaxLifetime: "soon"}, "conn_max_lifetime"},
		{"bad timeout", database.Config{Name: "db", User: "user", ConnTimeout: "later"}, "conn_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	base := database.Config{Host: "localhost", Port: 5432, Name: "db", User: "user", SSLMode: "disable"}
	base.Merge(&database.Config{Host: "prod", SSLMode: "verify-full"})

	assert.Equal(t, "prod", base.Host)
	assert.Equal(t, 5432, base.Port)
	assert.Equal(t, "db", base.Name)
	assert.Equal(t, "verify-full", base.SSLMode)
}

func TestConfig_Dsn(t *testing.T) {
	cfg := &database.Config{Name: "db", User: "user", Password: "pw"}
	require.NoError(t, cfg.Finalize(nil))

	dsn := cfg.Dsn()
	for _, part := range []string{"host=localhost", "port=5432", "dbname=db", "user=user", "password=pw", "sslmode=disable"} {
		assert.True(t, strings.Contains(dsn, part), "dsn %q missing %q", dsn, part)
	}
}

func TestSystem_ReadyBeforeStart(t *testing.T) {
	cfg := &database.Config{Name: "db", User: "user"}
	require.NoError(t, cfg.Finalize(nil))

	sys, err := database.New(cfg, logging.Discard())
	require.NoError(t, err)
	assert.NotNil(t, sys.Connection())

	err = sys.Ready(context.Background())
	assert.True(t, errors.Is(err, database.ErrNotReady))
	assert.Equal(t, "database not ready", database.ErrNotReady.Error())
}
