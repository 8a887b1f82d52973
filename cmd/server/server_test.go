package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/docmatrix/internal/config"
	"github.com/JaimeStill/docmatrix/internal/infrastructure"
)

func testInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Name = "docmatrix"
	cfg.Database.User = "docmatrix"
	cfg.Storage.BasePath = t.TempDir()
	require.NoError(t, cfg.Finalize())

	infra, err := infrastructure.New(cfg)
	require.NoError(t, err)
	return infra
}

func TestRouter_Health(t *testing.T) {
	router := buildRouter(testInfra(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_ReadyBeforeStartup(t *testing.T) {
	router := buildRouter(testInfra(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTPServer_StartRejectsBadAddr(t *testing.T) {
	infra := testInfra(t)
	srv := newHTTPServer(&config.ServerConfig{
		Host:            "256.0.0.1",
		Port:            1,
		ShutdownTimeout: "1s",
	}, http.NotFoundHandler(), infra.Logger)

	assert.Error(t, srv.Start(infra.Lifecycle))
}
