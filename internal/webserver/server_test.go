package webserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelworks/workbench/internal/projectconfig"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	s, err := New(Config{
		Port:       8999,
		DataDir:    filepath.Join(dir, "data"),
		ResultsDir: filepath.Join(dir, "results"),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return s
}

func TestServer_ServesAPI(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
}

func TestServer_ServesDashboard(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "<html"))
}

func TestServer_DefaultsFromProject(t *testing.T) {
	s, err := New(Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	require.Equal(t, projectconfig.DefaultServerPort, s.cfg.Port)
	require.Equal(t, projectconfig.DefaultDataDir, s.cfg.DataDir)
	require.Equal(t, projectconfig.DefaultResultsDir, s.cfg.ResultsDir)
}

func TestBuildHandlers_NilProject(t *testing.T) {
	dir := t.TempDir()
	h := BuildHandlers(Config{
		DataDir:    dir,
		ResultsDir: filepath.Join(dir, "results"),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NotNil(t, h)
}
