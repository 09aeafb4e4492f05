package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mazerunner/config"
	"github.com/katalvlaran/mazerunner/internal/app"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.Stores) {
	t.Helper()
	ctx := context.Background()
	cfg, err := config.Parse([]byte(`storage { backend = "memory" }`), "test.hcl", nil)
	require.NoError(t, err)
	stores, err := app.NewStores(ctx, cfg)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	proc, err := app.NewProcessor(cfg, stores, reg)
	require.NoError(t, err)

	srv := httptest.NewServer(newMux(stores, proc, reg))
	t.Cleanup(srv.Close)
	return srv, stores
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestMux_EndToEnd(t *testing.T) {
	srv, stores := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, stores.Objects.PutObject(ctx, "mazes", "m.csv", []byte("0,1,0\n0,1,0\n")))

	code, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)

	resp, err := http.Post(srv.URL+"/notifications", "application/json",
		strings.NewReader(`{"bucket":"mazes","key":"m.csv"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	code, body = get(t, srv.URL+"/records?file_name=processed_m.csv")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"file_name":"processed_m.csv","stats":{"iterations":2,"length_of_path":2}}`, body)

	code, body = get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `mazerunner_mazes_processed_total{outcome="processed"} 1`)
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`storage { backend = "tape" }`), 0o600))

	err := run(context.Background(), io.Discard, []string{"-config", path})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRun_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
log { level = "error" }
storage { backend = "memory" }
server { addr = "127.0.0.1:0" }
`), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, run(ctx, io.Discard, []string{"-config", path}))
}
