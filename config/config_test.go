package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mazerunner/config"
)

const sample = `
key_prefix    = "solved"
target_bucket = env.TARGET_BUCKET
step_limit    = 5000

log {
  level  = "DEBUG"
  format = "text"
}

storage {
  backend = "aws"
  table   = "${env.TABLE_NAME}-records"
}

notifications {
  url = "http://localhost:3000"
}
`

func TestParse_Full(t *testing.T) {
	env := []string{"TARGET_BUCKET=mazes-out", "TABLE_NAME=prod", "BROKEN"}
	cfg, err := config.Parse([]byte(sample), "sample.hcl", env)
	require.NoError(t, err)

	assert.Equal(t, "solved", cfg.KeyPrefix)
	assert.Equal(t, "mazes-out", cfg.TargetBucket)
	assert.Equal(t, 5000, cfg.StepLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, config.BackendAWS, cfg.Storage.Backend)
	assert.Equal(t, "prod-records", cfg.Storage.Table)
	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	require.NotNil(t, cfg.Notifications)
	assert.Equal(t, "/", cfg.Notifications.Namespace)
	assert.Equal(t, config.DefaultEventName, cfg.Notifications.Event)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse([]byte(""), "empty.hcl", nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultKeyPrefix, cfg.KeyPrefix)
	assert.Equal(t, config.DefaultStepLimit, cfg.StepLimit)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, config.BackendFS, cfg.Storage.Backend)
	assert.Equal(t, config.DefaultDataDir, cfg.Storage.Dir)
	assert.Nil(t, cfg.Notifications)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		invalid bool
	}{
		{"Syntax", `key_prefix = `, false},
		{"UnknownAttribute", `colour = "blue"`, false},
		{"MissingEnv", `target_bucket = env.NOPE`, false},
		{"NegativeLimit", `step_limit = -1`, true},
		{"BadLevel", "log {\n level = \"loud\"\n}", true},
		{"BadFormat", "log {\n format = \"xml\"\n}", true},
		{"BadBackend", "storage {\n backend = \"tape\"\n}", true},
		{"AWSWithoutTable", "storage {\n backend = \"aws\"\n}", true},
		{"MySQLWithoutDSN", "storage {\n backend = \"mysql\"\n}", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.src), "bad.hcl", nil)
			require.Error(t, err)
			if tc.invalid {
				assert.ErrorIs(t, err, config.ErrInvalid)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mazed.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {\n addr = \":9999\"\n}\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

const sampleTOML = `
key_prefix = "solved"
step_limit = 77

[log]
format = "text"

[storage]
backend = "mysql"
dsn     = "maze:secret@tcp(db:3306)/mazes"

[notifications]
url           = "http://hub:3000"
source_bucket = "incoming"
`

func TestParseTOML(t *testing.T) {
	cfg, err := config.ParseTOML([]byte(sampleTOML), "mazed.toml")
	require.NoError(t, err)
	assert.Equal(t, "solved", cfg.KeyPrefix)
	assert.Equal(t, 77, cfg.StepLimit)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.BackendMySQL, cfg.Storage.Backend)
	assert.Equal(t, "maze:secret@tcp(db:3306)/mazes", cfg.Storage.DSN)
	assert.Equal(t, "incoming", cfg.Notifications.SourceBucket)
	assert.Equal(t, config.DefaultEventName, cfg.Notifications.Event)

	_, err = config.ParseTOML([]byte("colour = \"blue\"\n"), "bad.toml")
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.ParseTOML([]byte("key_prefix = \n"), "bad.toml")
	assert.Error(t, err)
}

func TestLoad_TOMLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mazed.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":7000\"\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"TARGET_BUCKET": "out",
		"TABLE_NAME":    "records",
		"STEP_LIMIT":    "42",
	}
	cfg, err := config.FromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.TargetBucket)
	assert.Equal(t, config.DefaultKeyPrefix, cfg.KeyPrefix)
	assert.Equal(t, "records", cfg.Storage.Table)
	assert.Equal(t, 42, cfg.StepLimit)

	env["STEP_LIMIT"] = "lots"
	_, err = config.FromEnv(func(k string) string { return env[k] })
	assert.ErrorIs(t, err, config.ErrInvalid)

	delete(env, "STEP_LIMIT")
	delete(env, "TABLE_NAME")
	_, err = config.FromEnv(func(k string) string { return env[k] })
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSolverFromEnv_RequiresTargetBucket(t *testing.T) {
	env := map[string]string{"TABLE_NAME": "records"}
	getenv := func(k string) string { return env[k] }

	cfg, err := config.FromEnv(getenv)
	require.NoError(t, err, "records lambda runs without a target bucket")
	assert.Empty(t, cfg.TargetBucket)

	_, err = config.SolverFromEnv(getenv)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorContains(t, err, "TARGET_BUCKET")

	env["TARGET_BUCKET"] = "mazes-solved"
	cfg, err = config.SolverFromEnv(getenv)
	require.NoError(t, err)
	assert.Equal(t, "mazes-solved", cfg.TargetBucket)
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	config.NewLogger("warn", "json", &buf).Info("dropped")
	assert.Empty(t, buf.String())

	config.NewLogger("debug", "json", &buf).Debug("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)

	buf.Reset()
	config.NewLogger("info", "text", &buf).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
