// Package config loads runtime configuration for the maze pipeline from an
// HCL file or from the process environment.
//
// HCL files may reference environment variables through the env object:
//
//	target_bucket = env.TARGET_BUCKET
//
//	storage {
//	  backend = "aws"
//	  table   = env.TABLE_NAME
//	}
//
// Files ending in .toml are read as TOML with the same keys and no env
// interpolation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Defaults applied to fields left unset.
const (
	DefaultKeyPrefix  = "processed"
	DefaultStepLimit  = 1_000_000_000
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	DefaultBackend    = BackendFS
	DefaultDataDir    = "./data"
	DefaultServerAddr = ":8080"
	DefaultEventName  = "object_created"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFS     = "fs"
	BackendAWS    = "aws"
	BackendMySQL  = "mysql"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds everything a pipeline process needs.
type Config struct {
	KeyPrefix     string              `hcl:"key_prefix,optional" toml:"key_prefix"`
	TargetBucket  string              `hcl:"target_bucket,optional" toml:"target_bucket"`
	StepLimit     int                 `hcl:"step_limit,optional" toml:"step_limit"`
	Log           *LogConfig          `hcl:"log,block" toml:"log"`
	Storage       *StorageConfig      `hcl:"storage,block" toml:"storage"`
	Server        *ServerConfig       `hcl:"server,block" toml:"server"`
	Notifications *NotificationConfig `hcl:"notifications,block" toml:"notifications"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	Level  string `hcl:"level,optional" toml:"level"`
	Format string `hcl:"format,optional" toml:"format"`
}

// StorageConfig selects the object and record store backend.
type StorageConfig struct {
	Backend string `hcl:"backend,optional" toml:"backend"`
	Dir     string `hcl:"dir,optional" toml:"dir"`
	Table   string `hcl:"table,optional" toml:"table"`
	Region  string `hcl:"region,optional" toml:"region"`

	// DSN is the MySQL data source name for the mysql backend.
	DSN string `hcl:"dsn,optional" toml:"dsn"`
}

// ServerConfig configures the HTTP listener of the daemon.
type ServerConfig struct {
	Addr string `hcl:"addr,optional" toml:"addr"`
}

// NotificationConfig configures the socket.io object-created subscriber.
type NotificationConfig struct {
	URL       string `hcl:"url" toml:"url"`
	Namespace string `hcl:"namespace,optional" toml:"namespace"`
	Event     string `hcl:"event,optional" toml:"event"`

	// SourceBucket is used for events that carry only a key.
	SourceBucket string `hcl:"source_bucket,optional" toml:"source_bucket"`
}

// Load reads and decodes the file at path. HCL files resolve env.*
// against the current process environment.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(src, path)
	}
	return Parse(src, path, os.Environ())
}

// ParseTOML decodes TOML source using the same keys as the HCL form.
func ParseTOML(src []byte, filename string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(src), &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to parse TOML file %s: %w", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), filename)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse decodes HCL source. environ is a list of KEY=VALUE pairs exposed
// to expressions as env.KEY.
func Parse(src []byte, filename string, environ []string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse HCL file %s: %w", filename, diags)
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, envContext(environ), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode HCL file %s: %w", filename, diags)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envContext builds an evaluation context with a single "env" object.
func envContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// FromEnv builds a Config from environment variables, the way the Lambda
// entry points are configured: TARGET_BUCKET, KEY_PREFIX, TABLE_NAME,
// STEP_LIMIT, LOG_LEVEL, LOG_FORMAT and AWS_REGION.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Config{
		KeyPrefix:    getenv("KEY_PREFIX"),
		TargetBucket: getenv("TARGET_BUCKET"),
		Log: &LogConfig{
			Level:  getenv("LOG_LEVEL"),
			Format: getenv("LOG_FORMAT"),
		},
		Storage: &StorageConfig{
			Backend: BackendAWS,
			Table:   getenv("TABLE_NAME"),
			Region:  getenv("AWS_REGION"),
		},
	}
	if s := getenv("STEP_LIMIT"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: STEP_LIMIT %q: %v", ErrInvalid, s, err)
		}
		cfg.StepLimit = n
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SolverFromEnv is FromEnv for the S3-triggered solver, which also requires
// TARGET_BUCKET. Output written back to the source bucket would trigger the
// solver again on its own result.
func SolverFromEnv(getenv func(string) string) (*Config, error) {
	cfg, err := FromEnv(getenv)
	if err != nil {
		return nil, err
	}
	if cfg.TargetBucket == "" {
		return nil, fmt.Errorf("%w: TARGET_BUCKET is required", ErrInvalid)
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields and missing blocks.
func (c *Config) applyDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	if c.StepLimit == 0 {
		c.StepLimit = DefaultStepLimit
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultBackend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = DefaultDataDir
	}
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Notifications != nil {
		if c.Notifications.Namespace == "" {
			c.Notifications.Namespace = "/"
		}
		if c.Notifications.Event == "" {
			c.Notifications.Event = DefaultEventName
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.StepLimit < 0 {
		return fmt.Errorf("%w: step_limit must not be negative (%d)", ErrInvalid, c.StepLimit)
	}
	if c.Log != nil {
		switch c.Log.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%w: log level must be 'debug', 'info', 'warn', or 'error', got %q", ErrInvalid, c.Log.Level)
		}
		if c.Log.Format != "text" && c.Log.Format != "json" {
			return fmt.Errorf("%w: log format must be 'text' or 'json', got %q", ErrInvalid, c.Log.Format)
		}
	}
	if c.Storage != nil {
		switch c.Storage.Backend {
		case BackendMemory, BackendFS:
		case BackendAWS:
			if c.Storage.Table == "" {
				return fmt.Errorf("%w: storage backend %q requires a table", ErrInvalid, BackendAWS)
			}
		case BackendMySQL:
			if c.Storage.DSN == "" {
				return fmt.Errorf("%w: storage backend %q requires a dsn", ErrInvalid, BackendMySQL)
			}
		default:
			return fmt.Errorf("%w: unknown storage backend %q", ErrInvalid, c.Storage.Backend)
		}
	}
	if c.Notifications != nil && c.Notifications.URL == "" {
		return fmt.Errorf("%w: notifications block requires a url", ErrInvalid)
	}
	return nil
}
