// Package config provides configuration loading and validation for the CLI and the local server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/navinkumarg9/pro-resume-mentor/internal/rendering"
)

// Environment variables that override file values.
const (
	EnvStorageURL = "RESUME_STORAGE_URL"
	EnvChromePath = "CHROME_PATH"
	EnvPort       = "PORT"
)

// Config represents the configuration that can be loaded from a YAML or JSON file.
// Missing values keep their defaults.
type Config struct {
	StorageURL      string `json:"storage_url" yaml:"storage_url" validate:"required"`           // storage.Open URL of the saved-resume library
	Template        string `json:"template" yaml:"template" validate:"omitempty,template"`       // Template of new documents
	AnalysisDelayMS int    `json:"analysis_delay_ms" yaml:"analysis_delay_ms" validate:"min=0,max=60000"` // Quiet period before automatic analysis
	LogLevel        string `json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`

	Export ExportConfig `json:"export" yaml:"export"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// ExportConfig configures PDF export.
type ExportConfig struct {
	Mode           string `json:"mode" yaml:"mode" validate:"oneof=raster print"`
	ChromePath     string `json:"chrome_path" yaml:"chrome_path"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" validate:"min=1,max=600"`
	AutoSave       bool   `json:"auto_save" yaml:"auto_save"` // Save to the library after a successful export
}

// ServerConfig configures the local editing API.
type ServerConfig struct {
	Host        string   `json:"host" yaml:"host"`
	Port        int      `json:"port" yaml:"port" validate:"min=1,max=65535"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" validate:"dive,required"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		StorageURL:      "file://.resume-mentor",
		AnalysisDelayMS: 1000,
		LogLevel:        "info",
		Export: ExportConfig{
			Mode:           "raster",
			TimeoutSeconds: 60,
			AutoSave:       true,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// Load loads configuration from path, applies environment overrides and validates the result.
// An empty path loads the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file type %q", filepath.Ext(path))
	}
	return nil
}

// ApplyEnv overrides values from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvStorageURL); v != "" {
		c.StorageURL = v
	}
	if v := getenv(EnvChromePath); v != "" {
		c.Export.ChromePath = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a number, got %q", EnvPort, v)
		}
		c.Server.Port = port
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("template", func(fl validator.FieldLevel) bool {
		return rendering.Known(fl.Field().String())
	})
	return v
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("'%s' failed '%s' (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

// AnalysisDelay returns the quiet period before automatic analysis.
func (c *Config) AnalysisDelay() time.Duration {
	return time.Duration(c.AnalysisDelayMS) * time.Millisecond
}

// ExportTimeout returns the time limit of one browser run.
func (c *Config) ExportTimeout() time.Duration {
	return time.Duration(c.Export.TimeoutSeconds) * time.Second
}

// Addr returns the listen address of the local server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
