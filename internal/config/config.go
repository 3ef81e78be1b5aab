package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/medipoint-hq/medipoint-gateway/pkg/httpclient"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL        string            `mapstructure:"medipoint_api_base_url"`
	APITimeoutMs      int               `mapstructure:"medipoint_api_timeout_ms"`
	APIHeadersRaw     string            `mapstructure:"medipoint_api_default_headers"`
	APIDefaultHeaders map[string]string `mapstructure:"-"`

	TokenStoreType string `mapstructure:"token_store_type"`
	TokenStorePath string `mapstructure:"token_store_path"`

	PublishersFile        string        `mapstructure:"publishers_file"`
	ExportIntervalSeconds int64         `mapstructure:"export_interval"`
	ExportInterval        time.Duration `mapstructure:"-"`

	MockAddr  string `mapstructure:"mock_addr"`
	MockToken string `mapstructure:"mock_token"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "medipoint-gateway")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("medipoint_api_base_url", "")
	v.SetDefault("medipoint_api_timeout_ms", httpclient.DefaultTimeoutMs)
	v.SetDefault("medipoint_api_default_headers", "")
	v.SetDefault("token_store_type", "bbolt")
	v.SetDefault("token_store_path", "./data/medipoint.db")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("export_interval", 300) // seconds
	v.SetDefault("mock_addr", ":8089")
	v.SetDefault("mock_token", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = httpclient.DefaultBaseURL
	}
	if cfg.APITimeoutMs <= 0 {
		return nil, fmt.Errorf("invalid medipoint_api_timeout_ms (must be positive milliseconds)")
	}

	headers, err := parseHeaders(cfg.APIHeadersRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid medipoint_api_default_headers: %w", err)
	}
	cfg.APIDefaultHeaders = headers

	if cfg.ExportIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid export_interval (must be positive seconds)")
	}
	cfg.ExportInterval = time.Duration(cfg.ExportIntervalSeconds) * time.Second

	return &cfg, nil
}

// ClientConfig returns the explicit transport configuration.
func (c *Config) ClientConfig() httpclient.Config {
	return httpclient.Config{
		BaseURL:        c.APIBaseURL,
		TimeoutMs:      c.APITimeoutMs,
		DefaultHeaders: c.APIDefaultHeaders,
	}.Normalize()
}

// parseHeaders decodes "Key=Value,Other=Value" into a header map.
func parseHeaders(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, val, ok := strings.Cut(pair, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed header entry %q (expected Key=Value)", pair)
		}
		out[key] = val
	}
	return out, nil
}
