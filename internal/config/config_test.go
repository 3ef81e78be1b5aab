package config

import (
	"testing"
	"time"

	"github.com/medipoint-hq/medipoint-gateway/pkg/httpclient"
)

var configEnvKeys = []string{
	"APP_NAME", "APP_ENV", "LOG_LEVEL",
	"MEDIPOINT_API_BASE_URL", "MEDIPOINT_API_TIMEOUT_MS", "MEDIPOINT_API_DEFAULT_HEADERS",
	"TOKEN_STORE_TYPE", "TOKEN_STORE_PATH",
	"PUBLISHERS_FILE", "EXPORT_INTERVAL",
	"MOCK_ADDR", "MOCK_TOKEN",
}

// clearEnv blanks every key Load reads; viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != httpclient.DefaultBaseURL {
		t.Fatalf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.APITimeoutMs != 10000 {
		t.Fatalf("APITimeoutMs = %d", cfg.APITimeoutMs)
	}
	if cfg.ExportInterval != 300*time.Second {
		t.Fatalf("ExportInterval = %v", cfg.ExportInterval)
	}
	if cfg.MockAddr != ":8089" || cfg.MockToken != "" {
		t.Fatalf("mock defaults = %q %q", cfg.MockAddr, cfg.MockToken)
	}

	client := cfg.ClientConfig()
	if client.DefaultHeaders["Content-Type"] != "application/json" {
		t.Fatalf("missing default content type: %v", client.DefaultHeaders)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDIPOINT_API_BASE_URL", "http://localhost:8089/")
	t.Setenv("MEDIPOINT_API_TIMEOUT_MS", "2500")
	t.Setenv("MEDIPOINT_API_DEFAULT_HEADERS", "X-Store=042, Accept-Language=zh-TW")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	client := cfg.ClientConfig()
	if client.BaseURL != "http://localhost:8089" {
		t.Fatalf("BaseURL = %s", client.BaseURL)
	}
	if client.Timeout() != 2500*time.Millisecond {
		t.Fatalf("Timeout = %v", client.Timeout())
	}
	if client.DefaultHeaders["X-Store"] != "042" || client.DefaultHeaders["Accept-Language"] != "zh-TW" {
		t.Fatalf("unexpected headers: %v", client.DefaultHeaders)
	}
}

func TestLoadIgnoresUnprefixedAPIVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_TIMEOUT_MS", "900000")
	t.Setenv("API_DEFAULT_HEADERS", "X-Other=1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APITimeoutMs != 10000 {
		t.Fatalf("APITimeoutMs = %d, generic API_TIMEOUT_MS must not apply", cfg.APITimeoutMs)
	}
	if _, ok := cfg.ClientConfig().DefaultHeaders["X-Other"]; ok {
		t.Fatalf("generic API_DEFAULT_HEADERS must not apply")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDIPOINT_API_TIMEOUT_MS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestParseHeadersRejectsMalformedEntry(t *testing.T) {
	if _, err := parseHeaders("X-Store"); err == nil {
		t.Fatalf("expected error for entry without '='")
	}
}
