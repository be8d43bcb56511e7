package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestNewConfig_Defaults(t *testing.T) {
	resetFlagsAndEnv(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected Host '0.0.0.0', got %s", cfg.Host)
	}
	if cfg.Port != 80 {
		t.Errorf("Expected Port 80, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got %s", cfg.LogLevel)
	}
	if cfg.MetricsPath != "/metrics" {
		t.Errorf("Expected MetricsPath '/metrics', got %s", cfg.MetricsPath)
	}
	if cfg.Addr() != "0.0.0.0:80" {
		t.Errorf("Expected Addr '0.0.0.0:80', got %s", cfg.Addr())
	}
}

func TestNewConfig_Flags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "--port=9090", "--log-level=debug", "--host=127.0.0.1"}

	resetFlagsAndEnv(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Expected Port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got %s", cfg.LogLevel)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Expected Addr '127.0.0.1:9090', got %s", cfg.Addr())
	}
}

func TestNewConfig_EnvVars(t *testing.T) {
	resetFlagsAndEnv(t)

	t.Setenv("GREETBOX_PORT", "9091")
	t.Setenv("GREETBOX_LOG_LEVEL", "warn")
	t.Setenv("GREETBOX_METRICS_PATH", "/internal/metrics")

	cfg, err := New()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != 9091 {
		t.Errorf("Expected Port 9091, got %d", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected LogLevel 'warn', got %s", cfg.LogLevel)
	}
	if cfg.MetricsPath != "/internal/metrics" {
		t.Errorf("Expected MetricsPath '/internal/metrics', got %s", cfg.MetricsPath)
	}
}

func TestNewConfig_VersionIsNotConfig(t *testing.T) {
	resetFlagsAndEnv(t)

	// VERSION selects the greeting per request and must not break config loading.
	t.Setenv("VERSION", "v2")

	if _, err := New(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestNewConfig_ConfigFile(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	resetFlagsAndEnv(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.json")

	configData := map[string]interface{}{
		"port":      9092,
		"log-level": "error",
	}
	fileContent, _ := json.Marshal(configData)
	if err := os.WriteFile(configFile, fileContent, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Args = []string{"cmd", "--config-file=" + configFile}

	cfg, err := New()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != 9092 {
		t.Errorf("Expected Port 9092, got %d", cfg.Port)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("Expected LogLevel 'error', got %s", cfg.LogLevel)
	}
}

func TestNewConfig_InvalidConfigFile(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	resetFlagsAndEnv(t)

	configFile := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configFile, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Args = []string{"cmd", "--config-file=" + configFile}

	if _, err := New(); err == nil {
		t.Fatal("Expected error for malformed config file, got nil")
	}
}

func TestNewConfig_Precedence(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	// Flag (highest precedence)
	os.Args = []string{"cmd", "--port=3333"}

	resetFlagsAndEnv(t)

	// Config File
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.json")
	configData := map[string]interface{}{"port": 1111}
	fileContent, _ := json.Marshal(configData)
	if err := os.WriteFile(configFile, fileContent, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("GREETBOX_CONFIG_FILE", configFile)

	// Env Var
	t.Setenv("GREETBOX_PORT", "2222")

	cfg, err := New()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != 3333 {
		t.Errorf("Expected Port 3333 (from flag), got %d", cfg.Port)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func(mod func(c *Config)) Config {
		c := *DefaultConfig()
		mod(&c)
		return c
	}

	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{"valid", valid(func(c *Config) {}), false},
		{"valid ipv6 host", valid(func(c *Config) { c.Host = "::" }), false},
		{"valid hostname", valid(func(c *Config) { c.Host = "localhost" }), false},
		{"invalid log level", valid(func(c *Config) { c.LogLevel = "invalid" }), true},
		{"invalid port zero", valid(func(c *Config) { c.Port = 0 }), true},
		{"invalid port negative", valid(func(c *Config) { c.Port = -1 }), true},
		{"invalid port too high", valid(func(c *Config) { c.Port = 65536 }), true},
		{"empty host", valid(func(c *Config) { c.Host = "" }), true},
		{"host with spaces", valid(func(c *Config) { c.Host = "my host" }), true},
		{"metrics path without slash", valid(func(c *Config) { c.MetricsPath = "metrics" }), true},
		{"metrics path on root", valid(func(c *Config) { c.MetricsPath = "/" }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

// resetFlagsAndEnv resets pflag and environment variables for a clean test run.
func resetFlagsAndEnv(t *testing.T) {
	t.Helper()
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	os.Clearenv()
}
