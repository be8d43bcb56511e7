package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	LogLevel    string `mapstructure:"log-level"`
	MetricsPath string `mapstructure:"metrics-path"`
}

// New creates a new Config object from defaults, an optional config file,
// GREETBOX_* environment variables and command-line flags.
func New() (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("host", def.Host)
	v.SetDefault("port", def.Port)
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("metrics-path", def.MetricsPath)

	pflag.String("host", def.Host, "Listening address")
	pflag.Int("port", def.Port, "Listening port")
	pflag.String("log-level", def.LogLevel, "Logging level (debug, info, warn, error)")
	pflag.String("metrics-path", def.MetricsPath, "Metrics endpoint path")
	pflag.String("config-file", "", "Path to JSON or YAML config file. Can also be set with GREETBOX_CONFIG_FILE env var.")
	pflag.Parse()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	v.SetEnvPrefix("GREETBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile := v.GetString("config-file"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() *Config {
	return &Config{
		Host:        "0.0.0.0",
		Port:        80,
		LogLevel:    "info",
		MetricsPath: "/metrics",
	}
}

// Addr returns the host:port pair the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	isValidLogLevel := false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			isValidLogLevel = true
			break
		}
	}
	if !isValidLogLevel {
		return fmt.Errorf("invalid log-level: %s, must be one of %v", c.LogLevel, validLogLevels)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1 and 65535", c.Port)
	}

	if strings.TrimSpace(c.Host) == "" || (strings.ContainsAny(c.Host, " /:") && net.ParseIP(c.Host) == nil) {
		return fmt.Errorf("invalid host: %q", c.Host)
	}

	// "/" is taken by the greeting route
	if !strings.HasPrefix(c.MetricsPath, "/") || c.MetricsPath == "/" {
		return fmt.Errorf("invalid metrics-path: %q, must start with / and not be the root path", c.MetricsPath)
	}

	return nil
}
