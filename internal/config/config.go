// Package config provides configuration management for the gateway.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/popeskul/wacloud/pkg/whatsapp"
)

const envPrefix = "WACLOUD"

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	WhatsApp       WhatsAppConfig       `mapstructure:"whatsapp"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Middleware     MiddlewareConfig     `mapstructure:"middleware"`
	Log            LogConfig            `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type WhatsAppConfig struct {
	APIToken      string `mapstructure:"api_token"`
	PhoneNumberID string `mapstructure:"phone_number_id"`
	Version       string `mapstructure:"version"`
	Host          string `mapstructure:"host"`
	Timeout       int    `mapstructure:"timeout"`
	PoolSize      int    `mapstructure:"pool_size"`
	MaxRetries    int    `mapstructure:"max_retries"`
	StrictDecode  bool   `mapstructure:"strict_decode"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

type MiddlewareConfig struct {
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout int      `mapstructure:"request_timeout"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Encoding   string `mapstructure:"encoding"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// LoadConfig reads configPath and applies WACLOUD_* environment overrides, e.g.
// WACLOUD_WHATSAPP_API_TOKEN. An empty path loads defaults and environment only.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 40)
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("whatsapp.api_token", "")
	v.SetDefault("whatsapp.phone_number_id", "")
	v.SetDefault("whatsapp.version", whatsapp.DefaultVersion)
	v.SetDefault("whatsapp.host", whatsapp.DefaultHost)
	v.SetDefault("whatsapp.timeout", 30)
	v.SetDefault("whatsapp.pool_size", 10)
	v.SetDefault("whatsapp.max_retries", 3)
	v.SetDefault("whatsapp.strict_decode", false)
	v.SetDefault("circuit_breaker.max_requests", 3)
	v.SetDefault("circuit_breaker.interval", 60)
	v.SetDefault("circuit_breaker.timeout", 60)
	v.SetDefault("circuit_breaker.failure_ratio", 0.6)
	v.SetDefault("circuit_breaker.consecutive_fails", 5)
	v.SetDefault("middleware.enable_cors", true)
	v.SetDefault("middleware.allowed_origins", []string{"*"})
	v.SetDefault("middleware.request_timeout", 35)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
}

// Validate reports missing settings the gateway cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.WhatsApp.APIToken == "" {
		errs = append(errs, errors.New("whatsapp.api_token is required"))
	}
	if c.WhatsApp.PhoneNumberID == "" {
		errs = append(errs, errors.New("whatsapp.phone_number_id is required"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ClientConfig maps the whatsapp section onto the library configuration.
func (w WhatsAppConfig) ClientConfig() whatsapp.Config {
	return whatsapp.Config{
		APIToken:      w.APIToken,
		PhoneNumberID: w.PhoneNumberID,
		Version:       w.Version,
		Host:          w.Host,
		Timeout:       time.Duration(w.Timeout) * time.Second,
		PoolSize:      w.PoolSize,
		MaxRetries:    w.MaxRetries,
		StrictDecode:  w.StrictDecode,
	}
}
