package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs       LogsConfig       `toml:"logs"`
	Server     ServerConfig     `toml:"server"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Controller ControllerConfig `toml:"controller"`
	Views      ViewsConfig      `toml:"views"`
	Audit      AuditConfig      `toml:"audit"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ControllerConfig содержит настройки интеграции с API контроллера
type ControllerConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"` // в секундах
}

// ViewsConfig содержит настройки представлений организаций
type ViewsConfig struct {
	RefreshInterval int `toml:"refresh_interval"` // в секундах
	EvictInterval   int `toml:"evict_interval"`   // в секундах
	ViewTTL         int `toml:"view_ttl"`         // в секундах
}

// AuditConfig содержит настройки журнала изменений в PostgreSQL
type AuditConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN формирует строку подключения к PostgreSQL
func (a AuditConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		a.Host, a.Port, a.User, a.Password, a.DBName, a.SSLMode,
	)
}

func (c ControllerConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (v ViewsConfig) RefreshDuration() time.Duration {
	return time.Duration(v.RefreshInterval) * time.Second
}

func (v ViewsConfig) EvictDuration() time.Duration {
	return time.Duration(v.EvictInterval) * time.Second
}

func (v ViewsConfig) TTLDuration() time.Duration {
	return time.Duration(v.ViewTTL) * time.Second
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	// Переопределяем значения из переменных окружения (если они установлены)
	overrideFromEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Server
	setInt("HTTP_PORT", &cfg.Server.HTTPPort)

	// Logs
	setString("LOG_LEVEL", &cfg.Logs.Level)
	setString("LOG_FILE", &cfg.Logs.File)

	// Metrics
	setBool("METRICS_ENABLED", &cfg.Metrics.Enabled)
	setString("METRICS_PATH", &cfg.Metrics.Path)
	setString("METRICS_SERVICE_NAME", &cfg.Metrics.ServiceName)

	// Controller
	setString("CONTROLLER_URL", &cfg.Controller.URL)
	setString("CONTROLLER_TOKEN", &cfg.Controller.Token)
	setInt("CONTROLLER_TIMEOUT", &cfg.Controller.Timeout)

	// Views
	setInt("VIEWS_REFRESH_INTERVAL", &cfg.Views.RefreshInterval)
	setInt("VIEWS_EVICT_INTERVAL", &cfg.Views.EvictInterval)
	setInt("VIEWS_TTL", &cfg.Views.ViewTTL)

	// Audit
	setBool("AUDIT_ENABLED", &cfg.Audit.Enabled)
	setString("DB_HOST", &cfg.Audit.Host)
	setInt("DB_PORT", &cfg.Audit.Port)
	setString("DB_USER", &cfg.Audit.User)
	setString("DB_PASSWORD", &cfg.Audit.Password)
	setString("DB_NAME", &cfg.Audit.DBName)
	setString("DB_SSLMODE", &cfg.Audit.SSLMode)
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// validate проверяет корректность конфигурации и заполняет значения по умолчанию
func validate(cfg *Config) error {
	// Server validation
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	// Controller validation
	if cfg.Controller.URL == "" {
		return fmt.Errorf("controller url is required")
	}
	if cfg.Controller.Timeout < 0 {
		return fmt.Errorf("controller timeout must not be negative")
	}
	if cfg.Controller.Timeout == 0 {
		cfg.Controller.Timeout = 10
	}

	// Logs defaults
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "./logs/app.log"
	}

	// Server defaults
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "orgnotifications"
	}

	// Views defaults
	if cfg.Views.RefreshInterval == 0 {
		cfg.Views.RefreshInterval = 60
	}
	if cfg.Views.EvictInterval == 0 {
		cfg.Views.EvictInterval = 300
	}
	if cfg.Views.ViewTTL == 0 {
		cfg.Views.ViewTTL = 1800 // 30 minutes
	}
	if cfg.Views.RefreshInterval < 0 || cfg.Views.EvictInterval < 0 || cfg.Views.ViewTTL < 0 {
		return fmt.Errorf("views intervals must not be negative")
	}

	if !cfg.Audit.Enabled {
		return nil
	}

	// Audit database validation
	if cfg.Audit.Host == "" {
		return fmt.Errorf("audit database host is required")
	}
	if cfg.Audit.Port <= 0 || cfg.Audit.Port > 65535 {
		return fmt.Errorf("audit database port must be between 1 and 65535")
	}
	if cfg.Audit.User == "" {
		return fmt.Errorf("audit database user is required")
	}
	if cfg.Audit.DBName == "" {
		return fmt.Errorf("audit database name is required")
	}
	if cfg.Audit.SSLMode == "" {
		cfg.Audit.SSLMode = "disable"
	}

	// Connection pool defaults
	if cfg.Audit.MaxOpenConns == 0 {
		cfg.Audit.MaxOpenConns = 10
	}
	if cfg.Audit.MaxIdleConns == 0 {
		cfg.Audit.MaxIdleConns = 2
	}
	if cfg.Audit.ConnMaxLifetime == 0 {
		cfg.Audit.ConnMaxLifetime = 300 // 5 minutes
	}

	return nil
}
