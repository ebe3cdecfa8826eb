package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	App      AppConfig      `toml:"app"`
	Booking  BookingConfig  `toml:"booking"`
	Video    VideoConfig    `toml:"video"`
	Identity IdentityConfig `toml:"identity"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"` // console | json
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AppConfig общие настройки приложения
type AppConfig struct {
	Timezone string `toml:"timezone"`
}

// BookingConfig настройки объявления доступности
type BookingConfig struct {
	AdvanceDays int `toml:"advance_days"`
}

// VideoConfig настройки видеосвязи.
// Если api_url пуст, комнаты у провайдера не создаются и ссылка строится только из base_url.
type VideoConfig struct {
	BaseURL string `toml:"base_url"`
	APIURL  string `toml:"api_url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

// IdentityConfig настройки идентификации
type IdentityConfig struct {
	BootstrapAdminEmails []string `toml:"bootstrap_admin_emails"`
}

// envOverrides секреты и адреса, которые удобнее задавать окружением
type envOverrides struct {
	DBHost               string   `envconfig:"DB_HOST"`
	DBPassword           string   `envconfig:"DB_PASSWORD"`
	BootstrapAdminEmails []string `envconfig:"BOOTSTRAP_ADMIN_EMAILS"`
	VideoAPIKey          string   `envconfig:"VIDEO_API_KEY"`
}

// Load читает .env (если есть), TOML файл и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "consultation-service",
		},
		App: AppConfig{
			Timezone: "UTC",
		},
		Booking: BookingConfig{
			AdvanceDays: domain.DefaultAdvanceDays,
		},
		Video: VideoConfig{
			Timeout: 5,
		},
	}
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("config: read environment: %w", err)
	}

	if env.DBHost != "" {
		cfg.Database.Host = env.DBHost
	}
	if env.DBPassword != "" {
		cfg.Database.Password = env.DBPassword
	}
	if env.VideoAPIKey != "" {
		cfg.Video.APIKey = env.VideoAPIKey
	}
	if len(env.BootstrapAdminEmails) > 0 {
		cfg.Identity.BootstrapAdminEmails = env.BootstrapAdminEmails
	}
	return nil
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database.host, database.dbname and database.user are required", ErrInvalidConfig)
	}
	if c.Booking.AdvanceDays < domain.MinAdvanceDays || c.Booking.AdvanceDays > domain.MaxAdvanceDays {
		return fmt.Errorf("%w: booking.advance_days must be between %d and %d",
			ErrInvalidConfig, domain.MinAdvanceDays, domain.MaxAdvanceDays)
	}
	if c.Logs.Format != "console" && c.Logs.Format != "json" {
		return fmt.Errorf("%w: logs.format must be console or json", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	if c.Video.APIURL != "" && c.Video.Timeout <= 0 {
		return fmt.Errorf("%w: video.timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: app.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Location часовой пояс, в котором считается "сегодня"
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.App.Timezone)
}
