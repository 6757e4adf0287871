package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Telegram TelegramConfig `toml:"telegram"`
	Redis    RedisConfig    `toml:"redis"`
	Session  SessionConfig  `toml:"session"`
	Slots    SlotsConfig    `toml:"slots"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig настройки HTTP сервера админки (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TelegramConfig настройки бота
type TelegramConfig struct {
	Token         string `toml:"token"`
	Debug         bool   `toml:"debug"`
	UpdateTimeout int    `toml:"update_timeout"` // секунды long polling
}

// RedisConfig хранилище состояния диалогов
// Если Enabled = false, состояние хранится в памяти процесса
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SessionConfig настройки состояния диалога
type SessionConfig struct {
	TTLHours int `toml:"ttl_hours"`
}

// TTL время жизни состояния диалога
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// SlotsConfig окно записи
type SlotsConfig struct {
	FirstHour      int `toml:"first_hour"`
	LastHour       int `toml:"last_hour"`
	DateWindowDays int `toml:"date_window_days"`
}

// AdminConfig доступ к админскому API
// Пустой токен отключает проверку
type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает и проверяет конфигурацию
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read читает конфигурацию из TOML файла без проверки (нужно утилите миграций)
// Секреты переопределяются переменными окружения (поддерживается .env)
func Read(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env опционален
	_ = godotenv.Load()
	applyEnv(cfg)

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "beauty_bot",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "beauty-bot",
		},
		Telegram: TelegramConfig{
			UpdateTimeout: 60,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Session: SessionConfig{
			TTLHours: 24,
		},
		Slots: SlotsConfig{
			FirstHour:      10,
			LastHour:       18,
			DateWindowDays: 5,
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram token is required", ErrInvalidConfig)
	}
	// последний слот должен закончиться в те же сутки
	if c.Slots.FirstHour < 0 || c.Slots.LastHour > 22 || c.Slots.FirstHour > c.Slots.LastHour {
		return fmt.Errorf("%w: slots window %d..%d", ErrInvalidConfig, c.Slots.FirstHour, c.Slots.LastHour)
	}
	if c.Slots.DateWindowDays <= 0 {
		return fmt.Errorf("%w: date_window_days must be positive", ErrInvalidConfig)
	}
	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("%w: session ttl_hours must be positive", ErrInvalidConfig)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.Admin.Token = v
	}
}
