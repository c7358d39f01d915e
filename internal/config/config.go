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

var (
	// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	WhatsApp  WhatsAppConfig  `toml:"whatsapp"`
	Twilio    TwilioConfig    `toml:"twilio"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Workshop  WorkshopConfig  `toml:"workshop"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки JWT сессий и начального администратора
type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLHours     int    `toml:"token_ttl_hours"`
	BootstrapUsername string `toml:"bootstrap_username"`
	BootstrapPassword string `toml:"bootstrap_password"`
	BootstrapName     string `toml:"bootstrap_name"`
}

// TokenTTL время жизни токена
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// WhatsAppConfig настройки ссылок wa.me
type WhatsAppConfig struct {
	WorkshopPhone string `toml:"workshop_phone"`
	CountryCode   string `toml:"country_code"`
}

// TwilioConfig настройки отправки WhatsApp через Twilio
type TwilioConfig struct {
	Enabled    bool   `toml:"enabled"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	From       string `toml:"from"`
}

// SchedulerConfig расписания cron задач (пустая строка отключает задачу)
type SchedulerConfig struct {
	Enabled       bool   `toml:"enabled"`
	RemindersSpec string `toml:"reminders_spec"`
	LowStockSpec  string `toml:"low_stock_spec"`
}

// WorkshopConfig параметры мастерской
type WorkshopConfig struct {
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
}

// Location часовой пояс мастерской
func (w WorkshopConfig) Location() (*time.Location, error) {
	if w.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(w.Timezone)
}

// Load читает TOML файл, затем применяет переменные окружения (включая .env) и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
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
			ShutdownTimeout: 10,
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
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_workshop_service",
		},
		Auth: AuthConfig{
			TokenTTLHours: 24,
		},
		WhatsApp: WhatsAppConfig{
			CountryCode: "62",
		},
		Scheduler: SchedulerConfig{
			RemindersSpec: "0 9 * * *",
			LowStockSpec:  "0 8 * * 1",
		},
		Workshop: WorkshopConfig{
			Name:     "Bengkel",
			Timezone: "Asia/Jakarta",
		},
	}
}

// applyEnv переопределяет секреты и адреса значениями из окружения
func applyEnv(cfg *Config) error {
	strVars := map[string]*string{
		"DB_HOST":                 &cfg.Database.Host,
		"DB_USER":                 &cfg.Database.User,
		"DB_PASSWORD":             &cfg.Database.Password,
		"DB_NAME":                 &cfg.Database.DBName,
		"DB_SSLMODE":              &cfg.Database.SSLMode,
		"LOG_LEVEL":               &cfg.Logs.Level,
		"JWT_SECRET":              &cfg.Auth.JWTSecret,
		"ADMIN_USERNAME":          &cfg.Auth.BootstrapUsername,
		"ADMIN_PASSWORD":          &cfg.Auth.BootstrapPassword,
		"WORKSHOP_WHATSAPP_PHONE": &cfg.WhatsApp.WorkshopPhone,
		"TWILIO_ACCOUNT_SID":      &cfg.Twilio.AccountSID,
		"TWILIO_AUTH_TOKEN":       &cfg.Twilio.AuthToken,
		"TWILIO_WHATSAPP_FROM":    &cfg.Twilio.From,
	}
	for name, target := range strVars {
		if v, ok := os.LookupEnv(name); ok {
			*target = v
		}
	}

	intVars := map[string]*int{
		"HTTP_PORT": &cfg.Server.HTTPPort,
		"DB_PORT":   &cfg.Database.Port,
	}
	for name, target := range intVars {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, name, err)
		}
		*target = n
	}

	if v, ok := os.LookupEnv("TWILIO_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: TWILIO_ENABLED must be a boolean: %v", ErrInvalidConfig, err)
		}
		cfg.Twilio.Enabled = enabled
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port out of range: %d", ErrInvalidConfig, c.Database.Port)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (JWT_SECRET) is required", ErrInvalidConfig)
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_hours must be positive", ErrInvalidConfig)
	}
	if c.Twilio.Enabled && (c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" || c.Twilio.From == "") {
		return fmt.Errorf("%w: twilio is enabled but credentials are incomplete", ErrInvalidConfig)
	}
	if _, err := c.Workshop.Location(); err != nil {
		return fmt.Errorf("%w: workshop.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}
