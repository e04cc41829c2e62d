package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при несогласованных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Policy         PolicyConfig         `toml:"policy"`
	Cache          CacheConfig          `toml:"cache"`
	RabbitMQ       RabbitMQConfig       `toml:"rabbitmq"`
	PaymentGateway PaymentGatewayConfig `toml:"payment_gateway"`
	MeetingService MeetingServiceConfig `toml:"meeting_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// PolicyConfig параметры почасового ограничения записи
type PolicyConfig struct {
	HourlyCapacity        int `toml:"hourly_capacity"`
	AlmostFullThreshold   int `toml:"almost_full_threshold"`
	DashboardStartHour    int `toml:"dashboard_start_hour"`
	DashboardEndHour      int `toml:"dashboard_end_hour"`
	MaxAdvanceBookingDays int `toml:"max_advance_booking_days"`
}

// CacheConfig LRU-кэш расписаний врачей
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	Size    int  `toml:"size"`
}

type RabbitMQConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	Exchange   string `toml:"exchange"`
	Queue      string `toml:"queue"`
	RoutingKey string `toml:"routing_key"`
}

type PaymentGatewayConfig struct {
	URL         string `toml:"url"`
	AppKey      string `toml:"app_key"`
	AppSecret   string `toml:"app_secret"`
	CallbackURL string `toml:"callback_url"`
	Timeout     int    `toml:"timeout"`
}

type MeetingServiceConfig struct {
	URL             string `toml:"url"`
	Token           string `toml:"token"`
	DurationMinutes int    `toml:"duration_minutes"`
	Timeout         int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переопределения из переменных окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	p := c.Policy

	if p.HourlyCapacity <= 0 {
		return fmt.Errorf("%w: policy.hourly_capacity must be positive, got %d", ErrInvalidConfig, p.HourlyCapacity)
	}
	if p.AlmostFullThreshold <= 0 || p.AlmostFullThreshold > p.HourlyCapacity {
		return fmt.Errorf("%w: policy.almost_full_threshold must be in 1..%d, got %d",
			ErrInvalidConfig, p.HourlyCapacity, p.AlmostFullThreshold)
	}
	if p.DashboardStartHour < 0 || p.DashboardEndHour > 24 || p.DashboardStartHour >= p.DashboardEndHour {
		return fmt.Errorf("%w: dashboard hours must satisfy 0 <= start < end <= 24, got %d..%d",
			ErrInvalidConfig, p.DashboardStartHour, p.DashboardEndHour)
	}
	if p.MaxAdvanceBookingDays < 0 {
		return fmt.Errorf("%w: policy.max_advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("%w: cache.size must be positive when cache is enabled", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}

	return nil
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
			ServiceName: "doctor-booking-service",
		},
		Policy: PolicyConfig{
			HourlyCapacity:        20,
			AlmostFullThreshold:   15,
			DashboardStartHour:    8,
			DashboardEndHour:      20,
			MaxAdvanceBookingDays: 30,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    1024,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange:   "appointments",
			Queue:      "appointment.confirmed.meeting-link",
			RoutingKey: "appointment.confirmed",
		},
		PaymentGateway: PaymentGatewayConfig{
			Timeout: 10,
		},
		MeetingService: MeetingServiceConfig{
			DurationMinutes: 30,
			Timeout:         10,
		},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
	setInt(&cfg.Server.HTTPPort, "HTTP_PORT")
	setString(&cfg.RabbitMQ.URL, "RABBITMQ_URL")
	setString(&cfg.PaymentGateway.AppKey, "PAYMENT_GATEWAY_APP_KEY")
	setString(&cfg.PaymentGateway.AppSecret, "PAYMENT_GATEWAY_APP_SECRET")
	setString(&cfg.MeetingService.Token, "MEETING_SERVICE_TOKEN")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
