package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

// Config конфигурация сервиса
type Config struct {
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Tracing   TracingConfig   `toml:"tracing"`
	Database  DatabaseConfig  `toml:"database"`
	Server    ServerConfig    `toml:"server"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Slots     SlotsConfig     `toml:"slots"`
	Documents DocumentsConfig `toml:"documents"`
	BlobStore BlobStoreConfig `toml:"blob_store"`
	Messaging MessagingConfig `toml:"messaging"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxTimeout       int    `toml:"tx_timeout"`        // секунды
	TxMaxRetries    *int   `toml:"tx_max_retries"` // не задано: 3; 0 отключает повторы
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig лимит на эндпоинты бронирования
type RateLimitConfig struct {
	Enabled bool `toml:"enabled"`
	Limit   int  `toml:"limit"`  // запросов за окно
	Window  int  `toml:"window"` // секунды
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// SlotsConfig параметры генерации временных слотов
type SlotsConfig struct {
	GranularityMinutes int    `toml:"granularity_minutes"`
	DefaultMaxBookings int    `toml:"default_max_bookings"`
	DefaultWindowDays  int    `toml:"default_window_days"`
	Timezone           string `toml:"timezone"` // часовой пояс отделов, IANA
}

type DocumentsConfig struct {
	MaxFiles         int      `toml:"max_files"`
	MaxFileSizeMB    int      `toml:"max_file_size_mb"`
	AllowedMimeTypes []string `toml:"allowed_mime_types"`
}

type BlobStoreConfig struct {
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`
}

// MessagingConfig шлюз email/SMS рассылок
type MessagingConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
	Channel string `toml:"channel"` // EMAIL или SMS
}

// Load читает .env (если есть), файл конфигурации и переменные окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv секреты и адреса инфраструктуры можно переопределить окружением
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Tracing.OTLPEndpoint = v
	}
}

func (c *Config) applyDefaults() {
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "gov-appointment-service"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.TxTimeout == 0 {
		c.Database.TxTimeout = 60
	}
	if c.Database.TxMaxRetries == nil {
		c.Database.TxMaxRetries = ptr.Ptr(3)
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 75
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 30
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = 60
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "appointments.notifications"
	}
	if c.Slots.GranularityMinutes == 0 {
		c.Slots.GranularityMinutes = 60
	}
	if c.Slots.DefaultMaxBookings == 0 {
		c.Slots.DefaultMaxBookings = 1
	}
	if c.Slots.DefaultWindowDays == 0 {
		c.Slots.DefaultWindowDays = 7
	}
	if c.Slots.Timezone == "" {
		c.Slots.Timezone = "UTC"
	}
	if c.Documents.MaxFiles == 0 {
		c.Documents.MaxFiles = 10
	}
	if c.Documents.MaxFileSizeMB == 0 {
		c.Documents.MaxFileSizeMB = 10
	}
	if len(c.Documents.AllowedMimeTypes) == 0 {
		c.Documents.AllowedMimeTypes = []string{"application/pdf", "image/jpeg", "image/png"}
	}
	if c.Messaging.Timeout == 0 {
		c.Messaging.Timeout = 5
	}
	if c.Messaging.Channel == "" {
		c.Messaging.Channel = "EMAIL"
	}
	if c.BlobStore.Dir == "" {
		c.BlobStore.Dir = "./uploads"
	}
	if c.BlobStore.BaseURL == "" {
		c.BlobStore.BaseURL = "/uploads"
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	switch {
	case c.Database.Host == "":
		return errors.New("config: database.host is required")
	case c.Database.DBName == "":
		return errors.New("config: database.dbname is required")
	case c.Database.Port <= 0:
		return errors.New("config: database.port must be positive")
	case *c.Database.TxMaxRetries < 0:
		return errors.New("config: database.tx_max_retries must not be negative")
	case c.Slots.GranularityMinutes < 5 || c.Slots.GranularityMinutes > 480:
		return errors.New("config: slots.granularity_minutes must be in [5, 480]")
	case c.Slots.DefaultMaxBookings < 1:
		return errors.New("config: slots.default_max_bookings must be positive")
	case !validTimezone(c.Slots.Timezone):
		return fmt.Errorf("config: slots.timezone %q is not a valid IANA zone", c.Slots.Timezone)
	case c.Kafka.Enabled && len(c.Kafka.Brokers) == 0:
		return errors.New("config: kafka.brokers is required when kafka is enabled")
	case c.Messaging.Enabled && c.Messaging.URL == "":
		return errors.New("config: messaging.url is required when messaging is enabled")
	case c.Messaging.Channel != "EMAIL" && c.Messaging.Channel != "SMS":
		return errors.New("config: messaging.channel must be EMAIL or SMS")
	case c.RateLimit.Limit < 1 || c.RateLimit.Window < 1:
		return errors.New("config: rate_limit.limit and rate_limit.window must be positive")
	}
	return nil
}

func validTimezone(name string) bool {
	_, err := time.LoadLocation(name)
	return err == nil
}

// Location часовой пояс отделов; значение проверено в Validate
func (s SlotsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
