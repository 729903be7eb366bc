package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Availability AvailabilityConfig `mapstructure:"availability"`
	Booking      BookingConfig      `mapstructure:"booking"`
	Worker       WorkerConfig       `mapstructure:"worker"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type AvailabilityConfig struct {
	SlotIntervalMinutes int           `mapstructure:"slot_interval_minutes"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

type BookingConfig struct {
	CancellationNoticeHours int     `mapstructure:"cancellation_notice_hours"`
	CancellationFeeRate     float64 `mapstructure:"cancellation_fee_rate"`
	RescheduleNoticeHours   int     `mapstructure:"reschedule_notice_hours"`
}

type WorkerConfig struct {
	BatchSize         int           `mapstructure:"batch_size"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	RetryAttempts     int           `mapstructure:"retry_attempts"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	RetentionDays     int           `mapstructure:"retention_days"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	MetricsListenAddr string        `mapstructure:"metrics_listen_addr"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("availability.slot_interval_minutes", 30)
	viper.SetDefault("availability.cache_ttl", "5m")
	viper.SetDefault("booking.cancellation_notice_hours", 24)
	viper.SetDefault("booking.cancellation_fee_rate", 0.25)
	viper.SetDefault("booking.reschedule_notice_hours", 24)
	viper.SetDefault("worker.batch_size", 100)
	viper.SetDefault("worker.poll_interval", "5s")
	viper.SetDefault("worker.retry_attempts", 3)
	viper.SetDefault("worker.retry_delay", "1s")
	viper.SetDefault("worker.retention_days", 30)
	viper.SetDefault("worker.cleanup_interval", "1h")
	viper.SetDefault("worker.metrics_listen_addr", ":9090")
}
