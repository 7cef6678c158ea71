package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
)

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Survey    SurveyConfig    `mapstructure:"survey"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
}

type APIConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
}

type DashboardConfig struct {
	Reconciliation string        `mapstructure:"reconciliation"`
	ToastDuration  time.Duration `mapstructure:"toast_duration"`
}

type SurveyConfig struct {
	SubmitDelay     time.Duration `mapstructure:"submit_delay"`
	TransitionDelay time.Duration `mapstructure:"transition_delay"`
	// Seed fixes the offer synthesizer. Zero seeds from the clock.
	Seed uint64 `mapstructure:"seed"`
}

type RedisConfig struct {
	Addr string        `mapstructure:"addr"`
	Key  string        `mapstructure:"key"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	Addr          string  `mapstructure:"addr"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

type DBConfig struct {
	// DSN selects the Postgres store. Empty keeps the dashboard in memory.
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 5*time.Second)
	v.SetDefault("api.rate_per_second", 5.0)
	v.SetDefault("api.burst", 10)

	v.SetDefault("dashboard.reconciliation", string(dashboard.OptimisticNoRollback))
	v.SetDefault("dashboard.toast_duration", 4*time.Second)

	v.SetDefault("survey.submit_delay", time.Second)
	v.SetDefault("survey.transition_delay", 1500*time.Millisecond)
	v.SetDefault("survey.seed", 0)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.key", "sourcing:dashboard:last-known-good")
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_per_second", 10.0)
	v.SetDefault("server.burst", 20)

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "offer-confirmations")
}

// LoadConfig reads config.yaml (or file, when given), then SOURCING_* environment
// variables. A .env file in the working directory is loaded first if present.
func LoadConfig(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME/.sourcing/")
	}

	v.SetEnvPrefix("SOURCING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
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

func (c *Config) Validate() error {
	if _, err := dashboard.ParseReconciliationMode(c.Dashboard.Reconciliation); err != nil {
		return fmt.Errorf("dashboard.reconciliation: %w", err)
	}
	durations := []struct {
		key string
		d   time.Duration
	}{
		{"api.timeout", c.API.Timeout},
		{"dashboard.toast_duration", c.Dashboard.ToastDuration},
		{"survey.submit_delay", c.Survey.SubmitDelay},
		{"survey.transition_delay", c.Survey.TransitionDelay},
		{"redis.ttl", c.Redis.TTL},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.d)
		}
	}
	if c.API.RatePerSecond < 0 || c.Server.RatePerSecond < 0 {
		return fmt.Errorf("rate_per_second must not be negative")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when brokers are set")
	}
	return nil
}

// ReconciliationMode returns the parsed dashboard.reconciliation value.
func (c *Config) ReconciliationMode() dashboard.ReconciliationMode {
	m, _ := dashboard.ParseReconciliationMode(c.Dashboard.Reconciliation)
	return m
}
