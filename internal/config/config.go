package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           int
	DatabaseURL    string
	RedisURL       string
	RedisPrefix    string
	RabbitMQURL    string
	MailHost       string
	MailPort       int
	MailUser       string
	MailPass       string
	MailFrom       string
	LogLevel       string
	LogPretty      bool
	AllowedOrigins []string
	RegisterRPS    float64
	RegisterBurst  int
	WarmupSchedule string
	WarmupWeeks    int
}

// Load reads configuration from a .env file, when present, and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvAsInt("PORT", 8080),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisPrefix:    getEnv("FUNNEL_CACHE_PREFIX", "funnel"),
		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		MailHost:       getEnv("MAIL_HOST", ""),
		MailPort:       getEnvAsInt("MAIL_PORT", 587),
		MailUser:       getEnv("MAIL_USER", ""),
		MailPass:       getEnv("MAIL_PASS", ""),
		MailFrom:       getEnv("MAIL_FROM", "no-reply@shoppers.example"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", false),
		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RegisterRPS:    getEnvAsFloat("REGISTER_RATE_RPS", 1),
		RegisterBurst:  getEnvAsInt("REGISTER_RATE_BURST", 5),
		WarmupSchedule: os.Getenv("FUNNEL_WARMUP_CRON"),
		WarmupWeeks:    getEnvAsInt("FUNNEL_WARMUP_WEEKS", 4),
	}
	if _, set := os.LookupEnv("FUNNEL_WARMUP_CRON"); !set {
		cfg.WarmupSchedule = "@every 15m"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.RegisterRPS <= 0 || c.RegisterBurst <= 0 {
		return fmt.Errorf("REGISTER_RATE_RPS and REGISTER_RATE_BURST must be positive")
	}
	if c.WarmupSchedule != "" && c.WarmupWeeks <= 0 {
		return fmt.Errorf("FUNNEL_WARMUP_WEEKS must be positive when warm-up is enabled")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MailEnabled reports whether an SMTP host is configured.
func (c *Config) MailEnabled() bool {
	return c.MailHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
