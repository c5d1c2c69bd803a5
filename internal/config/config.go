package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Port int `validate:"min=1,max=65535"`

	DBHost     string `validate:"required_if=StoreBackend postgres"`
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string `validate:"required_if=StoreBackend postgres"`

	RedisAddr string `validate:"required_if=StoreBackend redis"`

	StoreBackend string `validate:"oneof=memory postgres redis"`

	OpenAIKey     string `validate:"required"`
	OpenAIModel   string `validate:"required"`
	OpenAIBaseURL string `validate:"required,url"`
	OpenAITimeout time.Duration

	JWTSecret string `validate:"required"`

	LogLevel string
	LogJSON  bool
}

// Load reads the environment; a .env file in the working directory is
// applied first without overriding variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: envInt("PORT", 8080),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envInt("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		RedisAddr: envString("REDIS_ADDR", "localhost:6379"),

		StoreBackend: strings.ToLower(envString("STORE_BACKEND", StoreMemory)),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envString("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAITimeout: envDuration("OPENAI_TIMEOUT", 30*time.Second),

		JWTSecret: os.Getenv("JWT_SECRET"),

		LogLevel: envString("LOG_LEVEL", "info"),
		LogJSON:  envBool("LOG_JSON", false),
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}
