package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	API      APIConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	AppEnv string
	// Backend selects the product.Client implementation: "http" or "postgres".
	Backend string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type APIConfig struct {
	BaseURL string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:  getEnv("APP_ENV", "dev"),
			Backend: strings.ToLower(getEnv("PRODUCTS_BACKEND", BackendHTTP)),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("STOCKFLOW_API_URL", "http://localhost:8000"), "/"),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "stockflow"),
			Password:        getEnv("POSTGRES_PASSWORD", "stockflow"),
			DBName:          getEnv("POSTGRES_DB", "stockflow"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
