package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	JWTSecret string
	LogFormat string
}

type ServerConfig struct {
	Port int
}

type MongoConfig struct {
	// URI must include the database name, e.g.
	// mongodb://localhost:27017/users
	URI      string
	Database string
}

// Load reads configuration from a .env file (optional) and the environment.
// A missing JWT_SECRET or MONGO_URI is a startup error: there is no fallback
// secret to sign tokens with.
func Load() (*Config, error) {
	// .env is a local convenience; deployments set the environment directly
	_ = godotenv.Load(".env")

	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", "users"),
		},
		JWTSecret: getEnv("JWT_SECRET", ""),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
