package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
	Storage  StorageConfig  `json:"storage"`
	Database DatabaseConfig `json:"database"`
	RabbitMQ RabbitMQConfig `json:"rabbitmq"`
	JWT      JWTConfig      `json:"jwt"`
	Admin    AdminConfig    `json:"admin"`
}

type ServerConfig struct {
	Port           string   `json:"port"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type LogConfig struct {
	Mode string `json:"mode"`
}

// StorageConfig selects the slot backend: "file", "postgres" or "memory".
type StorageConfig struct {
	Driver       string `json:"driver"`
	Dir          string `json:"dir"`
	SeedFixtures bool   `json:"seed_fixtures"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

type RabbitMQConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// ExpirationHours of zero issues tokens without an exp claim.
type JWTConfig struct {
	Secret          string `json:"secret"`
	ExpirationHours int    `json:"expiration_hours"`
}

type AdminConfig struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Log: LogConfig{Mode: "development"},
		Storage: StorageConfig{
			Driver:       "file",
			Dir:          "data",
			SeedFixtures: true,
		},
		Database: DatabaseConfig{
			Host:   "localhost",
			Port:   "5432",
			User:   "postgres",
			DBName: "epass",
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: "5672",
			User: "guest",
		},
		JWT: JWTConfig{Secret: "dev-secret-change-me"},
		Admin: AdminConfig{
			ID:       "1",
			Username: "admin",
			Email:    "admin@curfew.gov",
			Password: "admin123",
		},
	}
}

// LoadConfig reads the JSON file at path on top of Default and then applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(&config)
	return &config, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getenv("PORT", cfg.Server.Port)
	cfg.Log.Mode = getenv("LOG_MODE", cfg.Log.Mode)

	cfg.Storage.Driver = getenv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Dir = getenv("STORAGE_DIR", cfg.Storage.Dir)
	cfg.Storage.SeedFixtures = getenvBool("STORAGE_SEED_FIXTURES", cfg.Storage.SeedFixtures)

	cfg.Database.Host = getenv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getenv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getenv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getenv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getenv("DB_NAME", cfg.Database.DBName)

	cfg.RabbitMQ.Enabled = getenvBool("RABBITMQ_ENABLED", cfg.RabbitMQ.Enabled)
	cfg.RabbitMQ.Host = getenv("RABBITMQ_HOST", cfg.RabbitMQ.Host)
	cfg.RabbitMQ.Port = getenv("RABBITMQ_PORT", cfg.RabbitMQ.Port)
	cfg.RabbitMQ.User = getenv("RABBITMQ_USER", cfg.RabbitMQ.User)
	cfg.RabbitMQ.Password = getenv("RABBITMQ_PASSWORD", cfg.RabbitMQ.Password)

	cfg.JWT.Secret = getenv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.ExpirationHours = getenvInt("JWT_EXPIRATION_HOURS", cfg.JWT.ExpirationHours)

	cfg.Admin.Email = getenv("ADMIN_EMAIL", cfg.Admin.Email)
	cfg.Admin.Password = getenv("ADMIN_PASSWORD", cfg.Admin.Password)
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
	)
}
