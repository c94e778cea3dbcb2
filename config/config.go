package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Seed  SeedConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessExpiry time.Duration
}

// SeedConfig holds the credentials of the accounts created by the seed command.
type SeedConfig struct {
	AdminUsername   string
	AdminEmail      string
	AdminPassword   string
	DoctorPassword  string
	PatientEmail    string
	PatientPassword string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// LoadConfig reads configuration from the environment, overlaid on an optional
// env file at path. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "hospital")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("JWT_ISSUER", "hospital-booking")
	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	v.SetDefault("SEED_ADMIN_USERNAME", "admin")
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@hospital.com")
	v.SetDefault("SEED_ADMIN_PASSWORD", "admin123")
	v.SetDefault("SEED_DOCTOR_PASSWORD", "doctor123")
	v.SetDefault("SEED_PATIENT_EMAIL", "patient@hospital.com")
	v.SetDefault("SEED_PATIENT_PASSWORD", "patient123")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil || accessExpiry <= 0 {
		accessExpiry = 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:        v.GetString("REDIS_HOST"),
			Port:        v.GetString("REDIS_PORT"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			PoolSize:    v.GetInt("REDIS_POOL_SIZE"),
			DialTimeout: v.GetDuration("REDIS_DIAL_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Issuer:       v.GetString("JWT_ISSUER"),
			AccessExpiry: accessExpiry,
		},
		Seed: SeedConfig{
			AdminUsername:   v.GetString("SEED_ADMIN_USERNAME"),
			AdminEmail:      v.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword:   v.GetString("SEED_ADMIN_PASSWORD"),
			DoctorPassword:  v.GetString("SEED_DOCTOR_PASSWORD"),
			PatientEmail:    v.GetString("SEED_PATIENT_EMAIL"),
			PatientPassword: v.GetString("SEED_PATIENT_PASSWORD"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

// splitList parses a comma separated setting, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
