package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"
)

type Config struct {
	App      AppConfig
	TMDB     TMDBConfig
	Firebase FirebaseConfig
	Store    StoreConfig
	Database DatabaseConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type TMDBConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type FirebaseConfig struct {
	ServiceAccountPath string
	ProjectID          string
}

type StoreConfig struct {
	Driver       string
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads .env when present, then lets the process environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "movie-review")
	v.SetDefault("PORT", "4000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	v.SetDefault("TMDB_TIMEOUT_SECONDS", 10)
	v.SetDefault("FRONTEND_ORIGIN", "http://localhost:3000")
	v.SetDefault("STORE_DRIVER", StoreFirestore)
	v.SetDefault("STORE_WRITE_TIMEOUT_SECONDS", 30)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		TMDB: TMDBConfig{
			APIKey:  v.GetString("TMDB_API_KEY"),
			BaseURL: v.GetString("TMDB_BASE_URL"),
			Timeout: time.Duration(v.GetInt("TMDB_TIMEOUT_SECONDS")) * time.Second,
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: firstNonEmpty(
				v.GetString("FIREBASE_SERVICE_ACCOUNT_PATH"),
				v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
				"./firebase-service-account.json",
			),
			ProjectID: firstNonEmpty(
				v.GetString("FIREBASE_PROJECT_ID"),
				v.GetString("GOOGLE_CLOUD_PROJECT"),
			),
		},
		Store: StoreConfig{
			Driver:       strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			WriteTimeout: time.Duration(v.GetInt("STORE_WRITE_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: SplitOrigins(v.GetString("FRONTEND_ORIGIN")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return errors.New("TMDB_API_KEY is not set")
	}

	switch c.Store.Driver {
	case StoreFirestore, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Store.WriteTimeout <= 0 {
		c.Store.WriteTimeout = 30 * time.Second
	}
	if c.TMDB.Timeout <= 0 {
		c.TMDB.Timeout = 10 * time.Second
	}

	return nil
}

// SplitOrigins turns "a, b,,c" into [a b c].
func SplitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
