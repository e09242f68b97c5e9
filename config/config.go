// Package config loads runtime settings from the environment and the event catalogue from YAML.
// File: config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"mentora-hub/logger"
)

// backend names accepted by STORE_BACKEND and AUTH_BACKEND
const (
	BackendFirestore = "firestore"
	BackendFirebase  = "firebase"
	BackendMemory    = "memory"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string `validate:"required"`
	HTTPPort        string `validate:"required,numeric"`
	ApplicationURL  string `validate:"required,url"`
	SessionSecret   string `validate:"required,min=8"`
	ProjectID       string
	CredentialsJSON string
	CredentialsFile string
	FirebaseAPIKey  string `validate:"required_if=AuthBackend firebase"`
	StoreBackend    string `validate:"oneof=firestore memory"`
	AuthBackend     string `validate:"oneof=firebase memory"`
	EventsFile      string
	DashboardLimit  int `validate:"min=1,max=1000"`
	CloudWatch      bool
	MetricsRegion   string
	Tracing         bool
	ShutdownTimeout time.Duration `validate:"min=0"`
}

var validate = validator.New()

// Load reads an optional .env file and returns the validated configuration.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn.Printf("[config.Load] could not read .env: %v", err)
	}

	cfg := App{
		Env:             getEnv("APP_ENV", "development"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ApplicationURL:  strings.TrimRight(getEnv("APPLICATION_URL", "http://localhost:8080"), "/"),
		SessionSecret:   getEnv("SESSION_SECRET", "mentora-dev-secret"),
		ProjectID:       os.Getenv("GCP_PROJECT_ID"),
		CredentialsJSON: os.Getenv("FIREBASE_ADMIN_SDK_JSON"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseAPIKey:  os.Getenv("FIREBASE_API_KEY"),
		StoreBackend:    getEnv("STORE_BACKEND", BackendFirestore),
		AuthBackend:     getEnv("AUTH_BACKEND", BackendFirebase),
		EventsFile:      getEnv("EVENTS_FILE", "events.yaml"),
		DashboardLimit:  intEnv("DASHBOARD_LIMIT", 100),
		CloudWatch:      boolEnv("METRICS_CLOUDWATCH", false),
		MetricsRegion:   getEnv("AWS_REGION", "ap-southeast-2"),
		Tracing:         boolEnv("TRACING_ENABLED", false),
		ShutdownTimeout: durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := validate.Struct(cfg); err != nil {
		return App{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Production reports whether the app runs with production settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Credentials returns the service-account JSON, reading the file named by
// GOOGLE_APPLICATION_CREDENTIALS when no inline JSON is set. Empty means
// persistence runs disabled.
func (a App) Credentials() ([]byte, error) {
	if a.CredentialsJSON != "" {
		return []byte(a.CredentialsJSON), nil
	}
	if a.CredentialsFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(a.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			logger.Warn.Printf("[config] invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			logger.Warn.Printf("[config] invalid bool for %s, using fallback %v", key, fallback)
			return fallback
		}
		return b
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			logger.Warn.Printf("[config] invalid int for %s, using fallback %d", key, fallback)
			return fallback
		}
		return n
	}
	return fallback
}
