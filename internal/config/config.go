package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// TLS is enabled only when both files are set.
	TLSCertFile string
	TLSKeyFile  string

	TokenKey    []byte
	DatabaseURL string

	// TemplatesPath points at an external template catalog. Empty uses the built-in one.
	TemplatesPath string

	RateLimit rate.Limit
	RateBurst int

	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string
}

func (c Config) TLS() bool { return c.TLSCertFile != "" && c.TLSKeyFile != "" }

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return LoadFromEnv()
}

func LoadFromEnv() (Config, error) {
	appEnv := env("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(env("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	tokenKey := env("TOKEN_KEY", "")
	if tokenKey == "" {
		return Config{}, errors.New("TOKEN_KEY environment variable is not set")
	}

	cert, key := env("TLS_CERT_FILE", ""), env("TLS_KEY_FILE", "")
	if (cert == "") != (key == "") {
		return Config{}, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	rps, err := strconv.ParseFloat(env("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS %q", os.Getenv("RATE_LIMIT_RPS"))
	}
	burst, err := strconv.Atoi(env("RATE_LIMIT_BURST", "10"))
	if err != nil || burst <= 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST %q", os.Getenv("RATE_LIMIT_BURST"))
	}

	mqttPort, err := strconv.Atoi(env("MQTT_PORT", "1883"))
	if err != nil || mqttPort <= 0 || mqttPort > 65535 {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q", os.Getenv("MQTT_PORT"))
	}

	return Config{
		AppEnv:        appEnv,
		LogLevel:      level,
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		TLSCertFile:   cert,
		TLSKeyFile:    key,
		TokenKey:      []byte(tokenKey),
		DatabaseURL:   env("DATABASE_URL", "user=postgres dbname=postgres password=password sslmode=disable"),
		TemplatesPath: env("TEMPLATES_PATH", ""),
		RateLimit:     rate.Limit(rps),
		RateBurst:     burst,
		MQTTBroker:    env("MQTT_BROKER", ""),
		MQTTPort:      mqttPort,
		MQTTClientID:  env("MQTT_CLIENT_ID", "airflow-server"),
	}, nil
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
