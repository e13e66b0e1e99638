// path: config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server    ServerConfig
	Store     string // "mongo" or "memory"
	Mongo     MongoConfig
	Auth      AuthConfig
	Dashboard DashboardConfig
	Log       LogConfig
}

type ServerConfig struct {
	Addr           string
	AllowOrigins   string
	RequestTimeout time.Duration
}

type MongoConfig struct {
	Mode           string
	URI            string
	DBName         string
	Reason         string // why this URI was picked, for the connect log line
	ConnectTimeout time.Duration
	Debug          bool
}

type AuthConfig struct {
	JWTSecret     string
	PublicKeyFile string
	Issuer        string
}

type DashboardConfig struct {
	// MonthOrder is "lexical" (the "2024-10" < "2024-9" string order the
	// dashboard has always emitted) or "chronological".
	MonthOrder string
}

type LogConfig struct {
	Level  string
	Format string // "console" or "json"
	File   string
}

// Load reads .env files (if present) and the environment. A missing .env is
// not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Server: ServerConfig{
			Addr:           listenAddr(),
			AllowOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:3001, http://localhost:3002"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 8*time.Second),
		},
		Store: strings.ToLower(getEnv("STORE", "mongo")),
		Mongo: resolveMongo(),
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", ""),
		},
		Dashboard: DashboardConfig{
			MonthOrder: strings.ToLower(getEnv("DASHBOARD_MONTH_ORDER", "lexical")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "console")),
			File:   getEnv("LOG_FILE", ""),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case "mongo", "memory":
	default:
		return fmt.Errorf("config: STORE must be mongo or memory, got %q", c.Store)
	}
	switch c.Dashboard.MonthOrder {
	case "lexical", "chronological":
	default:
		return fmt.Errorf("config: DASHBOARD_MONTH_ORDER must be lexical or chronological, got %q", c.Dashboard.MonthOrder)
	}
	if c.Store == "mongo" && c.Mongo.URI == "" {
		return fmt.Errorf("config: no MongoDB URI resolved (%s)", c.Mongo.Reason)
	}
	return nil
}

func listenAddr() string {
	if addr := getEnv("HTTP_ADDR", ""); addr != "" {
		return addr
	}
	return ":" + getEnv("PORT", "4000")
}

// resolveMongo picks the connection URI. Precedence in auto mode:
// MONGO_URI_REMOTE > MONGO_URI > MONGO_URI_LOCAL.
func resolveMongo() MongoConfig {
	mode := strings.ToLower(getEnv("MONGO_MODE", "auto"))
	cfg := MongoConfig{
		DBName:         getEnv("MONGO_DB", "biodiversity"),
		ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 15*time.Second),
		Debug:          getEnv("MONGO_DEBUG", "") != "",
	}

	explicit := strings.TrimSpace(os.Getenv("MONGO_URI"))
	local := getEnv("MONGO_URI_LOCAL", "mongodb://127.0.0.1:27017")
	remote := strings.TrimSpace(os.Getenv("MONGO_URI_REMOTE"))

	switch mode {
	case "local":
		cfg.Mode, cfg.URI = "local", chooseFirstNonEmpty(explicit, local)
		cfg.Reason = reasonLocal(explicit, local)
	case "remote":
		if remote != "" {
			cfg.Mode, cfg.URI, cfg.Reason = "remote", remote, "MONGO_MODE=remote, using MONGO_URI_REMOTE"
			break
		}
		log.Warn().Msg("mongo: MONGO_MODE=remote but MONGO_URI_REMOTE empty; falling back to local")
		cfg.Mode, cfg.URI = "local", chooseFirstNonEmpty(explicit, local)
		cfg.Reason = "remote missing → fallback to explicit/local"
	default:
		switch {
		case remote != "":
			cfg.Mode, cfg.URI, cfg.Reason = "remote", remote, "auto: MONGO_URI_REMOTE present"
		case explicit != "":
			cfg.Mode, cfg.URI, cfg.Reason = "auto", explicit, "auto: MONGO_URI present"
		default:
			cfg.Mode, cfg.URI, cfg.Reason = "local", local, "auto: fallback to local"
		}
	}
	return cfg
}

// EnvSnapshot lists the Mongo-related settings with credentials masked.
func EnvSnapshot() string {
	fields := []string{
		"MONGO_MODE=" + getEnv("MONGO_MODE", "auto"),
		"MONGO_DB=" + getEnv("MONGO_DB", "biodiversity"),
		"MONGO_URI=" + RedactURI(os.Getenv("MONGO_URI")),
		"MONGO_URI_LOCAL=" + RedactURI(getEnv("MONGO_URI_LOCAL", "mongodb://127.0.0.1:27017")),
		"MONGO_URI_REMOTE=" + RedactURI(os.Getenv("MONGO_URI_REMOTE")),
	}
	return strings.Join(fields, " ")
}

// RedactURI masks user info in a connection string.
func RedactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}

func reasonLocal(explicit, local string) string {
	if strings.TrimSpace(explicit) != "" {
		return "MONGO_MODE=local with explicit MONGO_URI"
	}
	if local != "" {
		return "MONGO_MODE=local using MONGO_URI_LOCAL/default"
	}
	return "MONGO_MODE=local (no URI provided)"
}

func chooseFirstNonEmpty(v1, v2 string) string {
	if strings.TrimSpace(v1) != "" {
		return v1
	}
	return v2
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	// Plain integers are seconds.
	if secs, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
