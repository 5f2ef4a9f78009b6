package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Providers ProvidersConfig
	Tracing   TracingConfig
}

type ServerConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string

	// RateLimit is a per-client rate such as "100-M"; "off" disables it.
	RateLimit string
}

func (s ServerConfig) IsDev() bool {
	return s.Env == "dev" || s.Env == "development"
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// AuthConfig holds API client credentials as client id -> bcrypt hash.
// An empty map leaves the protected routes open.
type AuthConfig struct {
	Clients map[string]string
}

func (a AuthConfig) Enabled() bool {
	return len(a.Clients) > 0
}

type CORSConfig struct {
	AllowedOrigins string
}

type ProvidersConfig struct {
	GoogleMapsAPIKey  string
	OpenWeatherAPIKey string
	TimeoutMS         int
	CacheTTLSec       int

	// Base URL overrides, empty for the public endpoints.
	GoogleMapsBaseURL  string
	GoogleRoadsBaseURL string
	OpenWeatherBaseURL string
}

func (p ProvidersConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMS) * time.Millisecond
}

func (p ProvidersConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLSec) * time.Second
}

type TracingConfig struct {
	Enabled bool
}

// LoadConfig reads the process environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile reads a YAML, JSON or TOML file keyed by the environment
// variable names (any case), with the environment taking precedence. An
// empty path reads the environment only.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	serverPort, err := getIntEnv(v, "SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisPort, err := getIntEnv(v, "REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv(v, "REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisEnabled, err := getBoolEnv(v, "REDIS_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}

	jwtExpiry, err := getIntEnv(v, "JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}

	clients, err := parseClients(getEnv(v, "AUTH_CLIENTS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_CLIENTS: %w", err)
	}

	timeoutMS, err := getIntEnv(v, "PROVIDER_TIMEOUT_MS", 10000)
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT_MS: %w", err)
	}

	cacheTTL, err := getIntEnv(v, "CACHE_TTL_SEC", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SEC: %w", err)
	}

	tracing, err := getBoolEnv(v, "TRACING_ENABLED", false)
	if err != nil {
		return nil, fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	timezone := getEnv(v, "TIMEZONE", "Europe/Istanbul")
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      serverPort,
			Env:       getEnv(v, "APP_ENV", "production"),
			LogLevel:  getEnv(v, "LOG_LEVEL", "info"),
			Timezone:  timezone,
			RateLimit: getEnv(v, "RATE_LIMIT", "100-M"),
		},
		Redis: RedisConfig{
			Enabled:  redisEnabled,
			Host:     getEnv(v, "REDIS_HOST", "localhost"),
			Port:     redisPort,
			Password: getEnv(v, "REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:      getEnv(v, "JWT_SECRET", "accident-risk-dev-secret"),
			ExpiryHours: jwtExpiry,
		},
		Auth: AuthConfig{
			Clients: clients,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv(v, "CORS_ALLOWED_ORIGINS", "*"),
		},
		Providers: ProvidersConfig{
			GoogleMapsAPIKey:  getEnv(v, "GOOGLE_MAPS_API_KEY", ""),
			OpenWeatherAPIKey: getEnv(v, "OPENWEATHER_API_KEY", ""),
			TimeoutMS:         timeoutMS,
			CacheTTLSec:       cacheTTL,

			GoogleMapsBaseURL:  getEnv(v, "GOOGLE_MAPS_BASE_URL", ""),
			GoogleRoadsBaseURL: getEnv(v, "GOOGLE_ROADS_BASE_URL", ""),
			OpenWeatherBaseURL: getEnv(v, "OPENWEATHER_BASE_URL", ""),
		},
		Tracing: TracingConfig{
			Enabled: tracing,
		},
	}

	return cfg, nil
}

func getEnv(v *viper.Viper, key, fallback string) string {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return fallback
	}
	return value
}

// getIntEnv rejects malformed values instead of reading them as zero.
func getIntEnv(v *viper.Viper, key string, fallback int) (int, error) {
	value := getEnv(v, key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(v *viper.Viper, key string, fallback bool) (bool, error) {
	value := getEnv(v, key, "")
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

// parseClients reads "id:hash,id:hash". bcrypt hashes contain no commas.
func parseClients(raw string) (map[string]string, error) {
	clients := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, hash, ok := strings.Cut(pair, ":")
		if !ok || id == "" || hash == "" {
			return nil, fmt.Errorf("entry %q is not id:hash", pair)
		}
		clients[id] = hash
	}
	return clients, nil
}
