package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Oracle provider names accepted in ORACLE_PROVIDER.
const (
	OracleNone   = "none"
	OracleOpenAI = "openai"
	OracleGemini = "gemini"
)

// Config holds all server configuration
type Config struct {
	Port            int
	RestPort        int    // Port for REST server (used when ServerType is "both")
	ServerType      string // "websocket", "rest", or "both"
	RedisURL        string
	RedisPassword   string
	MaxSessions     int
	SessionTimeout  time.Duration
	AllowedOrigins  []string
	KeepAlivePeriod time.Duration

	OracleProvider  string // "openai", "gemini", or "none"
	OpenAIAPIKey    string
	GeminiAPIKey    string
	OracleTimeout   time.Duration
	OracleThreshold float64

	SinkURL     string // Log collector endpoint; empty disables delivery
	SinkRetries int
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:            8080,
		RestPort:        8081,
		ServerType:      "websocket",
		RedisURL:        "localhost:6379",
		RedisPassword:   "",
		MaxSessions:     100,
		SessionTimeout:  30 * time.Minute,
		AllowedOrigins:  []string{"*"},
		KeepAlivePeriod: 30 * time.Second,
		OracleProvider:  OracleNone,
		OracleThreshold: 0.8,
		OracleTimeout:   2 * time.Second,
		SinkRetries:     3,
	}

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: REST_PORT (used when SERVER_TYPE is "both")
	if restPort := os.Getenv("REST_PORT"); restPort != "" {
		rp, err := strconv.Atoi(restPort)
		if err != nil {
			return nil, fmt.Errorf("invalid REST_PORT: %w", err)
		}
		config.RestPort = rp
	}

	// Optional: SERVER_TYPE ("websocket", "rest", or "both")
	if serverType := os.Getenv("SERVER_TYPE"); serverType != "" {
		switch serverType {
		case "websocket", "rest", "both":
			config.ServerType = serverType
		default:
			return nil, fmt.Errorf("invalid SERVER_TYPE: must be 'websocket', 'rest', or 'both'")
		}
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: MAX_SESSIONS
	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		m, err := strconv.Atoi(maxSessions)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
		}
		config.MaxSessions = m
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: KEEPALIVE_PERIOD (in seconds)
	if keepalive := os.Getenv("KEEPALIVE_PERIOD"); keepalive != "" {
		k, err := strconv.Atoi(keepalive)
		if err != nil {
			return nil, fmt.Errorf("invalid KEEPALIVE_PERIOD: %w", err)
		}
		config.KeepAlivePeriod = time.Duration(k) * time.Second
	}

	// Optional: ORACLE_PROVIDER ("openai", "gemini", or "none"). The matching
	// API key is required only when a provider is selected.
	if provider := os.Getenv("ORACLE_PROVIDER"); provider != "" {
		switch provider {
		case OracleNone, OracleOpenAI, OracleGemini:
			config.OracleProvider = provider
		default:
			return nil, fmt.Errorf("invalid ORACLE_PROVIDER: must be 'openai', 'gemini', or 'none'")
		}
	}

	config.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	switch config.OracleProvider {
	case OracleOpenAI:
		if config.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required when ORACLE_PROVIDER=openai")
		}
	case OracleGemini:
		if config.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required when ORACLE_PROVIDER=gemini")
		}
	}

	// Optional: ORACLE_TIMEOUT (in milliseconds)
	if timeout := os.Getenv("ORACLE_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid ORACLE_TIMEOUT: %w", err)
		}
		config.OracleTimeout = time.Duration(t) * time.Millisecond
	}

	// Optional: ORACLE_THRESHOLD (0..1)
	if threshold := os.Getenv("ORACLE_THRESHOLD"); threshold != "" {
		f, err := strconv.ParseFloat(threshold, 64)
		if err != nil || f < 0 || f > 1 {
			return nil, fmt.Errorf("invalid ORACLE_THRESHOLD: must be a number between 0 and 1")
		}
		config.OracleThreshold = f
	}

	// Optional: SINK_URL
	if sinkURL := os.Getenv("SINK_URL"); sinkURL != "" {
		config.SinkURL = sinkURL
	}

	// Optional: SINK_RETRIES
	if retries := os.Getenv("SINK_RETRIES"); retries != "" {
		r, err := strconv.Atoi(retries)
		if err != nil {
			return nil, fmt.Errorf("invalid SINK_RETRIES: %w", err)
		}
		config.SinkRetries = r
	}

	return config, nil
}
