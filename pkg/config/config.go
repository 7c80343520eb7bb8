package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultOrigin       = "http://localhost:5173"
	DefaultSessionTopic = "session_events"
)

type Config struct {
	ServiceName string
	LogLevel    string

	APIURL string
	Origin string

	StateDSN    string
	HTTPTimeout time.Duration

	KafkaBrokers      []string
	KafkaSessionTopic string
}

type ProxyConfig struct {
	ListenAddr string
	BackendURL string
	StaticDir  string
}

// LoadEnv reads .env from the working directory if there is one.
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
}

func Load() Config {
	LoadEnv()

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "questctl"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		APIURL: os.Getenv("QUEST_API_URL"),
		Origin: EnvDefault("QUEST_ORIGIN", DefaultOrigin),

		StateDSN:    EnvDefault("QUEST_STATE_DSN", defaultStateDSN()),
		HTTPTimeout: time.Duration(EnvIntDefault("QUEST_HTTP_TIMEOUT_SEC", 15)) * time.Second,

		KafkaBrokers:      CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaSessionTopic: EnvDefault("KAFKA_SESSION_TOPIC", DefaultSessionTopic),
	}
}

func LoadProxy() ProxyConfig {
	LoadEnv()

	cfg := ProxyConfig{
		ListenAddr: EnvDefault("DEVPROXY_ADDR", ":5173"),
		BackendURL: os.Getenv("BACKEND_URL"),
		StaticDir:  os.Getenv("STATIC_DIR"),
	}
	MustNonEmpty(cfg.BackendURL, "BACKEND_URL")
	return cfg
}

// BaseURL is the API root every request is resolved against.
func (c Config) BaseURL() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/") + "/api"
	}
	origin := c.Origin
	if origin == "" {
		origin = DefaultOrigin
	}
	return strings.TrimRight(origin, "/") + "/api"
}

func defaultStateDSN() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "file:questacademy-session.db"
	}
	return "file:" + filepath.Join(home, ".questacademy", "session.db")
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
