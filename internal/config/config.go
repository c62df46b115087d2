package config

import (
	"os"
	"strconv"
)

// Config holds the observation service (HTTP API) configuration.
type Config struct {
	HTTP struct {
		Addr string
	}

	// KVBackend selects where the zones/records slots persist:
	// "redis" (default), "postgres", or "memory" (no durability, dev only).
	KVBackend string

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Postgres struct {
		Host     string
		Port     int
		User     string
		Password string
		Database string
		SSLMode  string
	}

	Log struct {
		Level  string
		Format string
	}

	Sink    SinkConfig
	Session SessionConfig
}

// SinkConfig configures the outbound observation log sink.
type SinkConfig struct {
	// Kind: "webhook" (POST JSON to URL), "mqtt" (publish JSON to topic),
	// or "off" (capture still works; records stay pending/fail).
	Kind       string
	WebhookURL string

	MQTT struct {
		Broker   string
		ClientID string
		Username string
		Password string
		Topic    string
	}

	// TickSeconds is the auto-send loop period. One record per tick.
	TickSeconds int
}

// SessionConfig holds the defaults a fresh session starts with.
type SessionConfig struct {
	Observer        string
	Site            string
	IntervalMinutes int
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.KVBackend = getEnv("KV_BACKEND", "redis")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Postgres.Host = getEnv("DB_HOST", "localhost")
	cfg.Postgres.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Postgres.User = getEnv("DB_USER", "postgres")
	cfg.Postgres.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Postgres.Database = getEnv("DB_NAME", "missionobs")
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Sink.Kind = getEnv("SINK_KIND", "webhook")
	cfg.Sink.WebhookURL = getEnv("SINK_WEBHOOK_URL", "")
	cfg.Sink.MQTT.Broker = getEnv("SINK_MQTT_BROKER", "tcp://localhost:1883")
	cfg.Sink.MQTT.ClientID = getEnv("SINK_MQTT_CLIENT_ID", "analogue-mission-observer")
	cfg.Sink.MQTT.Username = getEnv("SINK_MQTT_USERNAME", "")
	cfg.Sink.MQTT.Password = getEnv("SINK_MQTT_PASSWORD", "")
	cfg.Sink.MQTT.Topic = getEnv("SINK_MQTT_TOPIC", "mission/observations")
	cfg.Sink.TickSeconds = parseInt(getEnv("SINK_TICK_SECONDS", "1"), 1)
	if cfg.Sink.TickSeconds < 1 {
		cfg.Sink.TickSeconds = 1
	}

	cfg.Session.Observer = getEnv("SESSION_OBSERVER", "Observer 1")
	cfg.Session.Site = getEnv("SESSION_SITE", "Habitat A")
	cfg.Session.IntervalMinutes = parseInt(getEnv("SESSION_INTERVAL_MINUTES", "5"), 5)
	if cfg.Session.IntervalMinutes < 1 {
		cfg.Session.IntervalMinutes = 1
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
