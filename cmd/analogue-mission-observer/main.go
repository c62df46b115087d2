package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/cloud"
	"github.com/CCAUCAM/analogue-mission-observer/internal/config"
	httpapi "github.com/CCAUCAM/analogue-mission-observer/internal/http"
	"github.com/CCAUCAM/analogue-mission-observer/internal/logger"
	"github.com/CCAUCAM/analogue-mission-observer/internal/service"
	"github.com/CCAUCAM/analogue-mission-observer/internal/session"
	"github.com/CCAUCAM/analogue-mission-observer/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "analogue-mission-observer")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// KV backend: the session only needs two byte-string slots, so any
	// backend failure degrades to in-memory (records stay authoritative in
	// memory for the session either way).
	var kv store.KV
	var redisClient *redis.Client
	var db *sql.DB
	switch cfg.KVBackend {
	case "postgres":
		connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
			cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.PingContext(ctx)
		}
		if err != nil {
			log.Warn("Postgres unavailable, falling back to memory KV", zap.Error(err))
			kv = store.NewMemoryKV()
		} else {
			pg := store.NewPostgresKV(db)
			if err := pg.Init(ctx); err != nil {
				log.Warn("Postgres KV init failed, falling back to memory KV", zap.Error(err))
				kv = store.NewMemoryKV()
			} else {
				kv = pg
				log.Info("Postgres KV enabled")
			}
		}
	case "memory":
		kv = store.NewMemoryKV()
	default:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
	}

	records := store.NewRecordStore(kv, log)
	records.Load(ctx)
	log.Info("session state loaded",
		zap.Int("records", records.Count()),
		zap.Int("zones", len(records.Zones())),
	)

	// Sink: the remote log is opaque, so webhook and MQTT are
	// interchangeable transports. "off" keeps capture working; live records
	// just stay undelivered.
	var sink cloud.Sink
	var mqttSink *cloud.MQTTSink
	switch cfg.Sink.Kind {
	case "mqtt":
		mqttSink, err = cloud.NewMQTTSink(cloud.MQTTSinkConfig{
			Broker:   cfg.Sink.MQTT.Broker,
			ClientID: cfg.Sink.MQTT.ClientID,
			Username: cfg.Sink.MQTT.Username,
			Password: cfg.Sink.MQTT.Password,
			Topic:    cfg.Sink.MQTT.Topic,
		}, log)
		if err != nil {
			log.Warn("MQTT sink unavailable, auto-send disabled", zap.Error(err))
		} else {
			sink = mqttSink
		}
	case "off":
		log.Info("sink disabled by config")
	default:
		if cfg.Sink.WebhookURL == "" {
			log.Warn("SINK_WEBHOOK_URL not set, auto-send disabled")
		} else {
			sink = cloud.NewWebhookSink(cfg.Sink.WebhookURL, log)
		}
	}

	queue := cloud.NewSyncQueue(records, sink, log)
	sess := session.New(cfg.Session, time.Duration(cfg.Sink.TickSeconds)*time.Second, records, queue, log)
	defer sess.Close()

	router := httpapi.NewRouter(log)
	router.RegisterObservationRoutes(httpapi.NewObservationHandler(sess, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if mqttSink != nil {
		mqttSink.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
