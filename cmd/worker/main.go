package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/theibericoexperience-dev/last-sub001/config"
	"github.com/theibericoexperience-dev/last-sub001/internal/email"
	"github.com/theibericoexperience-dev/last-sub001/internal/kafka"
	"github.com/theibericoexperience-dev/last-sub001/internal/repository"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	ledger := repository.NewEventLedger(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.PaymentsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.PaymentEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.StaleSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			olderThan := time.Now().Add(-time.Duration(cfg.Worker.StaleAfterMinutes) * time.Minute)
			stale, err := ledger.ListStaleFailures(ctx, olderThan, cfg.Worker.MinAttempts)
			if err != nil {
				log.Printf("stale ledger sweep error: %v", err)
				continue
			}
			for _, entry := range stale {
				lastError := ""
				if entry.LastError != nil {
					lastError = *entry.LastError
				}
				log.Printf("stale unprocessed event %s (type %s, attempts %d): %s",
					entry.EventID, entry.EventType, entry.AttemptCount, lastError)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
