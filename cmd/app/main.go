package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theibericoexperience-dev/last-sub001/api"
	"github.com/theibericoexperience-dev/last-sub001/config"
	"github.com/theibericoexperience-dev/last-sub001/internal/bootstrap"
	"github.com/theibericoexperience-dev/last-sub001/internal/cache"
	"github.com/theibericoexperience-dev/last-sub001/internal/kafka"
	"github.com/theibericoexperience-dev/last-sub001/internal/provider"
	"github.com/theibericoexperience-dev/last-sub001/internal/repository"
	"github.com/theibericoexperience-dev/last-sub001/internal/service/payments"
	"github.com/theibericoexperience-dev/last-sub001/internal/service/quote"
	"github.com/theibericoexperience-dev/last-sub001/internal/service/tours"
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
	if cfg.Stripe.SecretKey == "" {
		log.Fatal("stripe secret key is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Pricing.ToursCacheTTLSeconds)*time.Second,
		time.Duration(cfg.Pricing.PolicyCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	stripeClient := provider.NewStripeClient(cfg.Stripe.SecretKey)

	tourRepo := repository.NewTourRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	ledger := repository.NewEventLedger(pool)
	paymentRepo := repository.NewPaymentRecordRepository(pool)

	tourService := tours.NewTourService(tourRepo, redisCache)
	quoteService := quote.NewQuoteService(tourRepo, redisCache)
	processor := payments.NewProcessor(
		ledger,
		orderRepo,
		paymentRepo,
		stripeClient,
		payments.WithProducer(producer, cfg.Kafka.PaymentsTopic),
	)

	quoteHandler := api.NewQuoteHandler(quoteService)
	tourHandler := api.NewTourHandler(tourService)
	webhookHandler := api.NewWebhookHandler(processor, cfg.Stripe.WebhookSecret)

	if err := bootstrap.Run(ctx, cfg, quoteHandler, tourHandler, webhookHandler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
