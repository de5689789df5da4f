package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/mailer"
	"github.com/BruksfildServices01/salon-booking/internal/mq"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
)

const prefetch = 8

// The notifier turns booking, payment and contact events into emails.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl = zl.With(zap.String("service", "notifier"))

	if cfg.RabbitURL == "" {
		zl.Fatal("RABBIT_URL is required")
	}

	consumer, err := mq.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, notify.Bindings, prefetch, zl)
	if err != nil {
		zl.Fatal("rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	sender := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	handler := notify.NewHandler(sender, cfg.SMTP.AdminTo, zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zl.Info("notifier consuming", zap.String("queue", cfg.RabbitQueue))
	if err := consumer.Run(ctx, handler.Handle); err != nil {
		zl.Error("consumer stopped", zap.Error(err))
	}
}
