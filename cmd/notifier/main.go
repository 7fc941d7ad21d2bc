package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/notifier/consumer"
	"github.com/anshmittal0811/Royal-Commerce/internal/notifier/notify"
	"github.com/anshmittal0811/Royal-Commerce/internal/notifier/service"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/logging"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	smtpHost := getEnv("SMTP_HOST", "localhost")
	smtpPort := getEnvInt("SMTP_PORT", 587)
	smtpFrom := getEnv("SMTP_FROM", "orders@royal-commerce.local")
	smtpUser := getEnv("SMTP_USERNAME", "")
	smtpPass := getEnv("SMTP_PASSWORD", "")

	log := logging.New("notifier")
	defer log.Sync() //nolint:errcheck

	notifier := service.NewNotifier(
		notify.NewSMTPSender(smtpHost, smtpPort, smtpFrom, smtpUser, smtpPass),
		notify.NewLogSMSSender(log),
		log,
	)

	c := consumer.NewConsumer(notifier, log, brokers...)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down consumer")
		cancel()
	}()

	log.Info("notifier starting", zap.Strings("brokers", brokers))
	c.Run(ctx)
}
