package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	cartclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/cart"
	catalogclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/catalog"
	ordersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/orders"
	paymentclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/payment"
	h "github.com/anshmittal0811/Royal-Commerce/internal/gateway/http"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/logging"
)

type Config struct {
	HTTPPort        string
	CatalogAddr     string
	CartAddr        string
	OrdersAddr      string
	PaymentAddr     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogAddr:     getEnv("CATALOG_SERVICE_ADDR", "http://localhost:8081"),
		CartAddr:        getEnv("CART_SERVICE_ADDR", "http://localhost:8082"),
		OrdersAddr:      getEnv("ORDERS_SERVICE_ADDR", "http://localhost:8083"),
		PaymentAddr:     getEnv("PAYMENT_SERVICE_ADDR", "http://localhost:8084"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	log := logging.New("gateway")
	defer log.Sync() //nolint:errcheck

	handlers := h.Handlers{
		Products: h.NewProductHandler(catalogclient.NewClient(cfg.CatalogAddr, cfg.RequestTimeout), log),
		Carts:    h.NewCartHandler(cartclient.NewClient(cfg.CartAddr, cfg.RequestTimeout), log),
		Orders:   h.NewOrdersHandler(ordersclient.NewClient(cfg.OrdersAddr, cfg.RequestTimeout), log),
		Payments: h.NewPaymentHandler(paymentclient.NewClient(cfg.PaymentAddr, cfg.RequestTimeout), log),
	}

	root := chi.NewRouter()
	root.Use(middleware.Recoverer)
	root.Use(middleware.Timeout(cfg.RequestTimeout))
	root.Use(middleware.Compress(5))
	root.Mount("/", h.NewRouter(handlers, log))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(root, "gateway"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("gateway starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
}
