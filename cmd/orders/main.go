package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	cartclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/cart"
	usersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/users"
	h "github.com/anshmittal0811/Royal-Commerce/internal/orders/http"
	"github.com/anshmittal0811/Royal-Commerce/internal/orders/repository"
	"github.com/anshmittal0811/Royal-Commerce/internal/orders/service"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/identity"
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
	port := getEnv("HTTP_PORT", "8083")
	cartAddr := getEnv("CART_SERVICE_ADDR", "http://localhost:8082")
	usersAddr := getEnv("USERS_SERVICE_ADDR", "http://localhost:8090")
	timeout := 30 * time.Second

	cred := &repository.Credentials{
		Host:              getEnv("POSTGRES_HOST", "localhost"),
		Port:              getEnvInt("POSTGRES_PORT", 5432),
		User:              getEnv("POSTGRES_USER", "orders"),
		Password:          getEnv("POSTGRES_PASSWORD", "orders"),
		DBName:            getEnv("POSTGRES_DB", "orders"),
		MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./internal/orders/repository/migrations"),
	}

	log := logging.New("orders")
	defer log.Sync() //nolint:errcheck

	repo, err := repository.NewRepository(cred)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(cred); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	svc := service.NewOrderService(
		repo,
		cartclient.NewClient(cartAddr, timeout),
		usersclient.NewClient(usersAddr, timeout),
		log,
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(identity.Middleware)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Mount("/api/orders", h.NewHandler(svc, log).Routes())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("orders service starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
}
