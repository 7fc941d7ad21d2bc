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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/cart/cache"
	h "github.com/anshmittal0811/Royal-Commerce/internal/cart/http"
	"github.com/anshmittal0811/Royal-Commerce/internal/cart/repository"
	"github.com/anshmittal0811/Royal-Commerce/internal/cart/service"
	catalogclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/catalog"
	usersclient "github.com/anshmittal0811/Royal-Commerce/internal/clients/users"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/identity"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/logging"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	port := getEnv("HTTP_PORT", "8082")
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnv("MONGO_DB", "carts")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	catalogAddr := getEnv("CATALOG_SERVICE_ADDR", "http://localhost:8081")
	usersAddr := getEnv("USERS_SERVICE_ADDR", "http://localhost:8090")
	timeout := 30 * time.Second

	log := logging.New("cart")
	defer log.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repository.Connect(ctx, repository.MongoConfig{URI: mongoURI, Database: mongoDB})
	cancel()
	if err != nil {
		log.Fatal("failed to connect to mongodb", zap.Error(err))
	}

	repo := repository.NewMongoRepository(db)
	if err := repo.CreateIndexes(context.Background()); err != nil {
		log.Fatal("failed to create indexes", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	cartCache := cache.NewRedisCache(redisClient)

	svc := service.NewCartService(
		repo,
		cartCache,
		catalogclient.NewClient(catalogAddr, timeout),
		usersclient.NewClient(usersAddr, timeout),
		log,
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(identity.Middleware)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Mount("/api/carts", h.NewHandler(svc, log).Routes())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("cart service starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
}
