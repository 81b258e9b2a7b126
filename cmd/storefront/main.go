package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_foodcart/internal/cache"
	"github.com/fjod/go_foodcart/internal/catalog"
	"github.com/fjod/go_foodcart/internal/config"
	"github.com/fjod/go_foodcart/internal/events"
	"github.com/fjod/go_foodcart/internal/health"
	storehttp "github.com/fjod/go_foodcart/internal/http"
	"github.com/fjod/go_foodcart/internal/poller"
	"github.com/fjod/go_foodcart/internal/repository"
	"github.com/fjod/go_foodcart/internal/service"
	"github.com/fjod/go_foodcart/internal/upload"
	"github.com/fjod/go_foodcart/pkg/logger"
	"github.com/fjod/go_foodcart/pkg/tracing"
	"github.com/redis/go-redis/v9"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, health.ServiceName, version, cfg.OTLPEndpoint)
	if err != nil {
		log.WithError(err).Fatal("failed to init tracing")
	}

	// Set up MongoDB connection
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	if err := repository.CreateIndexes(ctx, mongoDB); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}
	log.WithField("database", cfg.MongoDBName).Info("connected to MongoDB")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("Redis connection failed")
	}
	log.Info("Redis ping succeeded")

	restaurantCache := cache.NewRedisRestaurantCache(redisClient)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers...)

		p := poller.NewPoller(restaurantCache, log, cfg.KafkaBrokers...)
		defer p.Close()
		go p.Run(ctx)
		log.WithField("brokers", cfg.KafkaBrokers).Info("restaurant events enabled")
	}
	defer publisher.Close()

	restaurants := service.NewRestaurantService(
		repository.NewMongoRestaurantRepository(mongoDB), restaurantCache, publisher, log)
	users := service.NewUserService(repository.NewMongoUserRepository(mongoDB), log)

	router := storehttp.NewRouter(storehttp.RouterConfig{
		Restaurants:    restaurants,
		Users:          users,
		Catalog:        catalog.NewClient(cfg.CatalogBaseURL, log),
		Uploader:       upload.NewClient(cfg.UploadEndpoint, cfg.UploadPreset, log),
		Log:            log,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodySize:    cfg.MaxRequestBodySize,
		CORSOrigins:    cfg.CORSOrigins,
	})

	checker := health.NewChecker(map[string]health.Pinger{
		"mongodb": health.PingFunc(func(ctx context.Context) error {
			return mongoDB.Client().Ping(ctx, nil)
		}),
		"redis": health.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	}, log)
	go checker.Run(ctx)
	healthServer, err := health.Serve(cfg.GRPCHealthPort, checker, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start health server")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("storefront listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to serve")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down storefront...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	healthServer.GracefulStop()
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Warn("failed to disconnect from MongoDB")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Warn("failed to flush traces")
	}
	log.Info("storefront stopped")
}
