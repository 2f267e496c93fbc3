package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/shareit/api"
	"github.com/Domenick1991/shareit/config"
	"github.com/Domenick1991/shareit/internal/bootstrap"
	"github.com/Domenick1991/shareit/internal/cache"
	"github.com/Domenick1991/shareit/internal/kafka"
	"github.com/Domenick1991/shareit/internal/obs"
	"github.com/Domenick1991/shareit/internal/repository"
	"github.com/Domenick1991/shareit/internal/service/booking"
	"github.com/Domenick1991/shareit/internal/service/items"
	"github.com/Domenick1991/shareit/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
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

	logger, err := obs.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := obs.InitTracer(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, cfg.Tracing.Insecure)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	itemRepo := repository.NewItemRepository(pool)

	var userCache users.UserCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, continuing without user cache", zap.Error(err))
		} else {
			userCache = redisCache
		}
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	} else {
		logger.Info("no kafka brokers configured, booking events are not published")
	}

	userService := users.NewUserService(userRepo, userCache, logger)
	itemService := items.NewItemService(itemRepo, userService, bookingRepo, items.WithLogger(logger))
	bookingService := booking.NewBookingService(
		bookingRepo,
		userService,
		itemService,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithLogger(logger),
	)

	var limiter *rate.Limiter
	if cfg.HTTP.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
	}

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Services{
		Bookings: bookingService,
		Users:    userService,
		Items:    itemService,
	}, logger, limiter)

	if err := bootstrap.Run(ctx, cfg.HTTP, router, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
