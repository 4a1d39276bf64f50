package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"github.com/mansoorceksport/totality/internal/catalog"
	"github.com/mansoorceksport/totality/internal/config"
	"github.com/mansoorceksport/totality/internal/logger"
	"github.com/mansoorceksport/totality/internal/repository"
	"github.com/mansoorceksport/totality/internal/server"
	"github.com/mansoorceksport/totality/internal/service"
	"github.com/mansoorceksport/totality/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	appLog.Info("starting exercise library service", "port", cfg.Server.Port)

	ctx := context.Background()

	otelProvider, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.OTEL.ServiceName,
		ServiceVersion: cfg.OTEL.ServiceVersion,
		Environment:    cfg.OTEL.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
		OTLPURLPath:    cfg.OTEL.URLPath,
		OTLPInsecure:   cfg.OTEL.Insecure,
		OTLPHeaders:    cfg.OTEL.Headers,
		Enabled:        cfg.OTEL.Enabled,
	}, appLog)
	if err != nil {
		appLog.Warn("failed to initialize OpenTelemetry", "error", err)
	}
	if otelProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			otelProvider.Shutdown(shutdownCtx)
		}()
	}

	// Connect to MongoDB with OpenTelemetry instrumentation
	ctxMongo, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoOpts := options.Client().ApplyURI(cfg.MongoDB.URI)
	if cfg.OTEL.Enabled {
		mongoOpts.SetMonitor(otelmongo.NewMonitor())
	}

	mongoClient, err := mongo.Connect(ctxMongo, mongoOpts)
	if err != nil {
		appLog.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	if err := mongoClient.Ping(ctxMongo, nil); err != nil {
		appLog.Fatal("failed to ping MongoDB", "error", err)
	}
	appLog.Info("MongoDB connected", "database", cfg.MongoDB.Database)

	mongoDB := mongoClient.Database(cfg.MongoDB.Database)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLog.Fatal("failed to connect to Redis", "error", err)
	}
	appLog.Info("Redis connected", "addr", cfg.Redis.Addr)

	deps := server.AppDependencies{
		Config:      cfg,
		MongoDB:     mongoDB,
		RedisClient: redisClient,
		Logger:      appLog,
	}
	exercises, sets := server.Repositories(deps)

	// Seed the catalog before the first read of the library
	if cfg.Seed.Enabled {
		flags := repository.NewRedisSeedFlagStore(redisClient, cfg.Seed.FlagKey, cfg.Seed.LockTTL, catalog.Version())
		seeder := service.NewCatalogSeeder(exercises, flags, catalog.All(), appLog)
		if _, err := seeder.SeedIfNeeded(ctx); err != nil {
			appLog.Fatal("failed to seed exercise catalog", "error", err)
		}
	}

	app := server.NewAppWithService(deps, service.NewExerciseService(exercises, sets, appLog))

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		appLog.Info("shutting down gracefully")
		app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		appLog.Fatal("failed to start server", "error", err)
	}
}
