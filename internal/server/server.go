package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mansoorceksport/totality/internal/config"
	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/handler"
	"github.com/mansoorceksport/totality/internal/logger"
	"github.com/mansoorceksport/totality/internal/middleware"
	"github.com/mansoorceksport/totality/internal/repository"
	"github.com/mansoorceksport/totality/internal/service"
	"github.com/mansoorceksport/totality/internal/telemetry"
)

const (
	libraryCachePrefix = "totality:library"
	libraryCacheTTL    = 10 * time.Minute
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	Logger      *logger.Logger
}

// Repositories builds the Mongo-backed stores, with exercise reads cached
// in Redis when a client is configured.
func Repositories(deps AppDependencies) (domain.ExerciseRepository, domain.SetRecordRepository) {
	var exercises domain.ExerciseRepository = repository.NewMongoExerciseRepository(deps.MongoDB)
	if deps.RedisClient != nil {
		cache := repository.NewLibraryCache(deps.RedisClient, libraryCachePrefix, libraryCacheTTL)
		exercises = repository.NewCachedExerciseRepository(exercises, cache)
	}
	return exercises, repository.NewMongoSetRecordRepository(deps.MongoDB)
}

// NewAppWithService creates the Fiber application around an already built
// service, so callers can seed through the same stores before serving.
func NewAppWithService(deps AppDependencies, exerciseService *service.ExerciseService) *fiber.App {
	exerciseHandler := handler.NewExerciseHandler(exerciseService)

	app := fiber.New(fiber.Config{
		AppName:      "Totality Exercise Library API",
		ErrorHandler: handler.ErrorHandler(deps.Logger),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(telemetry.FiberMiddleware())
	app.Use(requestLogger(deps.Logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Correlation-ID, X-User-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "totality-exercise-library",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")
	if deps.RedisClient != nil {
		ttl := 24 * time.Hour
		if deps.Config != nil && deps.Config.Server.IdempotencyTTL > 0 {
			ttl = deps.Config.Server.IdempotencyTTL
		}
		v1.Use(middleware.Idempotency(deps.RedisClient, ttl, deps.Logger))
	}
	exerciseHandler.Register(v1)

	return app
}

// requestLogger logs one line per request through the application logger.
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		fields := []interface{}{"method", c.Method(), "path", c.Path(), "duration", time.Since(start)}
		if err != nil {
			fields = append(fields, "error", err)
		} else {
			fields = append(fields, "status", c.Response().StatusCode())
		}
		log.Debug("request", fields...)
		return err
	}
}
