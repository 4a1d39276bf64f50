package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mansoorceksport/totality/internal/logger"
)

// CorrelationIDHeader identifies a client retry of the same request.
const CorrelationIDHeader = "X-Correlation-ID"

const idempotencyKeyPrefix = "totality:idempotency:"

// Idempotency replays the stored response for POST/PATCH/PUT requests
// that repeat an X-Correlation-ID within ttl. Requests without the header
// pass through. A Redis failure never fails the request.
func Idempotency(redisClient *redis.Client, ttl time.Duration, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Only apply to mutating methods
		if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPatch && c.Method() != fiber.MethodPut {
			return c.Next()
		}

		correlationID := c.Get(CorrelationIDHeader)
		if correlationID == "" {
			return c.Next()
		}

		key := fmt.Sprintf("%s%s:%s %s", idempotencyKeyPrefix, correlationID, c.Method(), c.Path())
		ctx := c.UserContext()

		cached, err := redisClient.HGetAll(ctx, key).Result()
		if err != nil {
			log.Warn("idempotency lookup failed", "key", key, "error", err)
		} else if body, ok := cached["body"]; ok {
			status, convErr := strconv.Atoi(cached["status"])
			if convErr != nil {
				status = fiber.StatusOK
			}
			c.Set("X-Idempotent-Replay", "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(status).SendString(body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Cache successful responses (2xx status codes)
		statusCode := c.Response().StatusCode()
		if statusCode < 200 || statusCode >= 300 {
			return nil
		}
		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_, err = redisClient.TxPipelined(storeCtx, func(pipe redis.Pipeliner) error {
			pipe.HSet(storeCtx, key, "status", statusCode, "body", string(body))
			pipe.Expire(storeCtx, key, ttl)
			return nil
		})
		if err != nil {
			log.Warn("idempotency store failed", "key", key, "error", err)
		}
		return nil
	}
}
