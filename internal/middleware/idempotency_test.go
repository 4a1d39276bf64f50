package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoorceksport/totality/internal/logger"
)

func newIdempotentApp(t *testing.T) (*fiber.App, *miniredis.Miniredis, *int32) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var calls int32
	app := fiber.New()
	app.Use(Idempotency(client, time.Minute, logger.Nop()))
	app.Post("/things", func(c *fiber.Ctx) error {
		n := atomic.AddInt32(&calls, 1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": n})
	})
	app.Post("/fail", func(c *fiber.Ctx) error {
		atomic.AddInt32(&calls, 1)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nope"})
	})
	app.Get("/things", func(c *fiber.Ctx) error {
		n := atomic.AddInt32(&calls, 1)
		return c.JSON(fiber.Map{"call": n})
	})
	return app, mr, &calls
}

func do(t *testing.T, app *fiber.App, method, path, correlationID string) (int, string, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if correlationID != "" {
		req.Header.Set(CorrelationIDHeader, correlationID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header.Get("X-Idempotent-Replay")
}

func TestIdempotency_ReplaysResponse(t *testing.T) {
	app, mr, calls := newIdempotentApp(t)

	status, body, replay := do(t, app, fiber.MethodPost, "/things", "abc")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"call":1}`, body)
	assert.Empty(t, replay)

	status, body, replay = do(t, app, fiber.MethodPost, "/things", "abc")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `{"call":1}`, body)
	assert.Equal(t, "true", replay)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	assert.Greater(t, mr.TTL("totality:idempotency:abc:POST /things"), time.Duration(0))
}

func TestIdempotency_PassThrough(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		path          string
		correlationID string
	}{
		{name: "no header", method: fiber.MethodPost, path: "/things"},
		{name: "read request", method: fiber.MethodGet, path: "/things", correlationID: "abc"},
		{name: "failed response is not stored", method: fiber.MethodPost, path: "/fail", correlationID: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, calls := newIdempotentApp(t)
			do(t, app, tt.method, tt.path, tt.correlationID)
			_, _, replay := do(t, app, tt.method, tt.path, tt.correlationID)

			assert.Empty(t, replay)
			assert.Equal(t, int32(2), atomic.LoadInt32(calls))
		})
	}
}

func TestIdempotency_RedisDown(t *testing.T) {
	app, mr, calls := newIdempotentApp(t)
	mr.Close()

	status, _, _ := do(t, app, fiber.MethodPost, "/things", "abc")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}
