package telemetry

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "totality-api"

// Request headers copied onto the server span when present.
var spanHeaders = map[string]string{
	"X-User-ID":        "library.user_id",
	"X-Correlation-ID": "library.correlation_id",
}

// FiberMiddleware starts a server span per request. The span is renamed to
// the matched route once routing is done, so /v1/exercises/abc and
// /v1/exercises/xyz land under one name.
//
// An error from the chain is rendered here through the app's ErrorHandler,
// so the span records the status the client actually receives.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)
	propagator := otel.GetTextMapPropagator()

	return func(c *fiber.Ctx) error {
		ctx := propagator.Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Method()),
			attribute.String("http.target", c.OriginalURL()),
			attribute.String("http.client_ip", c.IP()),
		}
		for header, key := range spanHeaders {
			if v := c.Get(header); v != "" {
				attrs = append(attrs, attribute.String(key, v))
			}
		}

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		c.SetUserContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set("X-Trace-ID", sc.TraceID().String())
		}

		err := c.Next()
		if err != nil {
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		if route := c.Route(); route != nil && route.Path != "" && route.Path != "/" {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
		}

		status := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if replay := c.GetRespHeader("X-Idempotent-Replay"); replay != "" {
			replayed, _ := strconv.ParseBool(replay)
			span.SetAttributes(attribute.Bool("library.idempotent_replay", replayed))
		}

		if err != nil {
			span.RecordError(err)
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			msg := "HTTP " + strconv.Itoa(status)
			if err != nil {
				msg = err.Error()
			}
			span.SetStatus(codes.Error, msg)
		case status >= fiber.StatusBadRequest:
			// client errors leave the status unset
		default:
			span.SetStatus(codes.Ok, "")
		}
		return nil
	}
}

// SetSpanAttribute tags the request span with a library attribute.
func SetSpanAttribute(c *fiber.Ctx, key string, value string) {
	trace.SpanFromContext(c.UserContext()).SetAttributes(attribute.String(key, value))
}
