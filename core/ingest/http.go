package ingest

import (
	"errors"
	"strings"
	"time"

	"mastodon-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Request headers carrying the batch context.
const (
	HeaderViewerID   = "X-Viewer-ID"
	HeaderObservedAt = "X-Observed-At"
	HeaderPolicy     = "X-Push-Policy"
)

// FromRequest wraps the body of c into an envelope of kind. The domain comes from the
// :domain route parameter. X-Observed-At defaults to the time the request arrived.
func FromRequest(c *fiber.Ctx, kind Kind) (Envelope, error) {
	env := Envelope{
		Kind:       kind,
		Domain:     strings.ToLower(c.Params("domain")),
		ViewerID:   c.Get(HeaderViewerID),
		Policy:     c.Get(HeaderPolicy),
		ObservedAt: time.Now().UTC(),
	}

	if raw := c.Get(HeaderObservedAt); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return env, errors.Join(ErrInvalidEnvelope, errors.New("X-Observed-At must be RFC3339"))
		}
		env.ObservedAt = t
	}

	// The fasthttp body buffer is reused after the handler returns.
	env.Payload = append([]byte(nil), c.Body()...)
	return env, env.Validate()
}

// StatusCode maps an ingest error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidEnvelope), errors.Is(err, ErrInvalidPayload), errors.Is(err, reconcile.ErrUnknownPolicy),
		errors.Is(err, reconcile.ErrInvalidEntity):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrViewerRequired):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrUnknownKind):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error body.
func WriteError(c *fiber.Ctx, err error) error {
	return c.Status(StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
}

// LogFailure logs a failed ingest at warn level for client errors and at error
// level for everything else.
func LogFailure(l *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if StatusCode(err) < fiber.StatusInternalServerError {
		l.Warn(msg, fields...)
		return
	}
	l.Error(msg, fields...)
}
