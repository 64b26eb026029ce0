package middleware

import (
	"errors"

	"inmobiliaria-backend/internal/pkg/apperr"
	"inmobiliaria-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the app-level catch-all for errors that escape handlers.
// Tagged service errors keep their kind mapping, Fiber routing errors (404,
// 405, body limits) keep their code, and anything else is logged with the
// request id and returned as an opaque 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return response.FromError(c, err)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Error(c, fe.Message, fe.Code, nil)
	}

	log.Error().Err(err).
		Str("request_id", GetRequestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
