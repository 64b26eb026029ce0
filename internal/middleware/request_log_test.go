package middleware

import (
	"net/http/httptest"
	"testing"

	"inmobiliaria-backend/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestLogApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestLog())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"request_id": GetRequestID(c)})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperr.NotFound("Property not found")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return assert.AnError
	})
	return app
}

func TestRequestLog_GeneratesID(t *testing.T) {
	app := newRequestLogApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	id := resp.Header.Get("X-Request-Id")
	require.NotEmpty(t, id)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

// An id supplied by an upstream proxy is kept and echoed back.
func TestRequestLog_HonorsIncomingID(t *testing.T) {
	app := newRequestLogApp()
	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set("X-Request-Id", "edge-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "edge-42", resp.Header.Get("X-Request-Id"))
}

func TestErrorHandler_TaggedError(t *testing.T) {
	app := newRequestLogApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestErrorHandler_UnknownRouteIs404(t *testing.T) {
	app := newRequestLogApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// Untagged errors never leak their message.
func TestErrorHandler_OpaqueInternal(t *testing.T) {
	app := newRequestLogApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
