package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/pkg/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(t *testing.T) (*fiber.App, *token.Issuer, *miniredis.Miniredis) {
	issuer := &token.Issuer{
		Secret:   "test-secret",
		IssuerID: "inmobiliaria-backend",
		Audience: "inmobiliaria-api",
		Expiry:   time.Hour,
	}
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Get("/protected", RequireAuth(issuer, rdb), func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		return c.JSON(fiber.Map{"uid": claims.UserID})
	})
	return app, issuer, mr
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	app, _, _ := newAuthApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_BadToken(t *testing.T) {
	app, _, _ := newAuthApp(t)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	app, issuer, _ := newAuthApp(t)
	signed, err := issuer.Generate(uuid.New().String(), "a@example.com", constants.Client)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// A deactivated user's otherwise valid token is rejected via the denylist.
func TestRequireAuth_DenylistedUser(t *testing.T) {
	app, issuer, mr := newAuthApp(t)
	userID := uuid.New().String()
	signed, err := issuer.Generate(userID, "a@example.com", constants.Client)
	require.NoError(t, err)
	require.NoError(t, mr.Set(constants.DisabledUserKey(userID), "1"))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthorizePermission_RoleGate(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("auth", &token.Claims{UserID: uuid.New().String(), Role: constants.Client})
		return c.Next()
	})
	app.Post("/admin-only", AuthorizePermission(constants.ManageCatalog), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
