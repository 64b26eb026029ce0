package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(t *testing.T) (*fiber.App, *Service) {
	s := setupAuthTest(t)
	h := &Handlers{Service: s}
	app := fiber.New()
	app.Post("/api/v1/auth/register", h.Register)
	app.Get("/api/v1/auth/confirm-email", h.ConfirmEmail)
	app.Post("/api/v1/auth/login", h.Login)
	app.Post("/api/v1/auth/forgot-password", h.ForgotPassword)
	app.Post("/api/v1/auth/reset-password", h.ResetPassword)
	return app, s
}

func postLogin(t *testing.T, app *fiber.App, email, password string) int {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestLoginHandler_MissingFieldsIs400(t *testing.T) {
	app, _ := newAuthApp(t)
	assert.Equal(t, fiber.StatusBadRequest, postLogin(t, app, "maria.garcia@example.com", ""))
}

// Every credential failure comes back as 401, whatever the cause.
func TestLoginHandler_AuthFailuresAre401(t *testing.T) {
	app, s := newAuthApp(t)
	u, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)

	// Unknown email.
	assert.Equal(t, fiber.StatusUnauthorized, postLogin(t, app, "nobody@example.com", "Passw0rd!"))
	// Unconfirmed account.
	assert.Equal(t, fiber.StatusUnauthorized, postLogin(t, app, u.Email, "Passw0rd!"))

	require.NoError(t, s.ConfirmEmail(context.Background(), u.ConfirmToken))
	// Wrong password.
	assert.Equal(t, fiber.StatusUnauthorized, postLogin(t, app, u.Email, "Wr0ngPass!"))
	// Deactivated account.
	require.NoError(t, s.DB.Model(u).Update("active", false).Error)
	assert.Equal(t, fiber.StatusUnauthorized, postLogin(t, app, u.Email, "Passw0rd!"))
}

func TestLoginHandler_Success(t *testing.T) {
	app, s := newAuthApp(t)
	u, err := s.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, s.ConfirmEmail(context.Background(), u.ConfirmToken))

	assert.Equal(t, fiber.StatusOK, postLogin(t, app, u.Email, "Passw0rd!"))
}

func TestRegisterHandler_Created(t *testing.T) {
	app, _ := newAuthApp(t)
	body, _ := json.Marshal(map[string]string{
		"user_name": "mgarcia",
		"email":     "maria.garcia@example.com",
		"password":  "Passw0rd!",
		"fullname":  "Maria Garcia",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
