package offers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfferApp(t *testing.T, claims *token.Claims) (*fiber.App, *Service) {
	s, _ := setupOfferTest(t)
	h := &Handlers{Service: s}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("auth", claims)
		return c.Next()
	})
	app.Post("/api/v1/offers", h.CreateOffer)
	app.Patch("/api/v1/offers/:id/accept", h.AcceptOffer)
	app.Patch("/api/v1/offers/:id/reject", h.RejectOffer)
	app.Get("/api/v1/offers/property/:property_id", h.ListByProperty)
	app.Get("/api/v1/offers/property/:property_id/client/:client_id", h.ListByClientAndProperty)
	app.Get("/api/v1/offers/:id/events", h.ListEvents)
	return app, s
}

func TestCreateOfferHandler_Created(t *testing.T) {
	clientID := uuid.New().String()
	app, s := newOfferApp(t, &token.Claims{UserID: clientID, Role: constants.Client})
	p := seedProperty(t, s.DB, uuid.New().String(), "200001")

	body, _ := json.Marshal(map[string]interface{}{"property_id": p.PropertyID, "amount": 125000})
	req := httptest.NewRequest("POST", "/api/v1/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCreateOfferHandler_MissingFields(t *testing.T) {
	app, _ := newOfferApp(t, &token.Claims{UserID: uuid.New().String(), Role: constants.Client})

	body, _ := json.Marshal(map[string]interface{}{"amount": 125000})
	req := httptest.NewRequest("POST", "/api/v1/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateOfferHandler_UnknownProperty(t *testing.T) {
	app, _ := newOfferApp(t, &token.Claims{UserID: uuid.New().String(), Role: constants.Client})

	body, _ := json.Marshal(map[string]interface{}{"property_id": 77, "amount": 125000})
	req := httptest.NewRequest("POST", "/api/v1/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAcceptOfferHandler_WrongAgentIs403(t *testing.T) {
	agentID := uuid.New().String()
	app, s := newOfferApp(t, &token.Claims{UserID: uuid.New().String(), Role: constants.Agent})
	p := seedProperty(t, s.DB, agentID, "200002")
	offer, _, err := s.CreateOffer(context.Background(), CreateOfferInput{PropertyID: p.PropertyID, ClientID: uuid.New().String(), Amount: 90000})
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", "/api/v1/offers/"+itoa(offer.OfferID)+"/accept", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAcceptOfferHandler_SecondAcceptIs409(t *testing.T) {
	agentID := uuid.New().String()
	app, s := newOfferApp(t, &token.Claims{UserID: agentID, Role: constants.Agent})
	p := seedProperty(t, s.DB, agentID, "200003")
	winner, _, err := s.CreateOffer(context.Background(), CreateOfferInput{PropertyID: p.PropertyID, ClientID: uuid.New().String(), Amount: 90000})
	require.NoError(t, err)
	rival, _, err := s.CreateOffer(context.Background(), CreateOfferInput{PropertyID: p.PropertyID, ClientID: uuid.New().String(), Amount: 95000})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/v1/offers/"+itoa(winner.OfferID)+"/accept", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("PATCH", "/api/v1/offers/"+itoa(rival.OfferID)+"/accept", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRejectOfferHandler_UnknownOfferIs404(t *testing.T) {
	app, _ := newOfferApp(t, &token.Claims{UserID: uuid.New().String(), Role: constants.Agent})
	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/v1/offers/424242/reject", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListByPropertyHandler_ClientIs403(t *testing.T) {
	app, _ := newOfferApp(t, &token.Claims{UserID: uuid.New().String(), Role: constants.Client})
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/offers/property/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListByPropertyHandler_OtherAgentIs403(t *testing.T) {
	app, s := newOfferApp(t, &token.Claims{UserID: uuid.New().String(), Role: constants.Agent})
	p := seedProperty(t, s.DB, uuid.New().String(), "200004")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/offers/property/"+itoa(p.PropertyID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListByPropertyHandler_OwnerAgentIs200(t *testing.T) {
	agentID := uuid.New().String()
	app, s := newOfferApp(t, &token.Claims{UserID: agentID, Role: constants.Agent})
	p := seedProperty(t, s.DB, agentID, "200005")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/offers/property/"+itoa(p.PropertyID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListByClientAndProperty_OtherClientIs403(t *testing.T) {
	app, _ := newOfferApp(t, &token.Claims{UserID: uuid.New().String(), Role: constants.Client})
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/offers/property/1/client/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
