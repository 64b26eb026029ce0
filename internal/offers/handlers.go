package offers

import (
	"strconv"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/middleware"
	"inmobiliaria-backend/internal/pkg/response"
	"inmobiliaria-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

type createOfferRequest struct {
	PropertyID uint    `json:"property_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

// POST /api/v1/offers
func (h *Handlers) CreateOffer(c *fiber.Ctx) error {
	var body createOfferRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "property_id and amount are required", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "property_id and amount are required", 400, nil)
	}
	claims := middleware.GetClaims(c)

	// Duplicate create is a silent no-op: the existing offer comes back
	// with the same status code as a fresh one.
	offer, _, err := h.Service.CreateOffer(c.Context(), CreateOfferInput{
		PropertyID: body.PropertyID,
		ClientID:   claims.UserID,
		Amount:     body.Amount,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Offer registered", offer, nil)
}

// PATCH /api/v1/offers/:id/accept
func (h *Handlers) AcceptOffer(c *fiber.Ctx) error {
	offerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, "Invalid offer id", 400, nil)
	}
	claims := middleware.GetClaims(c)
	offer, err := h.Service.AcceptOffer(c.Context(), offerID, claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer accepted", offer, nil)
}

// PATCH /api/v1/offers/:id/reject
func (h *Handlers) RejectOffer(c *fiber.Ctx) error {
	offerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, "Invalid offer id", 400, nil)
	}
	claims := middleware.GetClaims(c)
	offer, err := h.Service.RejectOffer(c.Context(), offerID, claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer rejected", offer, nil)
}

// GET /api/v1/offers/property/:property_id — agent view of all offers on a property.
func (h *Handlers) ListByProperty(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "property_id")
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	claims := middleware.GetClaims(c)
	if claims.Role != constants.Agent {
		return response.Error(c, "User is Forbidden from performing this action", 403, nil)
	}
	offers, err := h.Service.ListByProperty(c.Context(), propertyID, claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offers fetched", offers, nil)
}

// GET /api/v1/offers/property/:property_id/client/:client_id
func (h *Handlers) ListByClientAndProperty(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "property_id")
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	clientID := c.Params("client_id")
	claims := middleware.GetClaims(c)
	// Clients may only read their own thread of offers.
	if claims.Role == constants.Client && claims.UserID != clientID {
		return response.Error(c, "User is Forbidden from performing this action", 403, nil)
	}
	offers, err := h.Service.ListByClientAndProperty(c.Context(), clientID, propertyID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offers fetched", offers, nil)
}

// GET /api/v1/offers/:id/events
func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	offerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, "Invalid offer id", 400, nil)
	}
	events, err := h.Service.ListEvents(c.Context(), offerID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer events fetched", events, nil)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
