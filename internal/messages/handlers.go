package messages

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

type sendMessageRequest struct {
	PropertyID uint   `json:"property_id" validate:"required"`
	ClientID   string `json:"client_id"`
	Body       string `json:"body" validate:"required"`
}

// POST /api/v1/messages
func (h *Handlers) Send(c *fiber.Ctx) error {
	var body sendMessageRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "property_id and body are required", 400, nil)
	}
	claims := middleware.GetClaims(c)

	msg, err := h.Service.Send(c.Context(), SendInput{
		PropertyID: body.PropertyID,
		SenderID:   claims.UserID,
		SenderRole: claims.Role,
		ClientID:   body.ClientID,
		Body:       body.Body,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Message sent", msg, nil)
}

// GET /api/v1/messages/property/:property_id/client/:client_id
func (h *Handlers) ListThread(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "property_id")
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	clientID := c.Params("client_id")
	claims := middleware.GetClaims(c)

	// Clients can only read their own thread.
	if claims.Role == constants.Client && claims.UserID != clientID {
		return response.Error(c, "User is Forbidden from performing this action", 403, nil)
	}

	msgs, err := h.Service.ListThread(c.Context(), propertyID, clientID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Messages fetched", msgs, nil)
}

// GET /api/v1/messages/property/:property_id/clients
func (h *Handlers) ListPropertyClients(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "property_id")
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	claims := middleware.GetClaims(c)
	if claims.Role != constants.Agent && claims.Role != constants.Admin {
		return response.Error(c, "User is Forbidden from performing this action", 403, nil)
	}

	clients, err := h.Service.ListPropertyClients(c.Context(), propertyID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Clients fetched", clients, nil)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
