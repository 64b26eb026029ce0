package favorites

import (
	"strconv"

	"inmobiliaria-backend/internal/middleware"
	"inmobiliaria-backend/internal/pkg/response"
	"inmobiliaria-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

type addFavoriteRequest struct {
	PropertyID uint `json:"property_id" validate:"required"`
}

// POST /api/v1/favorites
func (h *Handlers) Add(c *fiber.Ctx) error {
	var body addFavoriteRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "property_id is required", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "property_id is required", 400, nil)
	}
	claims := middleware.GetClaims(c)

	fav, err := h.Service.Add(c.Context(), claims.UserID, body.PropertyID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Property added to favorites", fav, nil)
}

// DELETE /api/v1/favorites/:property_id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	propertyID, err := strconv.ParseUint(c.Params("property_id"), 10, 64)
	if err != nil || propertyID == 0 {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	claims := middleware.GetClaims(c)

	if err := h.Service.Remove(c.Context(), claims.UserID, uint(propertyID)); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}

// GET /api/v1/favorites
func (h *Handlers) List(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	props, err := h.Service.List(c.Context(), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Favorites fetched", props, nil)
}
