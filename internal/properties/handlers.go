package properties

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

type createPropertyRequest struct {
	Description    string  `json:"description" validate:"required"`
	Address        string  `json:"address" validate:"required"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	SquareMeters   float64 `json:"square_meters"`
	Bedrooms       int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms      int     `json:"bathrooms" validate:"gte=0"`
	PropertyTypeID uint    `json:"property_type_id" validate:"required"`
	SalesTypeID    uint    `json:"sales_type_id" validate:"required"`
	FeatureIDs     []uint  `json:"feature_ids"`
}

// POST /api/v1/properties
func (h *Handlers) CreateProperty(c *fiber.Ctx) error {
	var body createPropertyRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "description, address, price, property_type_id and sales_type_id are required", 400, nil)
	}
	claims := middleware.GetClaims(c)

	property, err := h.Service.CreateProperty(c.Context(), CreatePropertyInput{
		AgentID:        claims.UserID,
		Description:    body.Description,
		Address:        body.Address,
		Price:          body.Price,
		SquareMeters:   body.SquareMeters,
		Bedrooms:       body.Bedrooms,
		Bathrooms:      body.Bathrooms,
		PropertyTypeID: body.PropertyTypeID,
		SalesTypeID:    body.SalesTypeID,
		FeatureIDs:     body.FeatureIDs,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Property created successfully", property, nil)
}

type updatePropertyRequest struct {
	Description    *string  `json:"description"`
	Address        *string  `json:"address"`
	Price          *float64 `json:"price"`
	SquareMeters   *float64 `json:"square_meters"`
	Bedrooms       *int     `json:"bedrooms"`
	Bathrooms      *int     `json:"bathrooms"`
	PropertyTypeID *uint    `json:"property_type_id"`
	SalesTypeID    *uint    `json:"sales_type_id"`
}

// PUT /api/v1/properties/:id
func (h *Handlers) UpdateProperty(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	var body updatePropertyRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	claims := middleware.GetClaims(c)

	property, err := h.Service.UpdateProperty(c.Context(), UpdatePropertyInput{
		PropertyID:     propertyID,
		AgentID:        claims.UserID,
		Description:    body.Description,
		Address:        body.Address,
		Price:          body.Price,
		SquareMeters:   body.SquareMeters,
		Bedrooms:       body.Bedrooms,
		Bathrooms:      body.Bathrooms,
		PropertyTypeID: body.PropertyTypeID,
		SalesTypeID:    body.SalesTypeID,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property updated successfully", property, nil)
}

// DELETE /api/v1/properties/:id
func (h *Handlers) DeleteProperty(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	claims := middleware.GetClaims(c)
	if err := h.Service.DeleteProperty(c.Context(), propertyID, claims.UserID); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}

// GET /api/v1/properties/available
func (h *Handlers) ListAvailable(c *fiber.Ctx) error {
	properties, err := h.Service.ListAvailable(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Available properties fetched", properties, nil)
}

// GET /api/v1/properties/:id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	property, err := h.Service.GetByID(c.Context(), propertyID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property fetched", property, nil)
}

// GET /api/v1/properties/code/:code
func (h *Handlers) GetByCode(c *fiber.Ctx) error {
	property, err := h.Service.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property fetched", property, nil)
}

// GET /api/v1/properties/agent/:id
func (h *Handlers) ListByAgent(c *fiber.Ctx) error {
	agentID := c.Params("id")
	if agentID == "" {
		return response.Error(c, "Agent id is required", 400, nil)
	}
	properties, err := h.Service.ListByAgent(c.Context(), agentID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Agent properties fetched", properties, nil)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
