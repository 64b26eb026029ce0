package catalog

import (
	"strconv"

	"inmobiliaria-backend/internal/pkg/response"
	"inmobiliaria-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

type entryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// parseBody decodes and validates the shared create/update payload. When it
// returns false the 400 response has already been written.
func (h *Handlers) parseBody(c *fiber.Ctx) (entryRequest, bool) {
	var body entryRequest
	if err := c.BodyParser(&body); err != nil {
		_ = response.Error(c, "name is required", 400, nil)
		return body, false
	}
	if err := validation.Struct(&body); err != nil {
		_ = response.Error(c, "name is required", 400, nil)
		return body, false
	}
	return body, true
}

// ---- property types ----

func (h *Handlers) ListPropertyTypes(c *fiber.Ctx) error {
	out, err := h.Service.ListPropertyTypes(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property types fetched", out, nil)
}

func (h *Handlers) GetPropertyType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	pt, err := h.Service.GetPropertyType(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property type fetched", pt, nil)
}

func (h *Handlers) CreatePropertyType(c *fiber.Ctx) error {
	body, ok := h.parseBody(c)
	if !ok {
		return nil
	}
	pt, err := h.Service.CreatePropertyType(c.Context(), EntryInput{Name: body.Name, Description: body.Description})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Property type created", pt, nil)
}

func (h *Handlers) UpdatePropertyType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	body, ok := h.parseBody(c)
	if !ok {
		return nil
	}
	pt, err := h.Service.UpdatePropertyType(c.Context(), id, EntryInput{Name: body.Name, Description: body.Description})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Property type updated", pt, nil)
}

func (h *Handlers) DeletePropertyType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	if err := h.Service.DeletePropertyType(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}

// ---- sales types ----

func (h *Handlers) ListSalesTypes(c *fiber.Ctx) error {
	out, err := h.Service.ListSalesTypes(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Sales types fetched", out, nil)
}

func (h *Handlers) GetSalesType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	st, err := h.Service.GetSalesType(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Sales type fetched", st, nil)
}

func (h *Handlers) CreateSalesType(c *fiber.Ctx) error {
	body, ok := h.parseBody(c)
	if !ok {
		return nil
	}
	st, err := h.Service.CreateSalesType(c.Context(), EntryInput{Name: body.Name, Description: body.Description})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Sales type created", st, nil)
}

func (h *Handlers) UpdateSalesType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	body, ok := h.parseBody(c)
	if !ok {
		return nil
	}
	st, err := h.Service.UpdateSalesType(c.Context(), id, EntryInput{Name: body.Name, Description: body.Description})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Sales type updated", st, nil)
}

func (h *Handlers) DeleteSalesType(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	if err := h.Service.DeleteSalesType(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}

// ---- features ----

func (h *Handlers) ListFeatures(c *fiber.Ctx) error {
	out, err := h.Service.ListFeatures(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Features fetched", out, nil)
}

func (h *Handlers) GetFeature(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	f, err := h.Service.GetFeature(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Feature fetched", f, nil)
}

func (h *Handlers) CreateFeature(c *fiber.Ctx) error {
	body, ok := h.parseBody(c)
	if !ok {
		return nil
	}
	f, err := h.Service.CreateFeature(c.Context(), EntryInput{Name: body.Name, Description: body.Description})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Feature created", f, nil)
}

func (h *Handlers) UpdateFeature(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	body, ok := h.parseBody(c)
	if !ok {
		return nil
	}
	f, err := h.Service.UpdateFeature(c.Context(), id, EntryInput{Name: body.Name, Description: body.Description})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Feature updated", f, nil)
}

func (h *Handlers) DeleteFeature(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid id", 400, nil)
	}
	if err := h.Service.DeleteFeature(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
