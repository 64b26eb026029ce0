package users

import (
	"inmobiliaria-backend/internal/pkg/response"
	"inmobiliaria-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

type createUserRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required"`
}

// POST /api/v1/users/create-user
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var body createUserRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "user_name, email, password, fullname and role are required", 400, nil)
	}

	user, err := h.Service.CreateUser(c.Context(), CreateUserInput{
		UserName: body.UserName,
		Email:    body.Email,
		Password: body.Password,
		Fullname: body.Fullname,
		Phone:    body.Phone,
		Role:     body.Role,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "User created successfully", user, nil)
}

// GET /api/v1/users/view-user/:id
func (h *Handlers) ViewUser(c *fiber.Ctx) error {
	user, err := h.Service.ViewUser(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "User fetched", user, nil)
}

// GET /api/v1/users/agents
func (h *Handlers) ListAgents(c *fiber.Ctx) error {
	agents, err := h.Service.ListAgents(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Agents fetched", agents, nil)
}

// GET /api/v1/users/agents/:id
func (h *Handlers) GetAgent(c *fiber.Ctx) error {
	status, err := h.Service.GetAgent(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Agent fetched", status, nil)
}

type changeStatusRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Active *bool  `json:"active" validate:"required"`
}

// PATCH /api/v1/users/change-status
func (h *Handlers) ChangeStatus(c *fiber.Ctx) error {
	var body changeStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "user_id and active are required", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "user_id and active are required", 400, nil)
	}

	user, err := h.Service.ChangeActiveStatus(c.Context(), body.UserID, *body.Active)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "User status updated", user, nil)
}
