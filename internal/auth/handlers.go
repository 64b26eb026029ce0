package auth

import (
	"inmobiliaria-backend/internal/pkg/response"
	"inmobiliaria-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

type registerRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
	Phone    string `json:"phone"`
}

// POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "user_name, email, password and fullname are required", 400, nil)
	}

	user, err := h.Service.Register(c.Context(), RegisterInput{
		UserName: body.UserName,
		Email:    body.Email,
		Password: body.Password,
		Fullname: body.Fullname,
		Phone:    body.Phone,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Account created, confirmation email sent", user, nil)
}

// GET /api/v1/auth/confirm-email?token=
func (h *Handlers) ConfirmEmail(c *fiber.Ctx) error {
	if err := h.Service.ConfirmEmail(c.Context(), c.Query("token")); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Account confirmed", nil, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Email and password are required", 400, nil)
	}
	if body.Email == "" || body.Password == "" {
		return response.Error(c, "Email and password are required", 400, nil)
	}

	result, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Login successful", result, nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /api/v1/auth/forgot-password
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	var body forgotPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Email is required", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "Email is required", 400, nil)
	}
	if err := h.Service.ForgotPassword(c.Context(), body.Email); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "If the email is registered, a reset link has been sent", nil, nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/v1/auth/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var body resetPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "token and password are required", 400, nil)
	}
	if err := validation.Struct(&body); err != nil {
		return response.Error(c, "token and password are required", 400, nil)
	}
	if err := h.Service.ResetPassword(c.Context(), body.Token, body.Password); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Password updated", nil, nil)
}
