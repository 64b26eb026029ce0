package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/domain"
	"inmobiliaria-backend/internal/emails"
	"inmobiliaria-backend/internal/pkg/apperr"
	"inmobiliaria-backend/internal/pkg/token"
	"inmobiliaria-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type Service struct {
	DB          *gorm.DB
	Issuer      *token.Issuer
	Emails      emails.Sender
	FrontendURL string
}

type RegisterInput struct {
	UserName string
	Email    string
	Password string
	Fullname string
	Phone    string
}

// Register creates a client account pending email confirmation.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.UserName) == "" {
		return nil, apperr.Invalid("Username is required and must be a non-empty string")
	}
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, apperr.Invalid("Invalid email format")
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, apperr.Invalid("Invalid password format")
	}
	trimmed := strings.TrimSpace(in.Fullname)
	if trimmed == "" || !validation.IsValidFullname(trimmed) {
		return nil, apperr.Invalid("Full name is required (only letters, spaces, hyphens, and apostrophes allowed)")
	}

	userName := strings.TrimSpace(in.UserName)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Email already registered")
	}
	if err := s.DB.WithContext(ctx).Where("user_name = ?", userName).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Username already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
		Fullname:     trimmed,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         constants.Client,
		Active:       true,
		ConfirmToken: randomHex(32),
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}

	if s.Emails != nil {
		confirmLink := s.FrontendURL + "/confirm-email?token=" + u.ConfirmToken
		if err := s.Emails.SendAccountConfirmation(ctx, u.Email, firstName(u.Fullname), confirmLink); err != nil {
			log.Warn().Err(err).Str("email", u.Email).Msg("failed to send confirmation email")
		}
	}
	return u, nil
}

// ConfirmEmail confirms the account matching the token.
func (s *Service) ConfirmEmail(ctx context.Context, confirmToken string) error {
	if confirmToken == "" {
		return apperr.Invalid("Confirmation token is required")
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("confirm_token = ?", confirmToken).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Invalid("Invalid confirmation token")
		}
		return err
	}
	u.EmailConfirmed = true
	u.ConfirmToken = ""
	return s.DB.WithContext(ctx).Save(&u).Error
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login verifies credentials and issues a bearer token. Unconfirmed or
// deactivated accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperr.Invalid("Email and password are required")
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid Email")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Incorrect Password")
	}
	if !u.EmailConfirmed {
		return nil, apperr.Unauthorized("Account is not confirmed")
	}
	if !u.Active {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	signed, err := s.Issuer.Generate(u.UserID.String(), u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: signed, User: &u}, nil
}

// ForgotPassword stores a 1-hour reset token and emails the link. Unknown
// emails are a silent success so the endpoint does not leak registrations.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperr.Invalid("Email is required")
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	u.ResetToken = randomHex(32)
	expires := time.Now().Add(resetTokenTTL)
	u.ResetTokenExpiresAt = &expires
	if err := s.DB.WithContext(ctx).Save(&u).Error; err != nil {
		return err
	}

	if s.Emails != nil {
		resetLink := s.FrontendURL + "/reset-password?token=" + u.ResetToken
		if err := s.Emails.SendPasswordReset(ctx, u.Email, firstName(u.Fullname), resetLink); err != nil {
			log.Warn().Err(err).Str("email", u.Email).Msg("failed to send reset email")
		}
	}
	return nil
}

// ResetPassword sets a new password for the account matching a live reset token.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return apperr.Invalid("Reset token is required")
	}
	if newPassword == "" || !validation.IsValidPassword(newPassword) {
		return apperr.Invalid("Invalid password format")
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("reset_token = ?", resetToken).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Invalid("Invalid reset token")
		}
		return err
	}
	if u.ResetTokenExpiresAt == nil || u.ResetTokenExpiresAt.Before(time.Now()) {
		return apperr.Invalid("Reset token has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 10)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.ResetToken = ""
	u.ResetTokenExpiresAt = nil
	return s.DB.WithContext(ctx).Save(&u).Error
}

func firstName(fullname string) string {
	parts := strings.Fields(fullname)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
