package users

import (
	"context"
	"errors"
	"strings"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/domain"
	"inmobiliaria-backend/internal/pkg/apperr"
	"inmobiliaria-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service holds DB and Redis for user administration.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

type CreateUserInput struct {
	UserName string
	Email    string
	Password string
	Fullname string
	Phone    string
	Role     string
}

// CreateUser creates an agent, admin or developer account. Accounts created
// by an admin are pre-confirmed.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	switch in.Role {
	case constants.Agent, constants.Admin, constants.Developer:
	default:
		return nil, apperr.Invalid("Role must be agent, admin or developer")
	}
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
		UserName:       userName,
		Email:          email,
		PasswordHash:   string(hash),
		Fullname:       trimmed,
		Phone:          strings.TrimSpace(in.Phone),
		Role:           in.Role,
		Active:         true,
		EmailConfirmed: true,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// ViewUser returns a user by id.
func (s *Service) ViewUser(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperr.Invalid("Invalid user ID format (must be a valid UUID)")
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return &u, nil
}

// ListAgents returns active agents.
func (s *Service) ListAgents(ctx context.Context) ([]domain.User, error) {
	var agents []domain.User
	if err := s.DB.WithContext(ctx).
		Where("role = ? AND active = ?", constants.Agent, true).
		Order("fullname ASC").
		Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

// AgentStatus is an agent with their current property count.
type AgentStatus struct {
	Agent         domain.User `json:"agent"`
	PropertyCount int64       `json:"property_count"`
}

// GetAgent returns an agent and how many properties they list.
func (s *Service) GetAgent(ctx context.Context, agentID string) (*AgentStatus, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ? AND role = ?", agentID, constants.Agent).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Agent not found")
		}
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Property{}).Where("agent_id = ?", agentID).Count(&count).Error; err != nil {
		return nil, err
	}
	return &AgentStatus{Agent: u, PropertyCount: count}, nil
}

// ChangeActiveStatus flips a user's active flag. Deactivation puts the user
// on the Redis denylist so outstanding bearer tokens stop working at once;
// activation removes the entry.
func (s *Service) ChangeActiveStatus(ctx context.Context, userID string, active bool) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	u.Active = active
	if err := s.DB.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, err
	}

	if s.Rdb != nil {
		key := constants.DisabledUserKey(userID)
		if active {
			_ = s.Rdb.Del(ctx, key).Err()
		} else {
			_ = s.Rdb.Set(ctx, key, "1", 0).Err()
		}
	}
	return &u, nil
}
