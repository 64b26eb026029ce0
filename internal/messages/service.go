package messages

import (
	"context"
	"errors"
	"strings"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/domain"
	"inmobiliaria-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type SendInput struct {
	PropertyID uint
	SenderID   string
	SenderRole string
	// ClientID is only needed when an agent writes; clients always message
	// the property's listing agent.
	ClientID string
	Body     string
}

// Send records a message on a property thread. A thread is keyed by
// (property, client); the agent side is always the listing agent.
func (s *Service) Send(ctx context.Context, in SendInput) (*domain.Message, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, apperr.Invalid("Message body is required")
	}

	var property domain.Property
	if err := s.DB.WithContext(ctx).First(&property, in.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}

	msg := &domain.Message{
		PropertyID: in.PropertyID,
		AgentID:    property.AgentID,
		SenderID:   in.SenderID,
		Body:       strings.TrimSpace(in.Body),
	}

	switch in.SenderRole {
	case constants.Client:
		msg.ClientID = in.SenderID
	case constants.Agent:
		if property.AgentID != in.SenderID {
			return nil, apperr.Forbidden("Only the listing agent can reply on this property")
		}
		if in.ClientID == "" {
			return nil, apperr.Invalid("client_id is required when replying as an agent")
		}
		msg.ClientID = in.ClientID
	default:
		return nil, apperr.Forbidden("Only clients and agents can send messages")
	}

	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// ListThread returns the conversation for a property and client, oldest first.
func (s *Service) ListThread(ctx context.Context, propertyID uint, clientID string) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND client_id = ?", propertyID, clientID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListPropertyClients returns the distinct client ids that have messaged
// about a property, for the agent's inbox view.
func (s *Service) ListPropertyClients(ctx context.Context, propertyID uint) ([]string, error) {
	var property domain.Property
	if err := s.DB.WithContext(ctx).First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}

	var clientIDs []string
	if err := s.DB.WithContext(ctx).Model(&domain.Message{}).
		Distinct("client_id").
		Where("property_id = ?", propertyID).
		Pluck("client_id", &clientIDs).Error; err != nil {
		return nil, err
	}
	return clientIDs, nil
}
