package properties

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"inmobiliaria-backend/internal/domain"
	"inmobiliaria-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreatePropertyInput struct {
	AgentID        string
	Description    string
	Address        string
	Price          float64
	SquareMeters   float64
	Bedrooms       int
	Bathrooms      int
	PropertyTypeID uint
	SalesTypeID    uint
	FeatureIDs     []uint
}

// CreateProperty creates an available property with a generated unique code.
func (s *Service) CreateProperty(ctx context.Context, in CreatePropertyInput) (*domain.Property, error) {
	if in.Price <= 0 {
		return nil, apperr.Invalid("Price must be greater than zero")
	}

	var ptype domain.PropertyType
	if err := s.DB.WithContext(ctx).Where("property_type_id = ?", in.PropertyTypeID).First(&ptype).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property type not found")
		}
		return nil, err
	}
	var stype domain.SalesType
	if err := s.DB.WithContext(ctx).Where("sales_type_id = ?", in.SalesTypeID).First(&stype).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sales type not found")
		}
		return nil, err
	}

	var features []domain.Feature
	if len(in.FeatureIDs) > 0 {
		if err := s.DB.WithContext(ctx).Where("feature_id IN ?", in.FeatureIDs).Find(&features).Error; err != nil {
			return nil, err
		}
		if len(features) != len(in.FeatureIDs) {
			return nil, apperr.NotFound("One or more features not found")
		}
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	property := &domain.Property{
		Code:           code,
		Description:    in.Description,
		Address:        in.Address,
		Price:          in.Price,
		SquareMeters:   in.SquareMeters,
		Bedrooms:       in.Bedrooms,
		Bathrooms:      in.Bathrooms,
		State:          domain.PropertyAvailable,
		AgentID:        in.AgentID,
		PropertyTypeID: in.PropertyTypeID,
		SalesTypeID:    in.SalesTypeID,
		Features:       features,
	}
	if err := s.DB.WithContext(ctx).Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

type UpdatePropertyInput struct {
	PropertyID     uint
	AgentID        string
	Description    *string
	Address        *string
	Price          *float64
	SquareMeters   *float64
	Bedrooms       *int
	Bathrooms      *int
	PropertyTypeID *uint
	SalesTypeID    *uint
}

// UpdateProperty updates the given fields; only the owning agent may edit.
func (s *Service) UpdateProperty(ctx context.Context, in UpdatePropertyInput) (*domain.Property, error) {
	var property domain.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", in.PropertyID).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}
	if property.AgentID != in.AgentID {
		return nil, apperr.Forbidden("Unauthorized property edit")
	}

	updates := map[string]interface{}{}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperr.Invalid("Invalid price")
		}
		updates["price"] = *in.Price
	}
	if in.SquareMeters != nil {
		updates["square_meters"] = *in.SquareMeters
	}
	if in.Bedrooms != nil {
		updates["bedrooms"] = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		updates["bathrooms"] = *in.Bathrooms
	}
	if in.PropertyTypeID != nil {
		var ptype domain.PropertyType
		if err := s.DB.WithContext(ctx).Where("property_type_id = ?", *in.PropertyTypeID).First(&ptype).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Property type not found")
			}
			return nil, err
		}
		updates["property_type_id"] = *in.PropertyTypeID
	}
	if in.SalesTypeID != nil {
		var stype domain.SalesType
		if err := s.DB.WithContext(ctx).Where("sales_type_id = ?", *in.SalesTypeID).First(&stype).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Sales type not found")
			}
			return nil, err
		}
		updates["sales_type_id"] = *in.SalesTypeID
	}
	if len(updates) == 0 {
		return nil, apperr.Invalid("No valid changes provided")
	}

	if err := s.DB.WithContext(ctx).Model(&property).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.DB.WithContext(ctx).Where("property_id = ?", in.PropertyID).First(&property)
	return &property, nil
}

// DeleteProperty removes a property and its dependent rows; owner only.
func (s *Service) DeleteProperty(ctx context.Context, propertyID uint, agentID string) error {
	var property domain.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Property not found")
		}
		return err
	}
	if property.AgentID != agentID {
		return apperr.Forbidden("Unauthorized property delete")
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offerIDs []uint
		if err := tx.Model(&domain.Offer{}).Where("property_id = ?", propertyID).Pluck("offer_id", &offerIDs).Error; err != nil {
			return err
		}
		if len(offerIDs) > 0 {
			if err := tx.Where("offer_id IN ?", offerIDs).Delete(&domain.OfferEvent{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("property_id = ?", propertyID).Delete(&domain.Offer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", propertyID).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", propertyID).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&property).Association("Features").Clear(); err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
}

// GetByID returns a property with its features.
func (s *Service) GetByID(ctx context.Context, propertyID uint) (*domain.Property, error) {
	var property domain.Property
	if err := s.DB.WithContext(ctx).Preload("Features").Where("property_id = ?", propertyID).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}
	return &property, nil
}

// GetByCode looks a property up by its business key.
func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Property, error) {
	if code == "" {
		return nil, apperr.Invalid("Property code is required")
	}
	var property domain.Property
	if err := s.DB.WithContext(ctx).Preload("Features").Where("code = ?", code).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}
	return &property, nil
}

// ListAvailable returns available properties, newest first.
func (s *Service) ListAvailable(ctx context.Context) ([]domain.Property, error) {
	var properties []domain.Property
	if err := s.DB.WithContext(ctx).
		Preload("Features").
		Where("state = ?", domain.PropertyAvailable).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// ListByAgent returns every property of an agent, newest first.
func (s *Service) ListByAgent(ctx context.Context, agentID string) ([]domain.Property, error) {
	var properties []domain.Property
	if err := s.DB.WithContext(ctx).
		Preload("Features").
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// uniqueCode draws 6-digit codes until one is free.
func (s *Service) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%06d", n.Int64())
		var count int64
		if err := s.DB.WithContext(ctx).Model(&domain.Property{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique property code")
}
