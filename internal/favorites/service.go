package favorites

import (
	"context"
	"errors"

	"inmobiliaria-backend/internal/domain"
	"inmobiliaria-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Add marks a property as a favorite for the client. Adding a favorite
// twice is a no-op and returns the existing row.
func (s *Service) Add(ctx context.Context, clientID string, propertyID uint) (*domain.Favorite, error) {
	var property domain.Property
	if err := s.DB.WithContext(ctx).First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}

	var existing domain.Favorite
	err := s.DB.WithContext(ctx).
		Where("client_id = ? AND property_id = ?", clientID, propertyID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fav := &domain.Favorite{ClientID: clientID, PropertyID: propertyID}
	if err := s.DB.WithContext(ctx).Create(fav).Error; err != nil {
		return nil, err
	}
	return fav, nil
}

// Remove deletes a favorite.
func (s *Service) Remove(ctx context.Context, clientID string, propertyID uint) error {
	res := s.DB.WithContext(ctx).
		Where("client_id = ? AND property_id = ?", clientID, propertyID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Favorite not found")
	}
	return nil
}

// List returns the client's favorite properties, most recently saved first.
func (s *Service) List(ctx context.Context, clientID string) ([]domain.Property, error) {
	var favs []domain.Favorite
	if err := s.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return []domain.Property{}, nil
	}

	ids := make([]uint, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.PropertyID)
	}

	var props []domain.Property
	if err := s.DB.WithContext(ctx).
		Preload("Features").
		Where("property_id IN ?", ids).
		Find(&props).Error; err != nil {
		return nil, err
	}

	// Keep the saved order.
	byID := make(map[uint]domain.Property, len(props))
	for _, p := range props {
		byID[p.PropertyID] = p
	}
	ordered := make([]domain.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
