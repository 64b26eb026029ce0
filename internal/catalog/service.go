package catalog

import (
	"context"
	"errors"
	"strings"

	"inmobiliaria-backend/internal/domain"
	"inmobiliaria-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

// Service manages the reference catalogs: property types, sales types and
// features.
type Service struct {
	DB *gorm.DB
}

type EntryInput struct {
	Name        string
	Description string
}

func normalize(in EntryInput) (EntryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return in, apperr.Invalid("Name is required")
	}
	return in, nil
}

// ---- property types ----

func (s *Service) ListPropertyTypes(ctx context.Context) ([]domain.PropertyType, error) {
	var out []domain.PropertyType
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetPropertyType(ctx context.Context, id uint) (*domain.PropertyType, error) {
	var pt domain.PropertyType
	if err := s.DB.WithContext(ctx).First(&pt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property type not found")
		}
		return nil, err
	}
	return &pt, nil
}

func (s *Service) CreatePropertyType(ctx context.Context, in EntryInput) (*domain.PropertyType, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var existing domain.PropertyType
	if err := s.DB.WithContext(ctx).Where("name = ?", in.Name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Property type already exists")
	}
	pt := &domain.PropertyType{Name: in.Name, Description: in.Description}
	if err := s.DB.WithContext(ctx).Create(pt).Error; err != nil {
		return nil, err
	}
	return pt, nil
}

func (s *Service) UpdatePropertyType(ctx context.Context, id uint, in EntryInput) (*domain.PropertyType, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	pt, err := s.GetPropertyType(ctx, id)
	if err != nil {
		return nil, err
	}
	var dup domain.PropertyType
	if err := s.DB.WithContext(ctx).
		Where("name = ? AND property_type_id <> ?", in.Name, id).
		First(&dup).Error; err == nil {
		return nil, apperr.Conflict("Property type already exists")
	}
	pt.Name = in.Name
	pt.Description = in.Description
	if err := s.DB.WithContext(ctx).Save(pt).Error; err != nil {
		return nil, err
	}
	return pt, nil
}

func (s *Service) DeletePropertyType(ctx context.Context, id uint) error {
	if _, err := s.GetPropertyType(ctx, id); err != nil {
		return err
	}
	var inUse int64
	if err := s.DB.WithContext(ctx).Model(&domain.Property{}).
		Where("property_type_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.Conflict("Property type is in use by existing properties")
	}
	return s.DB.WithContext(ctx).Delete(&domain.PropertyType{}, id).Error
}

// ---- sales types ----

func (s *Service) ListSalesTypes(ctx context.Context) ([]domain.SalesType, error) {
	var out []domain.SalesType
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetSalesType(ctx context.Context, id uint) (*domain.SalesType, error) {
	var st domain.SalesType
	if err := s.DB.WithContext(ctx).First(&st, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sales type not found")
		}
		return nil, err
	}
	return &st, nil
}

func (s *Service) CreateSalesType(ctx context.Context, in EntryInput) (*domain.SalesType, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var existing domain.SalesType
	if err := s.DB.WithContext(ctx).Where("name = ?", in.Name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Sales type already exists")
	}
	st := &domain.SalesType{Name: in.Name, Description: in.Description}
	if err := s.DB.WithContext(ctx).Create(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) UpdateSalesType(ctx context.Context, id uint, in EntryInput) (*domain.SalesType, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	st, err := s.GetSalesType(ctx, id)
	if err != nil {
		return nil, err
	}
	var dup domain.SalesType
	if err := s.DB.WithContext(ctx).
		Where("name = ? AND sales_type_id <> ?", in.Name, id).
		First(&dup).Error; err == nil {
		return nil, apperr.Conflict("Sales type already exists")
	}
	st.Name = in.Name
	st.Description = in.Description
	if err := s.DB.WithContext(ctx).Save(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) DeleteSalesType(ctx context.Context, id uint) error {
	if _, err := s.GetSalesType(ctx, id); err != nil {
		return err
	}
	var inUse int64
	if err := s.DB.WithContext(ctx).Model(&domain.Property{}).
		Where("sales_type_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.Conflict("Sales type is in use by existing properties")
	}
	return s.DB.WithContext(ctx).Delete(&domain.SalesType{}, id).Error
}

// ---- features ----

func (s *Service) ListFeatures(ctx context.Context) ([]domain.Feature, error) {
	var out []domain.Feature
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetFeature(ctx context.Context, id uint) (*domain.Feature, error) {
	var f domain.Feature
	if err := s.DB.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Feature not found")
		}
		return nil, err
	}
	return &f, nil
}

func (s *Service) CreateFeature(ctx context.Context, in EntryInput) (*domain.Feature, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var existing domain.Feature
	if err := s.DB.WithContext(ctx).Where("name = ?", in.Name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Feature already exists")
	}
	f := &domain.Feature{Name: in.Name, Description: in.Description}
	if err := s.DB.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) UpdateFeature(ctx context.Context, id uint, in EntryInput) (*domain.Feature, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	f, err := s.GetFeature(ctx, id)
	if err != nil {
		return nil, err
	}
	var dup domain.Feature
	if err := s.DB.WithContext(ctx).
		Where("name = ? AND feature_id <> ?", in.Name, id).
		First(&dup).Error; err == nil {
		return nil, apperr.Conflict("Feature already exists")
	}
	f.Name = in.Name
	f.Description = in.Description
	if err := s.DB.WithContext(ctx).Save(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) DeleteFeature(ctx context.Context, id uint) error {
	if _, err := s.GetFeature(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Detach from any properties before removing the feature itself.
		if err := tx.Exec(`DELETE FROM "property_features" WHERE feature_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Feature{}, id).Error
	})
}
