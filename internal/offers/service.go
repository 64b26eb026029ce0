package offers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inmobiliaria-backend/internal/domain"
	"inmobiliaria-backend/internal/pkg/apperr"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateOfferInput struct {
	PropertyID uint
	ClientID   string
	Amount     float64
}

// CreateOffer creates a pending offer dated now. If the client already has a
// pending or accepted offer on the property the call is a no-op and the
// existing offer is returned (no new row). Property state is not checked
// here, so offers can still be created against a sold property.
func (s *Service) CreateOffer(ctx context.Context, in CreateOfferInput) (*domain.Offer, bool, error) {
	if in.Amount <= 0 {
		return nil, false, apperr.Invalid("Offer amount must be greater than zero")
	}

	var property domain.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", in.PropertyID).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.NotFound("Property not found")
		}
		return nil, false, err
	}

	var existing domain.Offer
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND client_id = ? AND status IN ?", in.PropertyID, in.ClientID, []string{domain.OfferPending, domain.OfferAccepted}).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	offer := &domain.Offer{
		PropertyID: in.PropertyID,
		ClientID:   in.ClientID,
		Amount:     in.Amount,
		Date:       time.Now(),
		Status:     domain.OfferPending,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(offer).Error; err != nil {
			return err
		}
		return recordEvent(tx, offer.OfferID, domain.OfferEventCreated, &in.ClientID, map[string]interface{}{
			"property_id": in.PropertyID,
			"amount":      in.Amount,
		})
	})
	if err != nil {
		return nil, false, err
	}
	return offer, true, nil
}

// AcceptOffer transitions the target pending offer to accepted, rejects every
// other pending offer on the same property and flips the property to sold,
// recording the buyer. All writes run in one transaction; the property flip is
// a compare-and-set on state so two concurrent accepts cannot both win.
func (s *Service) AcceptOffer(ctx context.Context, offerID uint, actorAgentID string) (*domain.Offer, error) {
	var offer domain.Offer

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", offerID).First(&offer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Offer not found")
			}
			return err
		}
		if offer.Status != domain.OfferPending {
			return apperr.Conflict("Offer is not pending")
		}

		var property domain.Property
		if err := tx.Where("property_id = ?", offer.PropertyID).First(&property).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Property not found")
			}
			return err
		}
		if property.AgentID != actorAgentID {
			return apperr.Forbidden("Only the property's agent can decide its offers")
		}

		res := tx.Model(&domain.Property{}).
			Where("property_id = ? AND state = ?", property.PropertyID, domain.PropertyAvailable).
			Updates(map[string]interface{}{
				"state":           domain.PropertySold,
				"buyer_client_id": offer.ClientID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Property is no longer available")
		}

		offer.Status = domain.OfferAccepted
		if err := tx.Save(&offer).Error; err != nil {
			return err
		}
		if err := recordEvent(tx, offer.OfferID, domain.OfferEventAccepted, &actorAgentID, map[string]interface{}{
			"property_id": offer.PropertyID,
			"amount":      offer.Amount,
		}); err != nil {
			return err
		}

		var siblings []domain.Offer
		if err := tx.
			Where("property_id = ? AND offer_id <> ? AND status = ?", offer.PropertyID, offer.OfferID, domain.OfferPending).
			Find(&siblings).Error; err != nil {
			return err
		}
		for i := range siblings {
			siblings[i].Status = domain.OfferRejected
			if err := tx.Save(&siblings[i]).Error; err != nil {
				return err
			}
			if err := recordEvent(tx, siblings[i].OfferID, domain.OfferEventRejected, &actorAgentID, map[string]interface{}{
				"reason":            "another offer was accepted",
				"accepted_offer_id": offer.OfferID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// RejectOffer sets the target offer to rejected. The property and sibling
// offers are not touched.
func (s *Service) RejectOffer(ctx context.Context, offerID uint, actorAgentID string) (*domain.Offer, error) {
	var offer domain.Offer

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", offerID).First(&offer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Offer not found")
			}
			return err
		}
		if offer.Status != domain.OfferPending {
			return apperr.Conflict("Offer is not pending")
		}

		var property domain.Property
		if err := tx.Where("property_id = ?", offer.PropertyID).First(&property).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Property not found")
			}
			return err
		}
		if property.AgentID != actorAgentID {
			return apperr.Forbidden("Only the property's agent can decide its offers")
		}

		offer.Status = domain.OfferRejected
		if err := tx.Save(&offer).Error; err != nil {
			return err
		}
		return recordEvent(tx, offer.OfferID, domain.OfferEventRejected, &actorAgentID, map[string]interface{}{
			"property_id": offer.PropertyID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListByProperty returns every offer on the property, newest first. Only the
// property's own agent may read the full list.
func (s *Service) ListByProperty(ctx context.Context, propertyID uint, agentID string) ([]domain.Offer, error) {
	var property domain.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, err
	}
	if property.AgentID != agentID {
		return nil, apperr.Forbidden("Only the property's agent can view its offers")
	}

	var offers []domain.Offer
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("date DESC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// ListByClientAndProperty returns the client's offers on the property, newest first.
func (s *Service) ListByClientAndProperty(ctx context.Context, clientID string, propertyID uint) ([]domain.Offer, error) {
	var offers []domain.Offer
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND client_id = ?", propertyID, clientID).
		Order("date DESC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// ListEvents returns the audit trail for an offer, oldest first.
func (s *Service) ListEvents(ctx context.Context, offerID uint) ([]domain.OfferEvent, error) {
	var offer domain.Offer
	if err := s.DB.WithContext(ctx).Where("offer_id = ?", offerID).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Offer not found")
		}
		return nil, err
	}
	var events []domain.OfferEvent
	if err := s.DB.WithContext(ctx).
		Where("offer_id = ?", offerID).
		Order("event_id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func recordEvent(tx *gorm.DB, offerID uint, eventType string, actorID *string, data map[string]interface{}) error {
	payload, _ := json.Marshal(data)
	return tx.Create(&domain.OfferEvent{
		OfferID:     offerID,
		EventType:   eventType,
		ActorUserID: actorID,
		EventData:   datatypes.JSON(payload),
	}).Error
}
