package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Offer event types.
const (
	OfferEventCreated  = "CREATED"
	OfferEventAccepted = "ACCEPTED"
	OfferEventRejected = "REJECTED"
)

// OfferEvent is the audit trail of an offer's lifecycle transitions.
type OfferEvent struct {
	EventID     uint           `gorm:"column:event_id;primaryKey;autoIncrement" json:"event_id"`
	OfferID     uint           `gorm:"column:offer_id;not null;index" json:"offer_id"`
	EventType   string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	ActorUserID *string        `gorm:"column:actor_user_id;type:uuid" json:"actor_user_id"`
	EventData   datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (OfferEvent) TableName() string {
	return "OfferEvents"
}
