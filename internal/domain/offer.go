package domain

import (
	"time"
)

// Offer statuses.
const (
	OfferPending  = "pending"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
)

// Offer is a client's monetary bid on a property.
type Offer struct {
	OfferID    uint      `gorm:"column:offer_id;primaryKey;autoIncrement" json:"offer_id"`
	PropertyID uint      `gorm:"column:property_id;not null;index" json:"property_id"`
	ClientID   string    `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	Amount     float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Date       time.Time `gorm:"column:date;not null" json:"date"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Offer) TableName() string {
	return "Offers"
}
