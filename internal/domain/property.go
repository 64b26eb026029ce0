package domain

import (
	"time"
)

// Property states.
const (
	PropertyAvailable = "available"
	PropertySold      = "sold"
)

// Property is a listing owned by an agent. State flips to sold only through
// the offer-acceptance workflow, which also records the buyer.
type Property struct {
	PropertyID     uint      `gorm:"column:property_id;primaryKey;autoIncrement" json:"property_id"`
	Code           string    `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Description    string    `gorm:"column:description;not null" json:"description"`
	Address        string    `gorm:"column:address;not null" json:"address"`
	Price          float64   `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	SquareMeters   float64   `gorm:"column:square_meters;type:decimal(18,2)" json:"square_meters"`
	Bedrooms       int       `gorm:"column:bedrooms;not null" json:"bedrooms"`
	Bathrooms      int       `gorm:"column:bathrooms;not null" json:"bathrooms"`
	State          string    `gorm:"column:state;type:varchar(20);not null;default:'available'" json:"state"`
	BuyerClientID  *string   `gorm:"column:buyer_client_id;type:uuid" json:"buyer_client_id"`
	AgentID        string    `gorm:"column:agent_id;type:uuid;not null;index" json:"agent_id"`
	PropertyTypeID uint      `gorm:"column:property_type_id;not null" json:"property_type_id"`
	SalesTypeID    uint      `gorm:"column:sales_type_id;not null" json:"sales_type_id"`
	Offers         []Offer   `gorm:"foreignKey:PropertyID;references:PropertyID" json:"offers,omitempty"`
	Features       []Feature `gorm:"many2many:PropertyFeatures;joinForeignKey:PropertyID;joinReferences:FeatureID" json:"features,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Property) TableName() string {
	return "Properties"
}
