package domain

import "time"

// PropertyType is reference data (apartment, house, ...).
type PropertyType struct {
	PropertyTypeID uint      `gorm:"column:property_type_id;primaryKey;autoIncrement" json:"property_type_id"`
	Name           string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description    string    `gorm:"column:description" json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (PropertyType) TableName() string {
	return "PropertyTypes"
}

// SalesType is reference data (sale, rent, ...).
type SalesType struct {
	SalesTypeID uint      `gorm:"column:sales_type_id;primaryKey;autoIncrement" json:"sales_type_id"`
	Name        string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (SalesType) TableName() string {
	return "SalesTypes"
}

// Feature is reference data attached to properties (pool, garage, ...).
type Feature struct {
	FeatureID   uint      `gorm:"column:feature_id;primaryKey;autoIncrement" json:"feature_id"`
	Name        string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Feature) TableName() string {
	return "Features"
}
