package domain

import "time"

// Favorite marks a property saved by a client.
type Favorite struct {
	FavoriteID uint      `gorm:"column:favorite_id;primaryKey;autoIncrement" json:"favorite_id"`
	ClientID   string    `gorm:"column:client_id;type:uuid;not null;uniqueIndex:idx_fav_client_property" json:"client_id"`
	PropertyID uint      `gorm:"column:property_id;not null;uniqueIndex:idx_fav_client_property" json:"property_id"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "Favorites"
}
