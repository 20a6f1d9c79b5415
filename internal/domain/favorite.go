package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to an advertisement they saved. The same rows back
// Advertisement.FavoritedBy.
type Favorite struct {
	AdvertisementID uuid.UUID `json:"advertisement_id" gorm:"type:uuid;primaryKey"`
	UserID          int64     `json:"user_id" gorm:"primaryKey;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	Advertisement *Advertisement `json:"advertisement,omitempty" gorm:"foreignKey:AdvertisementID"`
}

func (Favorite) TableName() string {
	return "advertisement_favorites"
}
