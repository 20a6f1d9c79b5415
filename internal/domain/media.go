package domain

import (
	"time"

	"github.com/google/uuid"
)

// Media is an image attached to an advertisement. Order and IsMain are stored
// as given; nothing enforces a single main image per advertisement.
type Media struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AdvertisementID uuid.UUID `json:"advertisement_id" gorm:"type:uuid;not null;index"`
	ImageURL        string    `json:"image_url" gorm:"type:text;not null"`
	Order           int       `json:"order" gorm:"column:sort_order;not null"`
	IsMain          bool      `json:"main" gorm:"column:is_main;not null"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Media) TableName() string {
	return "advertisement_media"
}

// MediaInput is one item of a media payload.
type MediaInput struct {
	URL   string `json:"url"`
	Order int    `json:"order"`
	Main  bool   `json:"main"`
}
