package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Advertisement is a vehicle listing. Foreign-key columns are hidden from JSON;
// the related entities are exposed through their relation fields instead.
type Advertisement struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      int64          `json:"-" gorm:"not null;index"`
	EngineID    int64          `json:"-" gorm:"not null;index"`
	ColorID     int64          `json:"-" gorm:"not null;index"`
	CarModelID  int64          `json:"-" gorm:"not null;index"`
	ConditionID int64          `json:"-" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Year        int            `json:"year"`
	Mileage     int            `json:"mileage"`
	Features    datatypes.JSON `json:"features,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`

	User        *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Engine      *Engine    `json:"engine,omitempty" gorm:"foreignKey:EngineID"`
	Color       *Color     `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	CarModel    *CarModel  `json:"model,omitempty" gorm:"foreignKey:CarModelID"`
	Condition   *Condition `json:"condition,omitempty" gorm:"foreignKey:ConditionID"`
	Images      []Media    `json:"images,omitempty" gorm:"foreignKey:AdvertisementID"`
	FavoritedBy []User     `json:"favorited_by,omitempty" gorm:"many2many:advertisement_favorites;joinForeignKey:AdvertisementID;joinReferences:UserID"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}

func (a *Advertisement) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AdvertisementInput carries every caller-writable advertisement field.
type AdvertisementInput struct {
	UserID      int64          `json:"user_id"`
	EngineID    int64          `json:"engine_id"`
	ColorID     int64          `json:"color_id"`
	CarModelID  int64          `json:"model_id"`
	ConditionID int64          `json:"condition_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Year        int            `json:"year"`
	Mileage     int            `json:"mileage"`
	Features    datatypes.JSON `json:"features,omitempty"`
}

// NewAdvertisement builds an advertisement row with a fresh random identifier.
func NewAdvertisement(in AdvertisementInput) *Advertisement {
	return &Advertisement{
		ID:          uuid.New(),
		UserID:      in.UserID,
		EngineID:    in.EngineID,
		ColorID:     in.ColorID,
		CarModelID:  in.CarModelID,
		ConditionID: in.ConditionID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Year:        in.Year,
		Mileage:     in.Mileage,
		Features:    in.Features,
	}
}

// AdvertisementPatch is a partial update; nil fields are left untouched.
type AdvertisementPatch struct {
	UserID      *int64          `json:"user_id,omitempty"`
	EngineID    *int64          `json:"engine_id,omitempty"`
	ColorID     *int64          `json:"color_id,omitempty"`
	CarModelID  *int64          `json:"model_id,omitempty"`
	ConditionID *int64          `json:"condition_id,omitempty"`
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       *float64        `json:"price,omitempty"`
	Year        *int            `json:"year,omitempty"`
	Mileage     *int            `json:"mileage,omitempty"`
	Features    *datatypes.JSON `json:"features,omitempty"`
}

// Columns maps the set fields to their column names.
func (p AdvertisementPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.UserID != nil {
		cols["user_id"] = *p.UserID
	}
	if p.EngineID != nil {
		cols["engine_id"] = *p.EngineID
	}
	if p.ColorID != nil {
		cols["color_id"] = *p.ColorID
	}
	if p.CarModelID != nil {
		cols["car_model_id"] = *p.CarModelID
	}
	if p.ConditionID != nil {
		cols["condition_id"] = *p.ConditionID
	}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Year != nil {
		cols["year"] = *p.Year
	}
	if p.Mileage != nil {
		cols["mileage"] = *p.Mileage
	}
	if p.Features != nil {
		cols["features"] = *p.Features
	}
	return cols
}
