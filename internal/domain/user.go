package domain

import "time"

type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CityID    int64     `json:"-" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex"`
	Phone     string    `json:"phone,omitempty" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	City *City `json:"city,omitempty" gorm:"foreignKey:CityID"`
}

func (User) TableName() string {
	return "users"
}
