package domain

// Vehicle attribute taxonomies. They are read-only for the advertisement
// repository and only serve as join targets and filter values.

type Engine struct {
	ID   int64  `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Engine) TableName() string {
	return "engines"
}

type Color struct {
	ID   int64  `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Color) TableName() string {
	return "colors"
}

type Make struct {
	ID   int64  `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Make) TableName() string {
	return "makes"
}

type CarModel struct {
	ID     int64  `json:"id" db:"id" gorm:"primaryKey"`
	MakeID int64  `json:"-" db:"make_id" gorm:"not null;uniqueIndex:idx_make_model"`
	Name   string `json:"name" db:"name" gorm:"size:100;not null;uniqueIndex:idx_make_model"`

	Make *Make `json:"make,omitempty" db:"-" gorm:"foreignKey:MakeID"`
}

func (CarModel) TableName() string {
	return "car_models"
}

type Condition struct {
	ID   int64  `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Condition) TableName() string {
	return "conditions"
}
