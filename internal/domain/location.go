package domain

type Country struct {
	ID   int64  `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Country) TableName() string {
	return "countries"
}

type City struct {
	ID        int64  `json:"id" db:"id" gorm:"primaryKey"`
	CountryID int64  `json:"-" db:"country_id" gorm:"not null;uniqueIndex:idx_country_city"`
	Name      string `json:"name" db:"name" gorm:"size:100;not null;uniqueIndex:idx_country_city"`

	Country *Country `json:"country,omitempty" db:"-" gorm:"foreignKey:CountryID"`
}

func (City) TableName() string {
	return "cities"
}
