package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"automarket/internal/domain"
)

var (
	seedLocations = []struct {
		country string
		cities  []string
	}{
		{"Kazakhstan", []string{"Almaty", "Astana", "Shymkent"}},
		{"Uzbekistan", []string{"Tashkent", "Samarkand"}},
		{"Kyrgyzstan", []string{"Bishkek"}},
	}

	seedMakes = []struct {
		make   string
		models []string
	}{
		{"Toyota", []string{"Camry", "Corolla", "Land Cruiser", "RAV4"}},
		{"Hyundai", []string{"Elantra", "Sonata", "Tucson"}},
		{"Kia", []string{"Rio", "Sportage"}},
		{"Volkswagen", []string{"Golf", "Passat"}},
		{"Lada", []string{"Granta", "Vesta"}},
	}

	seedEngines    = []string{"1.6 Petrol", "2.0 Petrol", "2.5 Petrol", "2.0 Diesel", "3.0 Diesel", "Hybrid", "Electric"}
	seedColors     = []string{"White", "Black", "Silver", "Grey", "Red", "Blue"}
	seedConditions = []string{"New", "Used", "Damaged"}
)

// SeedReference inserts the location and vehicle taxonomies. Existing rows are
// kept, so it is safe to run repeatedly.
func SeedReference(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, loc := range seedLocations {
			country := domain.Country{Name: loc.country}
			if err := tx.Where(domain.Country{Name: loc.country}).FirstOrCreate(&country).Error; err != nil {
				return fmt.Errorf("seed country %s: %w", loc.country, err)
			}
			for _, name := range loc.cities {
				city := domain.City{CountryID: country.ID, Name: name}
				if err := tx.Where(domain.City{CountryID: country.ID, Name: name}).FirstOrCreate(&city).Error; err != nil {
					return fmt.Errorf("seed city %s: %w", name, err)
				}
			}
		}

		for _, mk := range seedMakes {
			brand := domain.Make{Name: mk.make}
			if err := tx.Where(domain.Make{Name: mk.make}).FirstOrCreate(&brand).Error; err != nil {
				return fmt.Errorf("seed make %s: %w", mk.make, err)
			}
			for _, name := range mk.models {
				model := domain.CarModel{MakeID: brand.ID, Name: name}
				if err := tx.Where(domain.CarModel{MakeID: brand.ID, Name: name}).FirstOrCreate(&model).Error; err != nil {
					return fmt.Errorf("seed model %s: %w", name, err)
				}
			}
		}

		for _, name := range seedEngines {
			if err := tx.Where(domain.Engine{Name: name}).FirstOrCreate(&domain.Engine{Name: name}).Error; err != nil {
				return fmt.Errorf("seed engine %s: %w", name, err)
			}
		}
		for _, name := range seedColors {
			if err := tx.Where(domain.Color{Name: name}).FirstOrCreate(&domain.Color{Name: name}).Error; err != nil {
				return fmt.Errorf("seed color %s: %w", name, err)
			}
		}
		for _, name := range seedConditions {
			if err := tx.Where(domain.Condition{Name: name}).FirstOrCreate(&domain.Condition{Name: name}).Error; err != nil {
				return fmt.Errorf("seed condition %s: %w", name, err)
			}
		}
		return nil
	})
}
