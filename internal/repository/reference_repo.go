package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"automarket/internal/domain"
)

// ReferenceRepository reads the static taxonomies advertisements are filtered
// by. It shares gorm's connection pool.
type ReferenceRepository struct {
	db *sqlx.DB
}

func NewReferenceRepository(db *gorm.DB) (*ReferenceRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return &ReferenceRepository{db: sqlx.NewDb(sqlDB, db.Dialector.Name())}, nil
}

func (r *ReferenceRepository) Countries(ctx context.Context) ([]domain.Country, error) {
	return selectAll[domain.Country](ctx, r.db, `SELECT id, name FROM countries ORDER BY name`)
}

// Cities lists cities, optionally only those of one country.
func (r *ReferenceRepository) Cities(ctx context.Context, countryID *int64) ([]domain.City, error) {
	if countryID != nil {
		return selectAll[domain.City](ctx, r.db,
			`SELECT id, country_id, name FROM cities WHERE country_id = ? ORDER BY name`, *countryID)
	}
	return selectAll[domain.City](ctx, r.db, `SELECT id, country_id, name FROM cities ORDER BY name`)
}

func (r *ReferenceRepository) Makes(ctx context.Context) ([]domain.Make, error) {
	return selectAll[domain.Make](ctx, r.db, `SELECT id, name FROM makes ORDER BY name`)
}

// CarModels lists models, optionally only those of one make.
func (r *ReferenceRepository) CarModels(ctx context.Context, makeID *int64) ([]domain.CarModel, error) {
	if makeID != nil {
		return selectAll[domain.CarModel](ctx, r.db,
			`SELECT id, make_id, name FROM car_models WHERE make_id = ? ORDER BY name`, *makeID)
	}
	return selectAll[domain.CarModel](ctx, r.db, `SELECT id, make_id, name FROM car_models ORDER BY name`)
}

func (r *ReferenceRepository) Engines(ctx context.Context) ([]domain.Engine, error) {
	return selectAll[domain.Engine](ctx, r.db, `SELECT id, name FROM engines ORDER BY name`)
}

func (r *ReferenceRepository) Colors(ctx context.Context) ([]domain.Color, error) {
	return selectAll[domain.Color](ctx, r.db, `SELECT id, name FROM colors ORDER BY name`)
}

func (r *ReferenceRepository) Conditions(ctx context.Context) ([]domain.Condition, error) {
	return selectAll[domain.Condition](ctx, r.db, `SELECT id, name FROM conditions ORDER BY name`)
}

func selectAll[T any](ctx context.Context, db *sqlx.DB, query string, args ...any) ([]T, error) {
	out := make([]T, 0)
	if err := db.SelectContext(ctx, &out, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}
