package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"automarket/internal/config"
	"automarket/internal/database"
	"automarket/internal/domain"
	"automarket/internal/logger"
	"automarket/internal/metrics"
	"automarket/internal/repository"
)

const sampleAdvertisements = 30

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: !cfg.IsProduction(),
	})
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db, log) }()

	log.Info("running migrations")
	if err := database.Migrate(db); err != nil {
		return err
	}

	log.Info("seeding reference data")
	if err := database.SeedReference(ctx, db); err != nil {
		return err
	}

	// sample listings are rebuilt on every run; reference rows are kept
	log.Info("cleaning old sample data")
	for _, table := range []string{"advertisement_favorites", "advertisement_media", "advertisements"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	refs, err := repository.NewReferenceRepository(db)
	if err != nil {
		return err
	}
	cities, err := refs.Cities(ctx, nil)
	if err != nil {
		return err
	}
	models, err := refs.CarModels(ctx, nil)
	if err != nil {
		return err
	}
	engines, err := refs.Engines(ctx)
	if err != nil {
		return err
	}
	colors, err := refs.Colors(ctx)
	if err != nil {
		return err
	}
	conditions, err := refs.Conditions(ctx)
	if err != nil {
		return err
	}

	log.Info("creating users")
	users, err := seedUsers(ctx, db, cities)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	ads := repository.NewAdvertisementRepository(db, log, metrics.New(cfg.MetricsNamespace, reg),
		repository.WithMediaBatchLimit(cfg.MediaBatchConcurrency))
	favs := repository.NewFavoriteRepository(db)

	log.Info("creating advertisements", zap.Int("count", sampleAdvertisements))
	for i := 0; i < sampleAdvertisements; i++ {
		model := models[rand.Intn(len(models))]
		ad, err := ads.Create(ctx, domain.AdvertisementInput{
			UserID:      users[rand.Intn(len(users))].ID,
			EngineID:    engines[rand.Intn(len(engines))].ID,
			ColorID:     colors[rand.Intn(len(colors))].ID,
			CarModelID:  model.ID,
			ConditionID: conditions[rand.Intn(len(conditions))].ID,
			Title:       fmt.Sprintf("%s, %d", model.Name, 2010+rand.Intn(15)),
			Description: "Serviced at an official dealer, no accidents",
			Price:       float64(5000 + rand.Intn(45000)),
			Year:        2010 + rand.Intn(15),
			Mileage:     rand.Intn(250000),
			Features:    datatypes.JSON(`{"air_conditioning":true,"abs":true}`),
		})
		if err != nil {
			return fmt.Errorf("create advertisement: %w", err)
		}

		photos := make([]domain.MediaInput, 1+rand.Intn(4))
		for j := range photos {
			photos[j] = domain.MediaInput{
				URL:   fmt.Sprintf("/static/ads/%s/%d.jpg", ad.ID, j+1),
				Order: j + 1,
				Main:  j == 0,
			}
		}
		if _, err := ads.AddMediaBatch(ctx, photos, ad.ID); err != nil {
			return fmt.Errorf("add media: %w", err)
		}

		if i%3 == 0 {
			fan := users[rand.Intn(len(users))]
			if _, err := favs.Add(ctx, fan.ID, ad.ID); err != nil {
				return fmt.Errorf("add favorite: %w", err)
			}
		}
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				log.Debug("repository operations", zap.String("metric", mf.GetName()),
					zap.Any("labels", m.GetLabel()), zap.Float64("value", c.GetValue()))
			}
		}
	}

	log.Info("seed completed",
		zap.Int("users", len(users)),
		zap.Int("advertisements", sampleAdvertisements),
	)
	return nil
}

// seedUsers upserts one sample seller per city, keyed by email.
func seedUsers(ctx context.Context, db *gorm.DB, cities []domain.City) ([]domain.User, error) {
	users := make([]domain.User, 0, len(cities))
	for i, city := range cities {
		u := domain.User{
			CityID: city.ID,
			Name:   fmt.Sprintf("Seller %d", i+1),
			Email:  fmt.Sprintf("seller%d@automarket.local", i+1),
			Phone:  fmt.Sprintf("+7 701 000 00%02d", i+1),
		}
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"city_id", "name", "phone", "updated_at"}),
		}).Create(&u).Error
		if err != nil {
			return nil, fmt.Errorf("upsert user %s: %w", u.Email, err)
		}
		// the returned id is unreliable after a conflict update on SQLite
		if err := db.WithContext(ctx).Where("email = ?", u.Email).First(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
