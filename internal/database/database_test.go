package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"automarket/internal/config"
	"automarket/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(config.DatabaseConfig{
		URL:          fmt.Sprintf("file:database_test_%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db, nil) })
	return db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestMigrateCreatesTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"countries", "cities", "users", "engines", "colors", "makes", "car_models",
		"conditions", "advertisements", "advertisement_media", "advertisement_favorites",
	} {
		assert.True(t, db.Migrator().HasTable(table), "table %s", table)
	}
	assert.True(t, db.Migrator().HasColumn(&domain.Favorite{}, "created_at"))
	assert.True(t, db.Migrator().HasColumn(&domain.Media{}, "sort_order"))

	// running twice is harmless
	require.NoError(t, Migrate(db))
}

func TestSeedReferenceIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	ctx := context.Background()

	require.NoError(t, SeedReference(ctx, db))
	first := map[string]int64{
		"countries":  countRows(t, db, &domain.Country{}),
		"cities":     countRows(t, db, &domain.City{}),
		"makes":      countRows(t, db, &domain.Make{}),
		"car_models": countRows(t, db, &domain.CarModel{}),
		"engines":    countRows(t, db, &domain.Engine{}),
		"colors":     countRows(t, db, &domain.Color{}),
		"conditions": countRows(t, db, &domain.Condition{}),
	}
	assert.Equal(t, int64(3), first["countries"])
	assert.Equal(t, int64(6), first["cities"])
	assert.Equal(t, int64(5), first["makes"])
	assert.Equal(t, int64(13), first["car_models"])
	assert.Equal(t, int64(3), first["conditions"])

	require.NoError(t, SeedReference(ctx, db))
	assert.Equal(t, first["cities"], countRows(t, db, &domain.City{}))
	assert.Equal(t, first["car_models"], countRows(t, db, &domain.CarModel{}))
	assert.Equal(t, first["engines"], countRows(t, db, &domain.Engine{}))

	var camry domain.CarModel
	require.NoError(t, db.Preload("Make").Where("name = ?", "Camry").First(&camry).Error)
	assert.Equal(t, "Toyota", camry.Make.Name)
}

func TestConnectFailsOnUnreachableStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "dir", "ads.db")

	_, err := Connect(config.DatabaseConfig{URL: dsn, MaxOpenConns: 1}, nil)
	assert.Error(t, err)
}

func TestCloseReleasesPool(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{
		URL:          "file:database_test_close?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, Close(db, nil))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}
