package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"automarket/internal/config"
	"automarket/internal/database"
	"automarket/internal/domain"
)

// openTestDB returns a migrated in-memory store private to the test. A single
// connection keeps the shared-cache database alive and serializes writers.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(config.DatabaseConfig{
		URL:          fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db, nil) })
	require.NoError(t, database.Migrate(db))
	return db
}

// world is a minimal set of reference rows: two countries with one city each,
// two makes with one model each, and a user in every city.
type world struct {
	db *gorm.DB

	kazakhstan, uzbekistan domain.Country
	almaty, tashkent       domain.City
	alice, bob             domain.User
	petrol, diesel         domain.Engine
	white, black           domain.Color
	toyota, kia            domain.Make
	camry, rio             domain.CarModel
	used, brandNew         domain.Condition
}

func newWorld(t *testing.T, db *gorm.DB) *world {
	t.Helper()
	w := &world{db: db}

	w.kazakhstan = domain.Country{Name: "Kazakhstan"}
	w.uzbekistan = domain.Country{Name: "Uzbekistan"}
	mustCreate(t, db, &w.kazakhstan)
	mustCreate(t, db, &w.uzbekistan)

	w.almaty = domain.City{CountryID: w.kazakhstan.ID, Name: "Almaty"}
	w.tashkent = domain.City{CountryID: w.uzbekistan.ID, Name: "Tashkent"}
	mustCreate(t, db, &w.almaty)
	mustCreate(t, db, &w.tashkent)

	w.alice = domain.User{CityID: w.almaty.ID, Name: "Alice", Email: "alice@example.com"}
	w.bob = domain.User{CityID: w.tashkent.ID, Name: "Bob", Email: "bob@example.com"}
	mustCreate(t, db, &w.alice)
	mustCreate(t, db, &w.bob)

	w.petrol = domain.Engine{Name: "2.5 Petrol"}
	w.diesel = domain.Engine{Name: "2.0 Diesel"}
	mustCreate(t, db, &w.petrol)
	mustCreate(t, db, &w.diesel)

	w.white = domain.Color{Name: "White"}
	w.black = domain.Color{Name: "Black"}
	mustCreate(t, db, &w.white)
	mustCreate(t, db, &w.black)

	w.toyota = domain.Make{Name: "Toyota"}
	w.kia = domain.Make{Name: "Kia"}
	mustCreate(t, db, &w.toyota)
	mustCreate(t, db, &w.kia)

	w.camry = domain.CarModel{MakeID: w.toyota.ID, Name: "Camry"}
	w.rio = domain.CarModel{MakeID: w.kia.ID, Name: "Rio"}
	mustCreate(t, db, &w.camry)
	mustCreate(t, db, &w.rio)

	w.used = domain.Condition{Name: "Used"}
	w.brandNew = domain.Condition{Name: "New"}
	mustCreate(t, db, &w.used)
	mustCreate(t, db, &w.brandNew)

	return w
}

// camryInput is a complete advertisement by Alice in Almaty.
func (w *world) camryInput() domain.AdvertisementInput {
	return domain.AdvertisementInput{
		UserID:      w.alice.ID,
		EngineID:    w.petrol.ID,
		ColorID:     w.white.ID,
		CarModelID:  w.camry.ID,
		ConditionID: w.used.ID,
		Title:       "Toyota Camry 2019",
		Description: "One owner, full service history",
		Price:       18500,
		Year:        2019,
		Mileage:     64000,
		Features:    datatypes.JSON(`{"sunroof":true}`),
	}
}

// rioInput is a complete advertisement by Bob in Tashkent.
func (w *world) rioInput() domain.AdvertisementInput {
	return domain.AdvertisementInput{
		UserID:      w.bob.ID,
		EngineID:    w.diesel.ID,
		ColorID:     w.black.ID,
		CarModelID:  w.rio.ID,
		ConditionID: w.brandNew.ID,
		Title:       "Kia Rio",
		Price:       12000,
		Year:        2023,
	}
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
}

// failMediaURL makes every insert of a media row with the given URL fail
// before it reaches the store.
func failMediaURL(t *testing.T, db *gorm.DB, url string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_media", func(tx *gorm.DB) {
		if m, ok := tx.Statement.Dest.(*domain.Media); ok && m.ImageURL == url {
			_ = tx.AddError(fmt.Errorf("insert %s: rejected", url))
		}
	})
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
