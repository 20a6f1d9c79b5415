package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"automarket/internal/config"
	"automarket/internal/domain"
	"automarket/internal/logger"
)

// Connect opens the store: PostgreSQL for postgres:// URLs, SQLite otherwise.
// The returned handle owns a connection pool; release it with Close.
func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var dialector gorm.Dialector
	if cfg.IsPostgres() {
		log.Info("connecting to PostgreSQL")
		dialector = postgres.Open(cfg.URL)
	} else {
		log.Info("using SQLite", zap.String("dsn", cfg.URL))
		dialector = gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        cfg.URL,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(log, gormlogger.Warn, cfg.SlowQueryThreshold, true),
		// media and favorites may outlive their advertisement; required
		// relations are enforced by inner joins at read time instead
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := db.SetupJoinTable(&domain.Advertisement{}, "FavoritedBy", &domain.Favorite{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("setup favorites join table: %w", err)
	}

	log.Info("database connection established",
		zap.String("dialect", db.Dialector.Name()),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)
	return db, nil
}

// Close releases the connection pool.
func Close(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	if log != nil {
		log.Info("database connection closed")
	}
	return nil
}

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Country{},
		&domain.City{},
		&domain.User{},
		&domain.Engine{},
		&domain.Color{},
		&domain.Make{},
		&domain.CarModel{},
		&domain.Condition{},
		&domain.Advertisement{},
		&domain.Media{},
		&domain.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
