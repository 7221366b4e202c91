package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"thaitravel/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection opens the postgres pool, verifies it with a ping and runs
// migrations plus role seeding.
func NewConnection(dsn string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), GormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := prepare(db, defaultSeedTimeout); err != nil {
		return nil, err
	}
	return db, nil
}

const defaultSeedTimeout = 10 * time.Second

// prepare migrates the schema and seeds roles, closing the pool if either
// step fails. Seeding gets its own deadline, started after migration.
func prepare(db *gorm.DB, seedTimeout time.Duration) error {
	err := migrateAndSeed(db, seedTimeout)
	if err != nil {
		_ = Close(db)
	}
	return err
}

func migrateAndSeed(db *gorm.DB, seedTimeout time.Duration) error {
	if err := Migrate(db); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	return SeedRoles(ctx, db)
}

// GormConfig routes gorm's own logging through slog and turns on driver
// error translation (gorm.ErrDuplicatedKey).
func GormConfig(logger *slog.Logger) *gorm.Config {
	if logger == nil {
		logger = slog.Default()
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.BaseProvinceTax{},
		&model.RegisteredProvinceTax{},
		&model.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate models: %w", err)
	}
	return nil
}

// SeedRoles inserts any missing model.DefaultRoles.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	for _, def := range model.DefaultRoles {
		role := def
		if err := db.WithContext(ctx).Where("name = ?", role.Name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %q: %w", role.Name, err)
		}
	}
	return nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
