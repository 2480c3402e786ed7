package database

import (
	"fmt"
	"time"

	"course-service/config"
	"course-service/models"
	"course-service/services"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ConnectDb opens the catalog database for cfg.DBDriver, sizes the pool and
// runs migrations.
func ConnectDb(cfg *config.Config, logger services.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	level := gormLogger.Warn
	if cfg.DBLogQueries {
		level = gormLogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger, time.Duration(cfg.DBSlowQueryMs)*time.Millisecond).LogMode(level),
		TranslateError: true,
		// courses may outlive their category, the integrity sweep reports them
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(0)

	if err := runMigrations(db, logger); err != nil {
		return nil, err
	}

	logger.Infof("[DATABASE] Connected to %s", cfg.DBDriver)
	return db, nil
}

// Close releases the pool behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB, logger services.Logger) error {
	logger.Infof("[DATABASE] Running migrations...")

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Course{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	filled, err := backfillSearchTitles(db)
	if err != nil {
		return fmt.Errorf("backfill search titles: %w", err)
	}
	if filled > 0 {
		logger.Infof("[DATABASE] Backfilled search titles on %d courses", filled)
	}

	logger.Infof("[DATABASE] Migrations completed successfully.")
	return nil
}

// backfillSearchTitles fills search_title on rows written before the column existed
func backfillSearchTitles(db *gorm.DB) (int64, error) {
	var filled int64
	var pending []models.Course
	err := db.Model(&models.Course{}).
		Select("id", "title").
		Where("search_title = ?", "").
		FindInBatches(&pending, 500, func(_ *gorm.DB, _ int) error {
			for _, course := range pending {
				res := db.Model(&models.Course{}).
					Where("id = ?", course.ID).
					UpdateColumn("search_title", models.SearchKey(course.Title))
				if res.Error != nil {
					return res.Error
				}
				filled += res.RowsAffected
			}
			return nil
		}).Error
	return filled, err
}
