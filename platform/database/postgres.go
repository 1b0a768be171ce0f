package database

import (
	"fmt"
	"pipeline_monitor/config"
	"pipeline_monitor/pkg/logging"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps a read-only connection to the pipeline backend's database.
type DB struct {
	database *gorm.DB
}

func InitPostgres(cfg *config.Config) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=prefer TimeZone=UTC",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logging.Logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logging.Logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logging.Logger.Info("Connected to Postgres", "host", cfg.Host, "db", cfg.DBName)
	return &DB{database: db}, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.database.DB()
	if err != nil {
		logging.Logger.Error("failed to connect to database", "error", err)
		return err
	}
	return sqlDB.Close()
}

func (db *DB) GetDatabase() *gorm.DB {
	return db.database
}

func (db *DB) Ping() error {
	sqlDB, err := db.database.DB()
	if err != nil {
		logging.Logger.Error("failed to connect to database", "error", err)
		return err
	}
	return sqlDB.Ping()
}
