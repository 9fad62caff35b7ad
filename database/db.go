package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edims-backend/config"
)

// DB is the shared handle. Tests swap it for an in-memory database via Set.
var DB *gorm.DB

// Connect opens the Postgres connection described by cfg.
func Connect(cfg *config.Config) error {
	gormCfg := &gorm.Config{
		TranslateError: true,
	}
	if !cfg.IsDev() {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Set replaces the shared handle (used by tests).
func Set(db *gorm.DB) {
	DB = db
}
