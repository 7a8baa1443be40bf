package database

import (
	"fmt"

	"microjob_backend/internal/config"
	"microjob_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с URL из config.yaml.
// TranslateError нужен, чтобы нарушение уникальных индексов приходило
// как gorm.ErrDuplicatedKey, на этом держится apply-once.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SavedJob{},
		&models.Job{},
		&models.Application{},
		&models.Withdrawal{},
		&models.WalletTransaction{},
		&models.ChatThread{},
		&models.ChatMessage{},
		&models.Settings{},
	)
}
