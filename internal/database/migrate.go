package database

import (
	"fmt"

	"coffeezone_backend/internal/config"
	"coffeezone_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect открывает соединение с Postgres по DSN из конфига
func Connect(cfg *config.Config) (*gorm.DB, error) {
	// TranslateError нужен, чтобы нарушения уникальных индексов
	// приходили как gorm.ErrDuplicatedKey независимо от драйвера
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}
	return db, nil
}

// AutoMigrate выполняет миграцию всех таблиц каталога
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CoffeeMachine{},
		&models.Fridge{},
		&models.Carcass{},
		&models.Terminal{},
		&models.CarcassColor{},
		&models.DesignColor{},
		&models.CarcassDesignCombination{},
		&models.Bundle{},
	)
}
