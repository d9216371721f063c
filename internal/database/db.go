package database

import (
	"restopos-backend/internal/config"
	"restopos-backend/internal/logger"
	"restopos-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		logger.L().Fatal("auto migration failed", zap.Error(err))
	}

	logger.L().Info("database connected, migration complete")
}

// Migrate runs AutoMigrate for every model. Shared with the test helpers
// that run against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Dish{},
		&models.DishSize{},
		&models.DishVariant{},
		&models.OnlineOrder{},
		&models.FOCProduct{},
		&models.Order{},
		&models.OrderItem{},
		&models.CreditUser{},
		&models.CreditOrder{},
		&models.CreditTransaction{},
		&models.MessType{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Mess{},
		&models.MessTransaction{},
		&models.NatureGroup{},
		&models.MainGroup{},
		&models.Ledger{},
		&models.Transaction{},
		&models.Chair{},
		&models.ChairBooking{},
		&models.Coupon{},
		&models.CustomerDetails{},
		&models.Notification{},
		&models.DeliveryOrder{},
	)
}
