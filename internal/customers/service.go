package customers

import (
	"restopos-backend/internal/models"

	"gorm.io/gorm"
)

// EnsureDetails caches customer contact info from an order, first seen
// wins. Online-delivery orders carry platform contact data, not the
// customer's own, so they never feed the cache.
func EnsureDetails(db *gorm.DB, order *models.Order) error {
	if order.OrderType == models.OrderTypeOnlineDelivery {
		return nil
	}
	if order.CustomerName == "" || order.CustomerPhoneNumber == "" || order.Address == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.CustomerDetails{}).
		Where("phone_number = ?", order.CustomerPhoneNumber).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&models.CustomerDetails{
		Name:        order.CustomerName,
		PhoneNumber: order.CustomerPhoneNumber,
		Address:     order.Address,
	}).Error
}
