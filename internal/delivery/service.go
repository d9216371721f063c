package delivery

import (
	"errors"

	"restopos-backend/internal/models"

	"gorm.io/gorm"
)

// EnsureOrder gets or creates the driver-workflow record for an order.
// At most one exists per order; repeated calls update the driver only.
func EnsureOrder(db *gorm.DB, orderID uint, driverID *uint) (*models.DeliveryOrder, error) {
	var rec models.DeliveryOrder
	err := db.Where("order_id = ?", orderID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.DeliveryOrder{
			OrderID:  orderID,
			DriverID: driverID,
			Status:   models.DeliveryStatusPending,
		}
		if err := db.Create(&rec).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}

	if driverID != nil {
		rec.DriverID = driverID
		if err := db.Save(&rec).Error; err != nil {
			return nil, err
		}
	}
	return &rec, nil
}
