package notifications

import (
	"fmt"

	"restopos-backend/internal/models"

	"gorm.io/gorm"
)

// NotifyOrderCreated emits the human-readable order summary shown on the
// back-office notification feed.
func NotifyOrderCreated(db *gorm.DB, order *models.Order) error {
	msg := fmt.Sprintf("New %s order #%s for %s placed", order.OrderType, order.InvoiceNumber, order.TotalAmount.StringFixed(2))
	orderID := order.ID
	return db.Create(&models.Notification{
		Message: msg,
		OrderID: &orderID,
	}).Error
}
