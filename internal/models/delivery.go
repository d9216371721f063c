package models

import "time"

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusAccepted  DeliveryStatus = "accepted"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// DeliveryOrder links a dining order to the driver workflow. At most one
// exists per order.
type DeliveryOrder struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	Order     Order          `gorm:"constraint:OnDelete:CASCADE" json:"order"`
	DriverID  *uint          `json:"driver_id"`
	Driver    *User          `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Status    DeliveryStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
