package models

import "time"

// CustomerDetails is the keep-first cache of customer contact info,
// keyed by phone number. Records are only written the first time a
// complete set of details is seen on an order.
type CustomerDetails struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	PhoneNumber string    `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	Address     string    `gorm:"size:255;not null" json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	OrderID   *uint     `json:"order_id"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
