package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chair is a rentable seat, optionally tied to the order it was billed on.
type Chair struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ChairName    string          `gorm:"size:100;not null" json:"chair_name"`
	CustomerName string          `gorm:"size:100" json:"customer_name"`
	CustomerMob  string          `gorm:"size:15" json:"customer_mob"`
	StartTime    *time.Time      `json:"start_time"`
	EndTime      *time.Time      `json:"end_time"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	BookedDate   time.Time       `json:"booked_date"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	OrderID      *uint           `gorm:"index" json:"order_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ChairBooking reserves a chair for a time range. No two confirmed bookings
// for the same chair may overlap.
type ChairBooking struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ChairID      uint            `gorm:"index;not null" json:"chair_id"`
	Chair        Chair           `gorm:"foreignKey:ChairID" json:"chair"`
	CustomerName string          `gorm:"size:100;not null" json:"customer_name"`
	CustomerMob  string          `gorm:"size:15;not null" json:"customer_mob"`
	BookedDate   time.Time       `gorm:"index" json:"booked_date"`
	StartTime    time.Time       `gorm:"not null" json:"start_time"`
	EndTime      time.Time       `gorm:"not null" json:"end_time"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status       BookingStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
