package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MessTypeName string

const (
	MessTypeFullBoard       MessTypeName = "breakfast_lunch_dinner"
	MessTypeBreakfastLunch  MessTypeName = "breakfast_lunch"
	MessTypeBreakfastDinner MessTypeName = "breakfast_dinner"
	MessTypeLunchDinner     MessTypeName = "lunch_dinner"
)

type MessType struct {
	ID   uint         `gorm:"primaryKey" json:"id"`
	Name MessTypeName `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Menu is one day's plan inside a weekly mess package. SubTotal is derived
// from the menu items' dish prices and recomputed whenever an item changes.
type Menu struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:255;not null;index" json:"name"`
	DayOfWeek  DayOfWeek       `gorm:"size:9" json:"day_of_week"`
	SubTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"sub_total"`
	IsCustom   bool            `gorm:"not null;default:false" json:"is_custom"`
	MessTypeID *uint           `gorm:"index" json:"mess_type_id"`
	MessType   *MessType       `gorm:"foreignKey:MessTypeID" json:"mess_type,omitempty"`
	CreatedBy  string          `gorm:"size:255;default:'admin'" json:"created_by"`
	Items      []MenuItem      `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

type MenuItem struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	MenuID   uint     `gorm:"index;not null" json:"menu_id"`
	DishID   uint     `gorm:"index;not null" json:"dish_id"`
	Dish     Dish     `gorm:"foreignKey:DishID" json:"dish"`
	MealType MealType `gorm:"size:20" json:"meal_type"`
}

// Mess is a weekly meal subscription. TotalAmount is derived: the sum of the
// selected menus' sub totals times the number of full 7-day weeks between
// start and end date.
type Mess struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CustomerName   string          `gorm:"size:50;uniqueIndex;not null" json:"customer_name"`
	MobileNumber   string          `gorm:"size:15;uniqueIndex;not null" json:"mobile_number"`
	StartDate      time.Time       `gorm:"not null" json:"start_date"`
	EndDate        time.Time       `gorm:"not null" json:"end_date"`
	MessTypeID     uint            `gorm:"index;not null" json:"mess_type_id"`
	MessType       MessType        `gorm:"foreignKey:MessTypeID" json:"mess_type"`
	PaymentMethod  PaymentMethod   `gorm:"size:20;not null;default:'cash'" json:"payment_method"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"paid_amount"`
	PendingAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"pending_amount"`
	CashAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"cash_amount"`
	BankAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"bank_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"grand_total"`

	// One-shot guard: exactly one bootstrap transaction per mess.
	InitialTransactionCreated bool `gorm:"not null;default:false" json:"initial_transaction_created"`

	Menus        []Menu            `gorm:"many2many:mess_menus" json:"menus"`
	Transactions []MessTransaction `gorm:"foreignKey:MessID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// MessTransaction records one payment against a mess subscription.
type MessTransaction struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Date           time.Time         `gorm:"index" json:"date"`
	ReceivedAmount decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"received_amount"`
	CashAmount     decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"cash_amount"`
	BankAmount     decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"bank_amount"`
	PaymentMethod  PaymentMethod     `gorm:"size:20;not null;default:'cash'" json:"payment_method"`
	Status         TransactionStatus `gorm:"size:10;not null" json:"status"`
	MessID         uint              `gorm:"index;not null" json:"mess_id"`
	CreatedAt      time.Time         `json:"created_at"`
}
