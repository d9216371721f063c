package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusDelivered OrderStatus = "delivered"
)

type OrderType string

const (
	OrderTypeTakeaway       OrderType = "takeaway"
	OrderTypeDining         OrderType = "dining"
	OrderTypeDelivery       OrderType = "delivery"
	OrderTypeOnlineDelivery OrderType = "onlinedelivery"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentBank     PaymentMethod = "bank"
	PaymentCashBank PaymentMethod = "cash-bank"
	PaymentCredit   PaymentMethod = "credit"
	PaymentTalabat  PaymentMethod = "talabat"
	PaymentSnoonu   PaymentMethod = "snoonu"
	PaymentRafeeq   PaymentMethod = "rafeeq"
)

// Order owns its items. TotalAmount is derived: sum of item price*qty plus
// delivery charge plus chair amount, recomputed on every item or surcharge
// change, never taken from the client.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status        OrderStatus     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	OrderType     OrderType       `gorm:"size:20;not null;default:'dining';index" json:"order_type"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null;default:'cash'" json:"payment_method"`
	CashAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"cash_amount"`
	BankAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"bank_amount"`
	CreditAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"credit_amount"`

	// Zero-padded from the storage id, assigned once on first save.
	InvoiceNumber string `gorm:"size:20;index" json:"invoice_number"`

	CustomerName        string          `gorm:"size:100" json:"customer_name"`
	Address             string          `gorm:"size:500" json:"address"`
	CustomerPhoneNumber string          `gorm:"size:15;index" json:"customer_phone_number"`
	DeliveryCharge      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"delivery_charge"`
	DeliveryDriverID    *uint           `json:"delivery_driver_id"` // reference into the delivery collaborator
	CreditUserID        *uint           `json:"credit_user_id"`
	KitchenNote         string          `gorm:"size:500" json:"kitchen_note"`
	OnlineOrderID       *uint           `json:"online_order_id"`
	OnlineOrder         *OnlineOrder    `gorm:"foreignKey:OnlineOrderID" json:"online_order,omitempty"`
	ChairAmount         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"chair_amount"`
	ChairDetails        string          `gorm:"type:jsonb;default:'[]'" json:"chair_details"` // JSON list of chair usage entries
	IsScanned           bool            `gorm:"not null;default:false" json:"is_scanned"`

	Items       []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	FOCProducts []FOCProduct `gorm:"many2many:order_foc_products" json:"foc_products"`
}

// OrderItem snapshots the dish at order time so later catalog price edits
// never change a placed order.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"index;not null" json:"order_id"`
	DishName     string          `gorm:"size:200;not null" json:"dish_name"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	SizeName     string          `gorm:"size:20" json:"size_name"`
	CategoryName string          `gorm:"size:200" json:"category_name"`
	Quantity     uint            `gorm:"not null;default:1" json:"quantity"`
	IsNewlyAdded bool            `gorm:"not null;default:false" json:"is_newly_added"` // added during an edit, drives kitchen reprints
	Variants     string          `gorm:"type:jsonb;default:'[]'" json:"variants"`      // JSON list of selected variant names
}
