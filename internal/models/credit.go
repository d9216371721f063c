package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditUser is a customer account that can defer order payments against a
// running due balance. IsActive is derived: false whenever the due balance
// has reached the credit limit, recomputed on every balance change.
type CreditUser struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Username     string          `gorm:"size:100;not null" json:"username"`
	MobileNumber string          `gorm:"size:15;uniqueIndex;not null" json:"mobile_number"`
	BillDate     time.Time       `gorm:"index" json:"bill_date"`
	DueDate      time.Time       `json:"due_date"`
	TotalDue     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_due"`
	LimitAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"limit_amount"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	CreditOrders []CreditOrder       `gorm:"foreignKey:CreditUserID;constraint:OnDelete:CASCADE" json:"credit_orders,omitempty"`
	Transactions []CreditTransaction `gorm:"foreignKey:CreditUserID;constraint:OnDelete:CASCADE" json:"-"`
}

// CreditOrder links an order paid on credit to the account it was billed to.
type CreditOrder struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	Order        Order     `gorm:"foreignKey:OrderID" json:"-"`
	CreditUserID uint      `gorm:"index;not null" json:"credit_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type TransactionStatus string

const (
	TransactionStatusDue       TransactionStatus = "due"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// CreditTransaction records one payment against a credit account.
type CreditTransaction struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Date           time.Time         `gorm:"index" json:"date"`
	ReceivedAmount decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"received_amount"`
	CashAmount     decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"cash_amount"`
	BankAmount     decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"bank_amount"`
	PaymentMethod  PaymentMethod     `gorm:"size:20;not null;default:'cash'" json:"payment_method"`
	Status         TransactionStatus `gorm:"size:10;not null" json:"status"`
	CreditUserID   uint              `gorm:"index;not null" json:"credit_user_id"`
	CreatedAt      time.Time         `json:"created_at"`
}
