package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	Code               string           `gorm:"size:50;uniqueIndex;not null" json:"code"`
	DiscountAmount     decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	DiscountPercentage *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percentage"`
	StartDate          time.Time        `gorm:"not null" json:"start_date"`
	EndDate            time.Time        `gorm:"not null" json:"end_date"`
	IsActive           bool             `gorm:"not null;default:true" json:"is_active"`
	UsageLimit         *uint            `json:"usage_limit"`
	UsageCount         uint             `gorm:"not null;default:0" json:"usage_count"`
	MinPurchaseAmount  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"min_purchase_amount"`
	Description        string           `gorm:"size:500" json:"description"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// IsValid reports whether the coupon can be applied at the given time.
func (c *Coupon) IsValid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartDate.After(now) || c.EndDate.Before(now) {
		return false
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return false
	}
	return true
}

// ApplyDiscount returns the amount after the coupon's discount. Percentage
// takes priority over the flat amount when both are set.
func (c *Coupon) ApplyDiscount(amount decimal.Decimal) decimal.Decimal {
	if c.DiscountPercentage != nil && !c.DiscountPercentage.IsZero() {
		cut := amount.Mul(*c.DiscountPercentage).Div(decimal.NewFromInt(100))
		return amount.Sub(cut).Round(2)
	}
	if !c.DiscountAmount.IsZero() {
		return amount.Sub(c.DiscountAmount).Round(2)
	}
	return amount
}
