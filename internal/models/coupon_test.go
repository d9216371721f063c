package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCouponIsValid(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	window := Coupon{
		Code:      "RAMADAN10",
		IsActive:  true,
		StartDate: now.AddDate(0, 0, -7),
		EndDate:   now.AddDate(0, 0, 7),
	}

	t.Run("active inside the window", func(t *testing.T) {
		assert.True(t, window.IsValid(now))
	})

	t.Run("inactive flag wins", func(t *testing.T) {
		c := window
		c.IsActive = false
		assert.False(t, c.IsValid(now))
	})

	t.Run("outside the window", func(t *testing.T) {
		assert.False(t, window.IsValid(now.AddDate(0, 0, -10)))
		assert.False(t, window.IsValid(now.AddDate(0, 0, 10)))
	})

	t.Run("usage limit exhausts", func(t *testing.T) {
		limit := uint(5)
		c := window
		c.UsageLimit = &limit
		c.UsageCount = 4
		assert.True(t, c.IsValid(now))
		c.UsageCount = 5
		assert.False(t, c.IsValid(now))
	})
}

func TestCouponApplyDiscount(t *testing.T) {
	amount := decimal.RequireFromString("200.00")

	t.Run("flat amount", func(t *testing.T) {
		c := Coupon{DiscountAmount: decimal.RequireFromString("15.00")}
		assert.True(t, c.ApplyDiscount(amount).Equal(decimal.RequireFromString("185.00")))
	})

	t.Run("percentage wins over flat", func(t *testing.T) {
		pct := decimal.RequireFromString("10")
		c := Coupon{DiscountAmount: decimal.RequireFromString("15.00"), DiscountPercentage: &pct}
		assert.True(t, c.ApplyDiscount(amount).Equal(decimal.RequireFromString("180.00")))
	})

	t.Run("no discount configured", func(t *testing.T) {
		c := Coupon{}
		assert.True(t, c.ApplyDiscount(amount).Equal(amount))
	})
}
