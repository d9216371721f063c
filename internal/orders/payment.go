package orders

import (
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentSplit is the normalized cash/bank/credit breakdown for an order.
// Exactly one normalization rule applies per payment method, so the split
// is never taken from the client as-is.
type PaymentSplit struct {
	Cash         decimal.Decimal
	Bank         decimal.Decimal
	Credit       decimal.Decimal
	CreditUserID *uint
}

// NormalizeSplit applies the payment-method rules: cash zeroes the bank
// side, bank zeroes the cash side, cash-bank keeps both as given, credit
// zeroes both and books the full total against an active credit account,
// and the online platforms carry no in-house split at all.
func NormalizeSplit(db *gorm.DB, method models.PaymentMethod, cash, bank, total decimal.Decimal, creditUserID *uint) (PaymentSplit, error) {
	zero := decimal.Zero

	switch method {
	case models.PaymentCash:
		return PaymentSplit{Cash: cash, Bank: zero, Credit: zero}, nil

	case models.PaymentBank:
		return PaymentSplit{Cash: zero, Bank: bank, Credit: zero}, nil

	case models.PaymentCashBank:
		return PaymentSplit{Cash: cash, Bank: bank, Credit: zero}, nil

	case models.PaymentCredit:
		if creditUserID == nil {
			return PaymentSplit{}, fiber.NewError(fiber.StatusBadRequest, "Credit payments require a credit user")
		}
		var user models.CreditUser
		if err := db.First(&user, *creditUserID).Error; err != nil {
			return PaymentSplit{}, fiber.NewError(fiber.StatusNotFound, "Credit user not found")
		}
		if !user.IsActive {
			return PaymentSplit{}, fiber.NewError(fiber.StatusForbidden, "Credit user account is inactive")
		}
		return PaymentSplit{Cash: zero, Bank: zero, Credit: total, CreditUserID: creditUserID}, nil

	case models.PaymentTalabat, models.PaymentSnoonu, models.PaymentRafeeq:
		return PaymentSplit{Cash: zero, Bank: zero, Credit: zero}, nil

	default:
		return PaymentSplit{}, fiber.NewError(fiber.StatusBadRequest, "Invalid payment method")
	}
}
