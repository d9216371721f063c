package coupons

import (
	"strconv"
	"strings"
	"time"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CouponRequest struct {
	Code               string           `json:"code"`
	DiscountAmount     decimal.Decimal  `json:"discount_amount"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	IsActive           *bool            `json:"is_active"`
	UsageLimit         *uint            `json:"usage_limit"`
	MinPurchaseAmount  *decimal.Decimal `json:"min_purchase_amount"`
	Description        string           `json:"description"`
}

type ApplyRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var coupons []models.Coupon
		if err := database.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list coupons")
		}
		return c.JSON(coupons)
	}
}

func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CouponRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Code = strings.TrimSpace(strings.ToUpper(body.Code))
		if body.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Coupon code is required")
		}
		if !body.EndDate.After(body.StartDate) {
			return fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
		}

		coupon := models.Coupon{
			Code:               body.Code,
			DiscountAmount:     body.DiscountAmount,
			DiscountPercentage: body.DiscountPercentage,
			StartDate:          body.StartDate,
			EndDate:            body.EndDate,
			IsActive:           true,
			UsageLimit:         body.UsageLimit,
			MinPurchaseAmount:  body.MinPurchaseAmount,
			Description:        body.Description,
		}
		if body.IsActive != nil {
			coupon.IsActive = *body.IsActive
		}

		if err := database.DB.Create(&coupon).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A coupon with this code already exists")
		}
		return c.Status(fiber.StatusCreated).JSON(coupon)
	}
}

func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body CouponRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var coupon models.Coupon
		if err := database.DB.First(&coupon, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Coupon not found")
		}

		// usage_count is read-only: it only moves when a coupon is
		// actually redeemed.
		if body.Code != "" {
			coupon.Code = strings.TrimSpace(strings.ToUpper(body.Code))
		}
		if !body.DiscountAmount.IsZero() {
			coupon.DiscountAmount = body.DiscountAmount
		}
		if body.DiscountPercentage != nil {
			coupon.DiscountPercentage = body.DiscountPercentage
		}
		if !body.StartDate.IsZero() {
			coupon.StartDate = body.StartDate
		}
		if !body.EndDate.IsZero() {
			coupon.EndDate = body.EndDate
		}
		if body.IsActive != nil {
			coupon.IsActive = *body.IsActive
		}
		if body.UsageLimit != nil {
			coupon.UsageLimit = body.UsageLimit
		}
		if body.MinPurchaseAmount != nil {
			coupon.MinPurchaseAmount = body.MinPurchaseAmount
		}
		if body.Description != "" {
			coupon.Description = body.Description
		}

		if !coupon.EndDate.After(coupon.StartDate) {
			return fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
		}

		if err := database.DB.Save(&coupon).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update coupon")
		}
		return c.JSON(coupon)
	}
}

func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var coupon models.Coupon
		if err := database.DB.First(&coupon, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Coupon not found")
		}
		if err := database.DB.Delete(&coupon).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete coupon")
		}
		return c.JSON(fiber.Map{"message": "Coupon deleted"})
	}
}

// ApplyHandler validates a coupon against a purchase amount, bumps its
// usage count and returns the discounted amount.
func ApplyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ApplyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		code := strings.TrimSpace(strings.ToUpper(body.Code))
		var coupon models.Coupon
		if err := database.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Coupon not found")
		}

		if !coupon.IsValid(time.Now()) {
			return fiber.NewError(fiber.StatusBadRequest, "Coupon is not valid")
		}
		if coupon.MinPurchaseAmount != nil && body.Amount.LessThan(*coupon.MinPurchaseAmount) {
			return fiber.NewError(fiber.StatusBadRequest, "Purchase amount is below the coupon minimum")
		}

		discounted := coupon.ApplyDiscount(body.Amount)
		if err := database.DB.Model(&coupon).
			Update("usage_count", coupon.UsageCount+1).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not redeem coupon")
		}

		return c.JSON(fiber.Map{
			"code":              coupon.Code,
			"original_amount":   body.Amount,
			"discounted_amount": discounted,
			"discount":          body.Amount.Sub(discounted),
		})
	}
}
