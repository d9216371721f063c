package credit

import (
	"strconv"
	"time"

	"restopos-backend/internal/config"
	"restopos-backend/internal/database"
	"restopos-backend/internal/ledger"
	"restopos-backend/internal/logger"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateUserRequest struct {
	Username     string          `json:"username"`
	MobileNumber string          `json:"mobile_number"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	BillDate     *time.Time      `json:"bill_date"`
}

type UpdateUserRequest struct {
	Username    *string          `json:"username"`
	LimitAmount *decimal.Decimal `json:"limit_amount"`
}

type MakePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type RecordPaymentRequest struct {
	ReceivedAmount decimal.Decimal      `json:"received_amount"`
	CashAmount     decimal.Decimal      `json:"cash_amount"`
	BankAmount     decimal.Decimal      `json:"bank_amount"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("username ASC")
		if c.Query("active") == "true" {
			q = q.Where("is_active = ?", true)
		}
		var users []models.CreditUser
		if err := q.Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list credit users")
		}
		return c.JSON(users)
	}
}

func GetUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var user models.CreditUser
		if err := database.DB.Preload("CreditOrders").First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Credit user not found")
		}
		return c.JSON(user)
	}
}

func CreateUserHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		billDate := time.Time{}
		if body.BillDate != nil {
			billDate = *body.BillDate
		}

		user, err := CreateUser(database.DB, body.Username, body.MobileNumber, body.LimitAmount, billDate, cfg.CreditDueDays)
		if err != nil {
			return err
		}

		// Backing ledger account, non-fatal when the chart of accounts
		// is not seeded yet.
		if err := ledger.CreateForCreditUser(database.DB, user); err != nil {
			logger.L().Warn("ledger entry for credit user skipped", zap.Uint("credit_user_id", user.ID), zap.Error(err))
		}

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var user models.CreditUser
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Credit user not found")
		}

		if body.Username != nil {
			user.Username = *body.Username
		}
		if body.LimitAmount != nil {
			user.LimitAmount = *body.LimitAmount
		}
		refreshActive(&user)

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update credit user")
		}
		return c.JSON(user)
	}
}

func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var user models.CreditUser
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Credit user not found")
		}
		if user.TotalDue.GreaterThan(decimal.Zero) {
			return fiber.NewError(fiber.StatusConflict, "Credit user still has an outstanding due balance")
		}
		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete credit user")
		}
		return c.JSON(fiber.Map{"message": "Credit user deleted"})
	}
}

// FindByMobileHandler is the POS lookup used while billing an order to
// credit: only active accounts are returned.
func FindByMobileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mobile := c.Query("mobile_number")
		if mobile == "" {
			return fiber.NewError(fiber.StatusBadRequest, "mobile_number query parameter is required")
		}
		user, err := FindActiveUser(database.DB, mobile)
		if err != nil {
			return err
		}
		return c.JSON(user)
	}
}

func MakePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body MakePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var user models.CreditUser
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Credit user not found")
		}

		if err := MakePayment(database.DB, &user, body.Amount); err != nil {
			return err
		}
		return c.JSON(user)
	}
}

func RecordPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body RecordPaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		txn, err := RecordPayment(database.DB, id, body.ReceivedAmount, body.CashAmount, body.BankAmount, body.PaymentMethod)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(txn)
	}
}

func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var txns []models.CreditTransaction
		if err := database.DB.Where("credit_user_id = ?", id).
			Order("date DESC").Find(&txns).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}
		return c.JSON(txns)
	}
}

// LatestTransactionHandler returns the most recent payment on an account,
// used for the receipt reprint shortcut.
func LatestTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var txn models.CreditTransaction
		if err := database.DB.Where("credit_user_id = ?", id).
			Order("date DESC").First(&txn).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "No transactions for this credit user")
		}
		return c.JSON(txn)
	}
}
