package mess

import (
	"strconv"
	"time"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type RecordTransactionRequest struct {
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

func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("MessType").Preload("Menus").Order("created_at DESC")
		if active := c.Query("active"); active == "true" {
			q = q.Where("end_date >= ?", time.Now())
		}
		var list []models.Mess
		if err := q.Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list messes")
		}
		return c.JSON(list)
	}
}

func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var m models.Mess
		if err := database.DB.Preload("MessType").Preload("Menus").Preload("Menus.Items").
			First(&m, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mess not found")
		}
		return c.JSON(m)
	}
}

func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMessInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		m, err := CreateMess(database.DB, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body UpdateMessInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		m, err := UpdateMess(database.DB, id, body)
		if err != nil {
			return err
		}
		return c.JSON(m)
	}
}

func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var m models.Mess
		if err := database.DB.First(&m, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mess not found")
		}
		if err := database.DB.Select(clause.Associations).Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete mess")
		}
		return c.JSON(fiber.Map{"message": "Mess deleted"})
	}
}

func RecordTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body RecordTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		txn, err := RecordTransaction(database.DB, id, body.ReceivedAmount, body.CashAmount, body.BankAmount, body.PaymentMethod)
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
		var txns []models.MessTransaction
		if err := database.DB.Where("mess_id = ?", id).Order("date DESC").Find(&txns).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}
		return c.JSON(txns)
	}
}

// ReportHandler summarizes subscription billing for a period.
func ReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("MessType").Order("start_date ASC")
		if from := c.Query("from"); from != "" {
			day, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
			}
			q = q.Where("start_date >= ?", day)
		}
		if to := c.Query("to"); to != "" {
			day, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
			}
			q = q.Where("start_date < ?", day.AddDate(0, 0, 1))
		}
		if method := c.Query("payment_method"); method != "" {
			q = q.Where("payment_method = ?", method)
		}
		if mt := c.Query("mess_type_id"); mt != "" {
			q = q.Where("mess_type_id = ?", mt)
		}
		if c.Query("pending") == "true" {
			q = q.Where("pending_amount > 0")
		}

		var messes []models.Mess
		if err := q.Find(&messes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build mess report")
		}

		totalBilled := decimal.Zero
		totalPaid := decimal.Zero
		totalPending := decimal.Zero
		for _, m := range messes {
			totalBilled = totalBilled.Add(m.GrandTotal)
			totalPaid = totalPaid.Add(m.PaidAmount)
			totalPending = totalPending.Add(m.PendingAmount)
		}

		return c.JSON(fiber.Map{
			"subscriptions": len(messes),
			"total_billed":  totalBilled,
			"total_paid":    totalPaid,
			"total_pending": totalPending,
			"messes":        messes,
		})
	}
}
