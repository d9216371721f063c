package orders

import (
	"time"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Read-side rollups over delivered orders. No invariants of their own,
// everything here is derived at query time.

func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from := c.Query("from")
	to := c.Query("to")
	now := time.Now()

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	if from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return start, end, fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		start = d
	}
	if to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			return start, end, fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		end = d.AddDate(0, 0, 1)
	}
	return start, end, nil
}

type methodSummary struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	OrderCount    int64                `json:"order_count"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	CashAmount    decimal.Decimal      `json:"cash_amount"`
	BankAmount    decimal.Decimal      `json:"bank_amount"`
	CreditAmount  decimal.Decimal      `json:"credit_amount"`
}

func SalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parseDateRange(c)
		if err != nil {
			return err
		}

		q := database.DB.Model(&models.Order{}).
			Select("payment_method, COUNT(*) AS order_count, COALESCE(SUM(total_amount),0) AS total_amount, COALESCE(SUM(cash_amount),0) AS cash_amount, COALESCE(SUM(bank_amount),0) AS bank_amount, COALESCE(SUM(credit_amount),0) AS credit_amount").
			Where("status = ? AND created_at >= ? AND created_at < ?", c.Query("status", string(models.OrderStatusDelivered)), start, end)
		if ot := c.Query("order_type"); ot != "" {
			q = q.Where("order_type = ?", ot)
		}
		if pm := c.Query("payment_method"); pm != "" {
			q = q.Where("payment_method = ?", pm)
		}

		var rows []methodSummary
		err = q.Group("payment_method").Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build sales report")
		}

		grand := decimal.Zero
		var count int64
		for _, r := range rows {
			grand = grand.Add(r.TotalAmount)
			count += r.OrderCount
		}

		return c.JSON(fiber.Map{
			"from":        start.Format("2006-01-02"),
			"to":          end.AddDate(0, 0, -1).Format("2006-01-02"),
			"order_count": count,
			"grand_total": grand,
			"by_method":   rows,
		})
	}
}

type platformSummary struct {
	OnlineOrderID uint            `json:"online_order_id"`
	Platform      string          `json:"platform"`
	Percentage    decimal.Decimal `json:"percentage"`
	OrderCount    int64           `json:"order_count"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
}

// OnlineDeliveryReportHandler totals per third-party platform and derives
// the commission each one keeps.
func OnlineDeliveryReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parseDateRange(c)
		if err != nil {
			return err
		}

		var rows []platformSummary
		err = database.DB.Model(&models.Order{}).
			Select("orders.online_order_id, online_orders.name AS platform, online_orders.percentage, COUNT(*) AS order_count, COALESCE(SUM(orders.total_amount),0) AS gross_amount").
			Joins("JOIN online_orders ON online_orders.id = orders.online_order_id").
			Where("orders.order_type = ? AND orders.created_at >= ? AND orders.created_at < ?", models.OrderTypeOnlineDelivery, start, end).
			Group("orders.online_order_id, online_orders.name, online_orders.percentage").
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build online delivery report")
		}

		type row struct {
			platformSummary
			Commission decimal.Decimal `json:"commission"`
			NetAmount  decimal.Decimal `json:"net_amount"`
		}
		out := make([]row, 0, len(rows))
		for _, r := range rows {
			commission := r.GrossAmount.Mul(r.Percentage).Div(decimal.NewFromInt(100)).Round(2)
			out = append(out, row{
				platformSummary: r,
				Commission:      commission,
				NetAmount:       r.GrossAmount.Sub(commission),
			})
		}
		return c.JSON(out)
	}
}

type driverSummary struct {
	DriverID   uint            `json:"driver_id"`
	DriverName string          `json:"driver_name"`
	OrderCount int64           `json:"order_count"`
	Total      decimal.Decimal `json:"total"`
}

func DriverReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parseDateRange(c)
		if err != nil {
			return err
		}

		var rows []driverSummary
		err = database.DB.Model(&models.Order{}).
			Select("orders.delivery_driver_id AS driver_id, users.name AS driver_name, COUNT(*) AS order_count, COALESCE(SUM(orders.total_amount),0) AS total").
			Joins("JOIN users ON users.id = orders.delivery_driver_id").
			Where("orders.order_type = ? AND orders.created_at >= ? AND orders.created_at < ?", models.OrderTypeDelivery, start, end).
			Group("orders.delivery_driver_id, users.name").
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build driver report")
		}
		return c.JSON(rows)
	}
}

// UserOrderHistoryHandler lists a customer's past orders by phone number.
func UserOrderHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		phone := c.Query("phone")
		if phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "phone query parameter is required")
		}

		var list []models.Order
		err := database.DB.Preload("Items").
			Where("customer_phone_number = ?", phone).
			Order("created_at DESC").
			Find(&list).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load order history")
		}
		return c.JSON(list)
	}
}
