package ledger

import (
	"strconv"
	"time"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateLedgerRequest struct {
	Name           string          `json:"name"`
	MobileNumber   string          `json:"mobile_number"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	MainGroupID    uint            `json:"main_group_id"`
}

type PostVoucherRequest struct {
	Debit  PostingInput `json:"debit"`
	Credit PostingInput `json:"credit"`
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.Query("from", "0001-01-01"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to := time.Now().AddDate(0, 0, 1)
	if q := c.Query("to"); q != "" {
		day, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		to = day.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func ListNatureGroupsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var groups []models.NatureGroup
		if err := database.DB.Find(&groups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list nature groups")
		}
		return c.JSON(groups)
	}
}

func CreateNatureGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		g := models.NatureGroup{Name: body.Name}
		if err := database.DB.Create(&g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create nature group")
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	}
}

func ListMainGroupsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var groups []models.MainGroup
		if err := database.DB.Preload("NatureGroup").Find(&groups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list main groups")
		}
		return c.JSON(groups)
	}
}

func CreateMainGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name          string `json:"name"`
			NatureGroupID uint   `json:"nature_group_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" || body.NatureGroupID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Name and nature group are required")
		}
		var nature models.NatureGroup
		if err := database.DB.First(&nature, body.NatureGroupID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Nature group not found")
		}
		g := models.MainGroup{Name: body.Name, NatureGroupID: body.NatureGroupID}
		if err := database.DB.Create(&g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create main group")
		}
		g.NatureGroup = nature
		return c.Status(fiber.StatusCreated).JSON(g)
	}
}

func ListLedgersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("MainGroup").Preload("MainGroup.NatureGroup").Order("name ASC")
		if mg := c.Query("main_group_id"); mg != "" {
			q = q.Where("main_group_id = ?", mg)
		}
		var ledgers []models.Ledger
		if err := q.Find(&ledgers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list ledgers")
		}
		return c.JSON(ledgers)
	}
}

func CreateLedgerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLedgerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" || body.MainGroupID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Name and main group are required")
		}
		var group models.MainGroup
		if err := database.DB.First(&group, body.MainGroupID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Main group not found")
		}

		l := models.Ledger{
			Name:           body.Name,
			MobileNumber:   body.MobileNumber,
			OpeningBalance: body.OpeningBalance,
			MainGroupID:    body.MainGroupID,
		}
		if err := database.DB.Create(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create ledger")
		}
		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

func PostVoucherHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PostVoucherRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		voucherNo, err := PostVoucher(database.DB, body.Debit, body.Credit)
		if err != nil {
			return err
		}

		var rows []models.Transaction
		if err := database.DB.Preload("Ledger").Preload("Particulars").
			Where("voucher_no = ?", voucherNo).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load voucher")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"voucher_no":   voucherNo,
			"transactions": rows,
		})
	}
}

// FilterByVoucherHandler returns both sides of one voucher.
func FilterByVoucherHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		no, err := strconv.ParseUint(c.Params("voucherNo"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid voucher number")
		}
		var rows []models.Transaction
		if err := database.DB.Preload("Ledger").Preload("Particulars").
			Where("voucher_no = ?", no).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load voucher")
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
		}
		return c.JSON(rows)
	}
}

// LedgerReportHandler is the account statement: opening balance plus the
// postings in range with a running balance.
func LedgerReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		var l models.Ledger
		if err := database.DB.Preload("MainGroup").First(&l, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ledger not found")
		}

		var rows []models.Transaction
		if err := database.DB.Preload("Particulars").
			Where("ledger_id = ? AND date >= ? AND date < ?", id, from, to).
			Order("date ASC, id ASC").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load ledger report")
		}

		type line struct {
			models.Transaction
			Balance decimal.Decimal `json:"balance"`
		}
		balance := l.OpeningBalance
		lines := make([]line, 0, len(rows))
		for _, r := range rows {
			balance = balance.Add(r.DebitAmount).Sub(r.CreditAmount)
			lines = append(lines, line{Transaction: r, Balance: balance})
		}

		return c.JSON(fiber.Map{
			"ledger":          l,
			"opening_balance": l.OpeningBalance,
			"closing_balance": balance,
			"lines":           lines,
		})
	}
}

func ProfitAndLossHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}
		result, err := ProfitAndLoss(database.DB, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute profit and loss")
		}
		return c.JSON(result)
	}
}
