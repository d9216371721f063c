package mess

import (
	"time"

	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateMessInput struct {
	CustomerName   string               `json:"customer_name"`
	MobileNumber   string               `json:"mobile_number"`
	StartDate      time.Time            `json:"start_date"`
	EndDate        time.Time            `json:"end_date"`
	MessTypeID     uint                 `json:"mess_type_id"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
	PaidAmount     decimal.Decimal      `json:"paid_amount"`
	CashAmount     decimal.Decimal      `json:"cash_amount"`
	BankAmount     decimal.Decimal      `json:"bank_amount"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	MenuIDs        []uint               `json:"menu_ids"`
}

type UpdateMessInput struct {
	StartDate      *time.Time       `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`
	MessTypeID     *uint            `json:"mess_type_id"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	MenuIDs        *[]uint          `json:"menu_ids"`
}

// weeksBetween counts full 7-day weeks in the subscription period.
// Partial weeks are not billed.
func weeksBetween(start, end time.Time) int64 {
	days := int64(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

func menusTotal(menus []models.Menu) decimal.Decimal {
	total := decimal.Zero
	for _, m := range menus {
		total = total.Add(m.SubTotal)
	}
	return total
}

// recomputeAmounts rewrites the derived money fields from the menu set
// and the period: total, grand (after discount) and pending (after what
// was already paid).
func recomputeAmounts(m *models.Mess) {
	weeks := decimal.NewFromInt(weeksBetween(m.StartDate, m.EndDate))
	m.TotalAmount = menusTotal(m.Menus).Mul(weeks)
	m.GrandTotal = m.TotalAmount.Sub(m.DiscountAmount)
	m.PendingAmount = m.GrandTotal.Sub(m.PaidAmount)
}

// writeTransaction records one payment. adjustBalance distinguishes the
// bootstrap insert, whose amounts are already reflected in the mess
// balances, from a real payment that must move them.
func writeTransaction(tx *gorm.DB, m *models.Mess, received, cash, bank decimal.Decimal, method models.PaymentMethod, adjustBalance bool) (*models.MessTransaction, error) {
	remaining := m.PendingAmount
	if adjustBalance {
		remaining = m.PendingAmount.Sub(received)
	}

	status := models.TransactionStatusCompleted
	if remaining.GreaterThan(decimal.Zero) {
		status = models.TransactionStatusDue
	}

	txn := models.MessTransaction{
		Date:           time.Now(),
		ReceivedAmount: received,
		CashAmount:     cash,
		BankAmount:     bank,
		PaymentMethod:  method,
		Status:         status,
		MessID:         m.ID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}

	if adjustBalance {
		m.PendingAmount = remaining
		m.PaidAmount = m.PaidAmount.Add(received)
		m.CashAmount = m.CashAmount.Add(cash)
		m.BankAmount = m.BankAmount.Add(bank)
		if err := tx.Save(m).Error; err != nil {
			return nil, err
		}
	}
	return &txn, nil
}

// CreateMess opens a subscription: total = menu sub-totals times full
// weeks, and exactly one bootstrap transaction mirroring the up-front
// payment, guarded so it can never be doubled.
func CreateMess(db *gorm.DB, in CreateMessInput) (*models.Mess, error) {
	if in.CustomerName == "" || in.MobileNumber == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Customer name and mobile number are required")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
	}
	if len(in.MenuIDs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A mess needs at least one menu")
	}

	var count int64
	db.Model(&models.Mess{}).
		Where("customer_name = ? OR mobile_number = ?", in.CustomerName, in.MobileNumber).
		Count(&count)
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "A mess with this customer name or mobile number already exists")
	}

	var messType models.MessType
	if err := db.First(&messType, in.MessTypeID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mess type not found")
	}

	var menus []models.Menu
	if err := db.Find(&menus, in.MenuIDs).Error; err != nil || len(menus) != len(in.MenuIDs) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Menu not found")
	}

	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}

	m := models.Mess{
		CustomerName:   in.CustomerName,
		MobileNumber:   in.MobileNumber,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		MessTypeID:     in.MessTypeID,
		PaymentMethod:  method,
		PaidAmount:     in.PaidAmount,
		CashAmount:     in.CashAmount,
		BankAmount:     in.BankAmount,
		DiscountAmount: in.DiscountAmount,
		Menus:          menus,
	}
	recomputeAmounts(&m)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if m.InitialTransactionCreated {
			return nil
		}
		// Bootstrap: the paid amount is already baked into the
		// balances above, so the balance adjustment is suppressed.
		if _, err := writeTransaction(tx, &m, m.PaidAmount, m.CashAmount, m.BankAmount, m.PaymentMethod, false); err != nil {
			return err
		}
		m.InitialTransactionCreated = true
		return tx.Model(&m).Update("initial_transaction_created", true).Error
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create mess")
	}

	return &m, nil
}

// UpdateMess patches the subscription and recomputes every derived money
// field, replacing the menu set when one is supplied.
func UpdateMess(db *gorm.DB, messID uint, in UpdateMessInput) (*models.Mess, error) {
	var m models.Mess
	if err := db.Preload("Menus").First(&m, messID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mess not found")
	}

	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		m.EndDate = *in.EndDate
	}
	if !m.EndDate.After(m.StartDate) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
	}
	if in.MessTypeID != nil {
		var messType models.MessType
		if err := db.First(&messType, *in.MessTypeID).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "Mess type not found")
		}
		m.MessTypeID = *in.MessTypeID
	}
	if in.DiscountAmount != nil {
		m.DiscountAmount = *in.DiscountAmount
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if in.MenuIDs != nil {
			var menus []models.Menu
			if len(*in.MenuIDs) > 0 {
				if err := tx.Find(&menus, *in.MenuIDs).Error; err != nil || len(menus) != len(*in.MenuIDs) {
					return fiber.NewError(fiber.StatusNotFound, "Menu not found")
				}
			}
			if err := tx.Model(&m).Association("Menus").Replace(menus); err != nil {
				return err
			}
			m.Menus = menus
		}
		recomputeAmounts(&m)
		return tx.Save(&m).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not update mess")
	}

	return &m, nil
}

// RecordTransaction posts a payment against the subscription and moves
// the paid/pending balances accordingly.
func RecordTransaction(db *gorm.DB, messID uint, received, cash, bank decimal.Decimal, method models.PaymentMethod) (*models.MessTransaction, error) {
	if received.LessThanOrEqual(decimal.Zero) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Received amount must be positive")
	}

	var m models.Mess
	if err := db.First(&m, messID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mess not found")
	}

	var txn *models.MessTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = writeTransaction(tx, &m, received, cash, bank, method, true)
		return err
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not record mess transaction")
	}
	return txn, nil
}
