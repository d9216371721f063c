package ledger

import (
	"errors"
	"time"

	"restopos-backend/internal/logger"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostingInput is one side of a voucher. Ledger is the account being
// posted to, Particulars the counter-account on the other side.
type PostingInput struct {
	LedgerID        uint            `json:"ledger_id"`
	ParticularsID   uint            `json:"particulars_id"`
	Date            time.Time       `json:"date"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	Remarks         string          `json:"remarks"`
	TransactionType string          `json:"transaction_type"`
}

func buildTransaction(in PostingInput, voucherNo uint) models.Transaction {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	return models.Transaction{
		LedgerID:        in.LedgerID,
		ParticularsID:   in.ParticularsID,
		Date:            date,
		VoucherNo:       voucherNo,
		DebitAmount:     in.DebitAmount,
		CreditAmount:    in.CreditAmount,
		Remarks:         in.Remarks,
		TransactionType: in.TransactionType,
	}
}

// PostVoucher writes a balanced pair of postings under a freshly minted
// voucher number, max existing plus one. Both rows land or neither does.
// The debit/credit amounts are the caller's contract; no balancing check
// is enforced here.
func PostVoucher(db *gorm.DB, debit, credit PostingInput) (uint, error) {
	for _, side := range []PostingInput{debit, credit} {
		if side.LedgerID == side.ParticularsID {
			return 0, fiber.NewError(fiber.StatusBadRequest, "A posting can not target its own counter-ledger")
		}
		var count int64
		if err := db.Model(&models.Ledger{}).Where("id IN ?", []uint{side.LedgerID, side.ParticularsID}).Count(&count).Error; err != nil || count != 2 {
			return 0, fiber.NewError(fiber.StatusNotFound, "Ledger not found")
		}
	}

	var voucherNo uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var maxNo *uint
		if err := tx.Model(&models.Transaction{}).Select("MAX(voucher_no)").Scan(&maxNo).Error; err != nil {
			return err
		}
		voucherNo = 1
		if maxNo != nil {
			voucherNo = *maxNo + 1
		}

		debitRow := buildTransaction(debit, voucherNo)
		creditRow := buildTransaction(credit, voucherNo)
		if err := tx.Create(&debitRow).Error; err != nil {
			return err
		}
		return tx.Create(&creditRow).Error
	})
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Could not post voucher")
	}
	return voucherNo, nil
}

// CreateForCreditUser opens a ledger account under "Sundry Debtors" for a
// new credit customer. A missing main group is logged and skipped: the
// account creation itself must not fail over an unseeded chart of
// accounts.
func CreateForCreditUser(db *gorm.DB, user *models.CreditUser) error {
	var group models.MainGroup
	err := db.Where("name = ?", "Sundry Debtors").First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.L().Warn("main group 'Sundry Debtors' missing, ledger entry skipped",
			zap.String("credit_user", user.Username))
		return nil
	}
	if err != nil {
		return err
	}

	return db.Create(&models.Ledger{
		Name:           user.Username,
		MobileNumber:   user.MobileNumber,
		OpeningBalance: decimal.Zero,
		MainGroupID:    group.ID,
	}).Error
}

type ProfitAndLossResult struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	NetLoss      decimal.Decimal `json:"net_loss"`
}

// ProfitAndLoss sums debits under the Expense nature group and credits
// under Income for the date range, then nets the two.
func ProfitAndLoss(db *gorm.DB, from, to time.Time) (ProfitAndLossResult, error) {
	sumBy := func(nature, column string) (decimal.Decimal, error) {
		var out decimal.NullDecimal
		err := db.Model(&models.Transaction{}).
			Select("COALESCE(SUM(transactions."+column+"),0)").
			Joins("JOIN ledgers ON ledgers.id = transactions.ledger_id").
			Joins("JOIN main_groups ON main_groups.id = ledgers.main_group_id").
			Joins("JOIN nature_groups ON nature_groups.id = main_groups.nature_group_id").
			Where("nature_groups.name = ? AND transactions.date >= ? AND transactions.date < ?", nature, from, to).
			Scan(&out).Error
		if err != nil {
			return decimal.Zero, err
		}
		if !out.Valid {
			return decimal.Zero, nil
		}
		return out.Decimal, nil
	}

	expense, err := sumBy("Expense", "debit_amount")
	if err != nil {
		return ProfitAndLossResult{}, err
	}
	income, err := sumBy("Income", "credit_amount")
	if err != nil {
		return ProfitAndLossResult{}, err
	}

	result := ProfitAndLossResult{
		TotalIncome:  income,
		TotalExpense: expense,
		NetProfit:    decimal.Max(income.Sub(expense), decimal.Zero),
		NetLoss:      decimal.Max(expense.Sub(income), decimal.Zero),
	}
	return result, nil
}
