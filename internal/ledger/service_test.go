package ledger

import (
	"testing"
	"time"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type chart struct {
	sales models.Ledger
	rent  models.Ledger
	bank  models.Ledger
}

func seedChart(t *testing.T, db *gorm.DB) chart {
	t.Helper()

	income := models.NatureGroup{Name: "Income"}
	expense := models.NatureGroup{Name: "Expense"}
	assets := models.NatureGroup{Name: "Assets"}
	require.NoError(t, db.Create(&income).Error)
	require.NoError(t, db.Create(&expense).Error)
	require.NoError(t, db.Create(&assets).Error)

	direct := models.MainGroup{Name: "Direct Income", NatureGroupID: income.ID}
	indirect := models.MainGroup{Name: "Indirect Expenses", NatureGroupID: expense.ID}
	current := models.MainGroup{Name: "Current Assets", NatureGroupID: assets.ID}
	require.NoError(t, db.Create(&direct).Error)
	require.NoError(t, db.Create(&indirect).Error)
	require.NoError(t, db.Create(&current).Error)

	ch := chart{
		sales: models.Ledger{Name: "Sales", MainGroupID: direct.ID},
		rent:  models.Ledger{Name: "Rent", MainGroupID: indirect.ID},
		bank:  models.Ledger{Name: "Bank", MainGroupID: current.ID},
	}
	require.NoError(t, db.Create(&ch.sales).Error)
	require.NoError(t, db.Create(&ch.rent).Error)
	require.NoError(t, db.Create(&ch.bank).Error)
	return ch
}

func TestPostVoucher(t *testing.T) {
	db := newTestDB(t)
	ch := seedChart(t, db)

	t.Run("both sides share the next voucher number", func(t *testing.T) {
		no1, err := PostVoucher(db,
			PostingInput{LedgerID: ch.rent.ID, ParticularsID: ch.bank.ID, DebitAmount: d("100")},
			PostingInput{LedgerID: ch.bank.ID, ParticularsID: ch.rent.ID, CreditAmount: d("100")},
		)
		require.NoError(t, err)
		assert.EqualValues(t, 1, no1)

		no2, err := PostVoucher(db,
			PostingInput{LedgerID: ch.rent.ID, ParticularsID: ch.bank.ID, DebitAmount: d("40")},
			PostingInput{LedgerID: ch.bank.ID, ParticularsID: ch.rent.ID, CreditAmount: d("40")},
		)
		require.NoError(t, err)
		assert.EqualValues(t, 2, no2)

		var rows []models.Transaction
		require.NoError(t, db.Where("voucher_no = ?", no1).Find(&rows).Error)
		require.Len(t, rows, 2)
		assert.True(t, rows[0].DebitAmount.Add(rows[1].DebitAmount).Equal(d("100")))
		assert.True(t, rows[0].CreditAmount.Add(rows[1].CreditAmount).Equal(d("100")))
	})

	t.Run("unknown ledger fails the whole voucher", func(t *testing.T) {
		var before int64
		db.Model(&models.Transaction{}).Count(&before)

		_, err := PostVoucher(db,
			PostingInput{LedgerID: 99999, ParticularsID: ch.bank.ID, DebitAmount: d("10")},
			PostingInput{LedgerID: ch.bank.ID, ParticularsID: 99999, CreditAmount: d("10")},
		)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusNotFound, fe.Code)

		var after int64
		db.Model(&models.Transaction{}).Count(&after)
		assert.Equal(t, before, after, "no partial posting may survive")
	})

	t.Run("self-referencing posting is rejected", func(t *testing.T) {
		_, err := PostVoucher(db,
			PostingInput{LedgerID: ch.bank.ID, ParticularsID: ch.bank.ID, DebitAmount: d("10")},
			PostingInput{LedgerID: ch.rent.ID, ParticularsID: ch.bank.ID, CreditAmount: d("10")},
		)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})
}

func TestCreateForCreditUser(t *testing.T) {
	t.Run("creates under sundry debtors", func(t *testing.T) {
		db := newTestDB(t)
		nature := models.NatureGroup{Name: "Assets"}
		require.NoError(t, db.Create(&nature).Error)
		group := models.MainGroup{Name: "Sundry Debtors", NatureGroupID: nature.ID}
		require.NoError(t, db.Create(&group).Error)

		user := models.CreditUser{Username: "jassim", MobileNumber: "5559000"}
		require.NoError(t, db.Create(&user).Error)
		require.NoError(t, CreateForCreditUser(db, &user))

		var l models.Ledger
		require.NoError(t, db.Where("name = ?", "jassim").First(&l).Error)
		assert.Equal(t, group.ID, l.MainGroupID)
		assert.Equal(t, "5559000", l.MobileNumber)
	})

	t.Run("missing main group is skipped, not fatal", func(t *testing.T) {
		db := newTestDB(t)
		user := models.CreditUser{Username: "maryam", MobileNumber: "5559001"}
		require.NoError(t, db.Create(&user).Error)

		require.NoError(t, CreateForCreditUser(db, &user))

		var count int64
		db.Model(&models.Ledger{}).Count(&count)
		assert.EqualValues(t, 0, count)
	})
}

func TestProfitAndLoss(t *testing.T) {
	db := newTestDB(t)
	ch := seedChart(t, db)

	day := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	// Rent paid 300 (expense debit), sales banked 1000 (income credit).
	_, err := PostVoucher(db,
		PostingInput{LedgerID: ch.rent.ID, ParticularsID: ch.bank.ID, DebitAmount: d("300"), Date: day},
		PostingInput{LedgerID: ch.bank.ID, ParticularsID: ch.rent.ID, CreditAmount: d("300"), Date: day},
	)
	require.NoError(t, err)
	_, err = PostVoucher(db,
		PostingInput{LedgerID: ch.bank.ID, ParticularsID: ch.sales.ID, DebitAmount: d("1000"), Date: day},
		PostingInput{LedgerID: ch.sales.ID, ParticularsID: ch.bank.ID, CreditAmount: d("1000"), Date: day},
	)
	require.NoError(t, err)

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	result, err := ProfitAndLoss(db, from, to)
	require.NoError(t, err)
	assert.True(t, result.TotalExpense.Equal(d("300")), "got %s", result.TotalExpense)
	assert.True(t, result.TotalIncome.Equal(d("1000")), "got %s", result.TotalIncome)
	assert.True(t, result.NetProfit.Equal(d("700")))
	assert.True(t, result.NetLoss.IsZero())

	t.Run("out of range dates sum to zero", func(t *testing.T) {
		result, err := ProfitAndLoss(db, to, to.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.True(t, result.TotalIncome.IsZero())
		assert.True(t, result.TotalExpense.IsZero())
	})
}
