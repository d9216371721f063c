package orders

import (
	"testing"

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

func TestNormalizeSplit(t *testing.T) {
	db := newTestDB(t)

	active := models.CreditUser{Username: "ali", MobileNumber: "5550001", LimitAmount: d("500"), IsActive: true}
	require.NoError(t, db.Create(&active).Error)
	frozen := models.CreditUser{Username: "omar", MobileNumber: "5550002", TotalDue: d("200"), LimitAmount: d("200"), IsActive: false}
	require.NoError(t, db.Create(&frozen).Error)

	total := d("75.50")

	t.Run("cash zeroes bank", func(t *testing.T) {
		split, err := NormalizeSplit(db, models.PaymentCash, d("75.50"), d("10"), total, nil)
		require.NoError(t, err)
		assert.True(t, split.Cash.Equal(d("75.50")))
		assert.True(t, split.Bank.IsZero())
		assert.True(t, split.Credit.IsZero())
	})

	t.Run("bank zeroes cash", func(t *testing.T) {
		split, err := NormalizeSplit(db, models.PaymentBank, d("10"), d("75.50"), total, nil)
		require.NoError(t, err)
		assert.True(t, split.Cash.IsZero())
		assert.True(t, split.Bank.Equal(d("75.50")))
	})

	t.Run("cash-bank keeps both", func(t *testing.T) {
		split, err := NormalizeSplit(db, models.PaymentCashBank, d("50"), d("25.50"), total, nil)
		require.NoError(t, err)
		assert.True(t, split.Cash.Equal(d("50")))
		assert.True(t, split.Bank.Equal(d("25.50")))
	})

	t.Run("credit books the full total", func(t *testing.T) {
		split, err := NormalizeSplit(db, models.PaymentCredit, d("50"), d("25"), total, &active.ID)
		require.NoError(t, err)
		assert.True(t, split.Cash.IsZero())
		assert.True(t, split.Bank.IsZero())
		assert.True(t, split.Credit.Equal(total))
		require.NotNil(t, split.CreditUserID)
		assert.Equal(t, active.ID, *split.CreditUserID)
	})

	t.Run("credit without user is rejected", func(t *testing.T) {
		_, err := NormalizeSplit(db, models.PaymentCredit, d("0"), d("0"), total, nil)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})

	t.Run("frozen credit user is forbidden", func(t *testing.T) {
		_, err := NormalizeSplit(db, models.PaymentCredit, d("0"), d("0"), total, &frozen.ID)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusForbidden, fe.Code)
	})

	t.Run("online platforms carry no split", func(t *testing.T) {
		for _, m := range []models.PaymentMethod{models.PaymentTalabat, models.PaymentSnoonu, models.PaymentRafeeq} {
			split, err := NormalizeSplit(db, m, d("10"), d("20"), total, nil)
			require.NoError(t, err)
			assert.True(t, split.Cash.IsZero())
			assert.True(t, split.Bank.IsZero())
			assert.True(t, split.Credit.IsZero())
		}
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		_, err := NormalizeSplit(db, models.PaymentMethod("cheque"), d("0"), d("0"), total, nil)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})
}
