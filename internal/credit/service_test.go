package credit

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

func seedUser(t *testing.T, db *gorm.DB, due, limit string) *models.CreditUser {
	t.Helper()
	user := models.CreditUser{
		Username:     "test-" + due + "-" + limit,
		MobileNumber: "555" + due + limit,
		TotalDue:     d(due),
		LimitAmount:  d(limit),
	}
	refreshActive(&user)
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestActivityFlag(t *testing.T) {
	db := newTestDB(t)

	// Limit 100, due 90: booking 20 more freezes the account, a payment
	// of 50 thaws it.
	user := seedUser(t, db, "90", "100")
	require.True(t, user.IsActive)

	require.NoError(t, AddToTotalDue(db, user, d("20")))
	assert.True(t, user.TotalDue.Equal(d("110")))
	assert.False(t, user.IsActive)

	require.NoError(t, MakePayment(db, user, d("50")))
	assert.True(t, user.TotalDue.Equal(d("60")))
	assert.True(t, user.IsActive)

	var stored models.CreditUser
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, stored.TotalDue.Equal(d("60")))
	assert.True(t, stored.IsActive)
}

func TestActivityFlagFlipsExactlyAtLimit(t *testing.T) {
	db := newTestDB(t)

	user := seedUser(t, db, "99", "100")
	require.True(t, user.IsActive)

	require.NoError(t, AddToTotalDue(db, user, d("1")))
	assert.True(t, user.TotalDue.Equal(d("100")))
	assert.False(t, user.IsActive, "due equal to limit must freeze the account")
}

func TestMakePayment(t *testing.T) {
	db := newTestDB(t)

	t.Run("overpayment clamps to zero", func(t *testing.T) {
		user := seedUser(t, db, "40", "200")
		require.NoError(t, MakePayment(db, user, d("75")))
		assert.True(t, user.TotalDue.IsZero(), "got %s", user.TotalDue)
	})

	t.Run("resets the due date", func(t *testing.T) {
		user := seedUser(t, db, "40", "300")
		user.DueDate = time.Now().AddDate(0, 0, -10)
		require.NoError(t, db.Save(user).Error)

		require.NoError(t, MakePayment(db, user, d("10")))
		assert.WithinDuration(t, time.Now(), user.DueDate, time.Minute)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		user := seedUser(t, db, "40", "400")
		for _, amount := range []string{"0", "-5"} {
			err := MakePayment(db, user, d(amount))
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		}
	})
}

func TestRecordPayment(t *testing.T) {
	db := newTestDB(t)

	t.Run("partial payment stays due", func(t *testing.T) {
		user := seedUser(t, db, "100", "500")

		txn, err := RecordPayment(db, user.ID, d("40"), d("40"), d("0"), models.PaymentCash)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusDue, txn.Status)

		var stored models.CreditUser
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.True(t, stored.TotalDue.Equal(d("60")))
	})

	t.Run("full payment keeps the due status it was settling", func(t *testing.T) {
		user := seedUser(t, db, "80", "600")

		txn, err := RecordPayment(db, user.ID, d("80"), d("50"), d("30"), models.PaymentCashBank)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusDue, txn.Status,
			"status reflects the balance before the decrement")

		var stored models.CreditUser
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.True(t, stored.TotalDue.IsZero())
	})

	t.Run("payment against a settled account completes", func(t *testing.T) {
		user := seedUser(t, db, "0", "600")

		txn, err := RecordPayment(db, user.ID, d("10"), d("10"), d("0"), models.PaymentCash)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
	})

	t.Run("decrement is unclamped", func(t *testing.T) {
		user := seedUser(t, db, "30", "700")

		txn, err := RecordPayment(db, user.ID, d("50"), d("50"), d("0"), models.PaymentCash)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusDue, txn.Status)

		var stored models.CreditUser
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.True(t, stored.TotalDue.Equal(d("-20")), "got %s", stored.TotalDue)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := RecordPayment(db, 99999, d("10"), d("10"), d("0"), models.PaymentCash)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusNotFound, fe.Code)
	})
}

func TestFindActiveUser(t *testing.T) {
	db := newTestDB(t)

	active := seedUser(t, db, "10", "100")
	frozen := seedUser(t, db, "200", "200")

	found, err := FindActiveUser(db, active.MobileNumber)
	require.NoError(t, err)
	assert.Equal(t, active.ID, found.ID)

	_, err = FindActiveUser(db, frozen.MobileNumber)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)

	_, err = FindActiveUser(db, "0000000")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	t.Run("due date offsets the bill date", func(t *testing.T) {
		bill := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		user, err := CreateUser(db, "jassim", "5557000", d("500"), bill, 30)
		require.NoError(t, err)
		assert.Equal(t, bill.AddDate(0, 0, 30), user.DueDate)
		assert.True(t, user.IsActive)
		assert.True(t, user.TotalDue.IsZero())
	})

	t.Run("duplicate mobile number conflicts", func(t *testing.T) {
		_, err := CreateUser(db, "other", "5557000", d("100"), time.Time{}, 30)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})

	t.Run("zero limit starts frozen", func(t *testing.T) {
		user, err := CreateUser(db, "nolimit", "5558000", d("0"), time.Time{}, 30)
		require.NoError(t, err)
		assert.False(t, user.IsActive)
	})
}
