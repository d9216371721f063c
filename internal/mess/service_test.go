package mess

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

func seedMenus(t *testing.T, db *gorm.DB, subTotals ...string) (uint, []uint) {
	t.Helper()
	messType := models.MessType{Name: models.MessTypeLunchDinner}
	require.NoError(t, db.Create(&messType).Error)

	ids := make([]uint, 0, len(subTotals))
	for i, st := range subTotals {
		menu := models.Menu{
			Name:       "Menu " + st,
			DayOfWeek:  models.DayOfWeek([]models.DayOfWeek{models.Monday, models.Tuesday, models.Wednesday}[i%3]),
			SubTotal:   d(st),
			MessTypeID: &messType.ID,
		}
		require.NoError(t, db.Create(&menu).Error)
		ids = append(ids, menu.ID)
	}
	return messType.ID, ids
}

func TestWeeksBetween(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		days  int
		weeks int64
	}{
		{6, 0},
		{7, 1},
		{13, 1},
		{14, 2},
		{30, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.weeks, weeksBetween(start, start.AddDate(0, 0, tc.days)), "%d days", tc.days)
	}
}

func TestCreateMess(t *testing.T) {
	t.Run("total is menu sub-totals times full weeks", func(t *testing.T) {
		db := newTestDB(t)
		typeID, menuIDs := seedMenus(t, db, "50.00", "30.00")

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		m, err := CreateMess(db, CreateMessInput{
			CustomerName: "Salem",
			MobileNumber: "5560001",
			StartDate:    start,
			EndDate:      start.AddDate(0, 0, 14),
			MessTypeID:   typeID,
			MenuIDs:      menuIDs,
			PaidAmount:   d("100.00"),
			CashAmount:   d("100.00"),
		})
		require.NoError(t, err)
		assert.True(t, m.TotalAmount.Equal(d("160.00")), "got %s", m.TotalAmount)
		assert.True(t, m.GrandTotal.Equal(d("160.00")))
		assert.True(t, m.PendingAmount.Equal(d("60.00")))
	})

	t.Run("bootstrap transaction is created exactly once and moves no balance", func(t *testing.T) {
		db := newTestDB(t)
		typeID, menuIDs := seedMenus(t, db, "40.00")

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		m, err := CreateMess(db, CreateMessInput{
			CustomerName: "Rashid",
			MobileNumber: "5560002",
			StartDate:    start,
			EndDate:      start.AddDate(0, 0, 7),
			MessTypeID:   typeID,
			MenuIDs:      menuIDs,
			PaidAmount:   d("15.00"),
			CashAmount:   d("15.00"),
		})
		require.NoError(t, err)
		assert.True(t, m.InitialTransactionCreated)

		var txns []models.MessTransaction
		require.NoError(t, db.Where("mess_id = ?", m.ID).Find(&txns).Error)
		require.Len(t, txns, 1)
		assert.True(t, txns[0].ReceivedAmount.Equal(d("15.00")))
		assert.Equal(t, models.TransactionStatusDue, txns[0].Status)

		// The bootstrap must not have double-counted the payment.
		var stored models.Mess
		require.NoError(t, db.First(&stored, m.ID).Error)
		assert.True(t, stored.PaidAmount.Equal(d("15.00")))
		assert.True(t, stored.PendingAmount.Equal(d("25.00")), "got %s", stored.PendingAmount)
	})

	t.Run("fully paid bootstrap is completed", func(t *testing.T) {
		db := newTestDB(t)
		typeID, menuIDs := seedMenus(t, db, "40.00")

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		m, err := CreateMess(db, CreateMessInput{
			CustomerName: "Yousef",
			MobileNumber: "5560003",
			StartDate:    start,
			EndDate:      start.AddDate(0, 0, 7),
			MessTypeID:   typeID,
			MenuIDs:      menuIDs,
			PaidAmount:   d("40.00"),
			CashAmount:   d("40.00"),
		})
		require.NoError(t, err)

		var txn models.MessTransaction
		require.NoError(t, db.Where("mess_id = ?", m.ID).First(&txn).Error)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
	})

	t.Run("discount feeds the grand total", func(t *testing.T) {
		db := newTestDB(t)
		typeID, menuIDs := seedMenus(t, db, "50.00")

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		m, err := CreateMess(db, CreateMessInput{
			CustomerName:   "Majid",
			MobileNumber:   "5560004",
			StartDate:      start,
			EndDate:        start.AddDate(0, 0, 14),
			MessTypeID:     typeID,
			MenuIDs:        menuIDs,
			DiscountAmount: d("10.00"),
		})
		require.NoError(t, err)
		assert.True(t, m.TotalAmount.Equal(d("100.00")))
		assert.True(t, m.GrandTotal.Equal(d("90.00")))
		assert.True(t, m.PendingAmount.Equal(d("90.00")))
	})

	t.Run("duplicate customer conflicts", func(t *testing.T) {
		db := newTestDB(t)
		typeID, menuIDs := seedMenus(t, db, "40.00")

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		in := CreateMessInput{
			CustomerName: "Tariq",
			MobileNumber: "5560005",
			StartDate:    start,
			EndDate:      start.AddDate(0, 0, 7),
			MessTypeID:   typeID,
			MenuIDs:      menuIDs,
		}
		_, err := CreateMess(db, in)
		require.NoError(t, err)

		in.MobileNumber = "5560006"
		_, err = CreateMess(db, in)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		db := newTestDB(t)
		typeID, menuIDs := seedMenus(t, db, "40.00")

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := CreateMess(db, CreateMessInput{
			CustomerName: "Zayed",
			MobileNumber: "5560007",
			StartDate:    start,
			EndDate:      start.AddDate(0, 0, -1),
			MessTypeID:   typeID,
			MenuIDs:      menuIDs,
		})
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})
}

func TestUpdateMess(t *testing.T) {
	db := newTestDB(t)
	typeID, menuIDs := seedMenus(t, db, "50.00", "30.00")

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	m, err := CreateMess(db, CreateMessInput{
		CustomerName: "Hamad",
		MobileNumber: "5560010",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 14),
		MessTypeID:   typeID,
		MenuIDs:      menuIDs,
		PaidAmount:   d("60.00"),
		CashAmount:   d("60.00"),
	})
	require.NoError(t, err)
	require.True(t, m.TotalAmount.Equal(d("160.00")))

	t.Run("replacing menus recomputes totals", func(t *testing.T) {
		onlyFirst := []uint{menuIDs[0]}
		updated, err := UpdateMess(db, m.ID, UpdateMessInput{MenuIDs: &onlyFirst})
		require.NoError(t, err)
		assert.True(t, updated.TotalAmount.Equal(d("100.00")), "got %s", updated.TotalAmount)
		assert.True(t, updated.PendingAmount.Equal(d("40.00")), "got %s", updated.PendingAmount)
	})

	t.Run("extending the period recomputes totals", func(t *testing.T) {
		end := start.AddDate(0, 0, 21)
		updated, err := UpdateMess(db, m.ID, UpdateMessInput{EndDate: &end})
		require.NoError(t, err)
		assert.True(t, updated.TotalAmount.Equal(d("150.00")), "got %s", updated.TotalAmount)
	})
}

func TestRecordTransaction(t *testing.T) {
	db := newTestDB(t)
	typeID, menuIDs := seedMenus(t, db, "50.00")

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	m, err := CreateMess(db, CreateMessInput{
		CustomerName: "Ahmed",
		MobileNumber: "5560020",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 14),
		MessTypeID:   typeID,
		MenuIDs:      menuIDs,
	})
	require.NoError(t, err)
	require.True(t, m.PendingAmount.Equal(d("100.00")))

	t.Run("payment moves the balances", func(t *testing.T) {
		txn, err := RecordTransaction(db, m.ID, d("30.00"), d("20.00"), d("10.00"), models.PaymentCashBank)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusDue, txn.Status)

		var stored models.Mess
		require.NoError(t, db.First(&stored, m.ID).Error)
		assert.True(t, stored.PendingAmount.Equal(d("70.00")))
		assert.True(t, stored.PaidAmount.Equal(d("30.00")))
		assert.True(t, stored.CashAmount.Equal(d("20.00")))
		assert.True(t, stored.BankAmount.Equal(d("10.00")))
	})

	t.Run("settling payment completes", func(t *testing.T) {
		txn, err := RecordTransaction(db, m.ID, d("70.00"), d("70.00"), d("0"), models.PaymentCash)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)

		var stored models.Mess
		require.NoError(t, db.First(&stored, m.ID).Error)
		assert.True(t, stored.PendingAmount.IsZero())
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		_, err := RecordTransaction(db, m.ID, d("0"), d("0"), d("0"), models.PaymentCash)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})
}
