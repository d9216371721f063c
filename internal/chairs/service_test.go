package chairs

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

func seedChair(t *testing.T, db *gorm.DB, name string) *models.Chair {
	t.Helper()
	chair := models.Chair{ChairName: name, Amount: decimal.RequireFromString("20.00"), IsActive: true}
	require.NoError(t, db.Create(&chair).Error)
	return &chair
}

func at(hour int) time.Time {
	return time.Date(2026, 7, 1, hour, 0, 0, 0, time.UTC)
}

func book(t *testing.T, db *gorm.DB, chairID uint, from, to int) *models.ChairBooking {
	t.Helper()
	booking, err := CreateBooking(db, CreateBookingInput{
		ChairID:      chairID,
		CustomerName: "Guest",
		CustomerMob:  "5570000",
		BookedDate:   at(0),
		StartTime:    at(from),
		EndTime:      at(to),
		Amount:       decimal.RequireFromString("20.00"),
	})
	require.NoError(t, err)
	return booking
}

func TestCreateBooking(t *testing.T) {
	db := newTestDB(t)
	chair := seedChair(t, db, "Majlis 1")

	t.Run("starts pending", func(t *testing.T) {
		booking := book(t, db, chair.ID, 10, 12)
		assert.Equal(t, models.BookingPending, booking.Status)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := CreateBooking(db, CreateBookingInput{
			ChairID:      chair.ID,
			CustomerName: "Guest",
			CustomerMob:  "5570000",
			StartTime:    at(12),
			EndTime:      at(12),
		})
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})

	t.Run("unknown chair is not found", func(t *testing.T) {
		_, err := CreateBooking(db, CreateBookingInput{
			ChairID:      99999,
			CustomerName: "Guest",
			CustomerMob:  "5570000",
			StartTime:    at(10),
			EndTime:      at(11),
		})
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusNotFound, fe.Code)
	})
}

func TestOverlapRule(t *testing.T) {
	db := newTestDB(t)
	chair := seedChair(t, db, "Majlis 2")
	other := seedChair(t, db, "Majlis 3")

	first := book(t, db, chair.ID, 10, 12)
	_, err := Confirm(db, first.ID)
	require.NoError(t, err)

	t.Run("overlapping confirm is rejected", func(t *testing.T) {
		second := book(t, db, chair.ID, 11, 13)
		_, err := Confirm(db, second.ID)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})

	t.Run("touching intervals do not overlap", func(t *testing.T) {
		adjacent := book(t, db, chair.ID, 12, 14)
		confirmed, err := Confirm(db, adjacent.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	})

	t.Run("another chair is unaffected", func(t *testing.T) {
		elsewhere := book(t, db, other.ID, 10, 12)
		_, err := Confirm(db, elsewhere.ID)
		require.NoError(t, err)
	})

	t.Run("a booking does not conflict with itself", func(t *testing.T) {
		name := "Renamed Guest"
		_, err := UpdateBooking(db, first.ID, UpdateBookingInput{CustomerName: &name})
		require.NoError(t, err)
	})

	t.Run("availability reports the conflicting set", func(t *testing.T) {
		available, conflicts, err := CheckAvailability(db, chair.ID, at(11), at(13))
		require.NoError(t, err)
		assert.False(t, available)
		require.Len(t, conflicts, 2)

		available, conflicts, err = CheckAvailability(db, chair.ID, at(14), at(16))
		require.NoError(t, err)
		assert.True(t, available)
		assert.Empty(t, conflicts)
	})

	t.Run("pending bookings never block availability", func(t *testing.T) {
		free := seedChair(t, db, "Majlis 4")
		book(t, db, free.ID, 10, 12)

		available, _, err := CheckAvailability(db, free.ID, at(10), at(12))
		require.NoError(t, err)
		assert.True(t, available)
	})
}

func TestBookingLifecycle(t *testing.T) {
	db := newTestDB(t)
	chair := seedChair(t, db, "Majlis 5")

	t.Run("only pending can be confirmed", func(t *testing.T) {
		booking := book(t, db, chair.ID, 8, 9)
		_, err := Cancel(db, booking.ID)
		require.NoError(t, err)

		_, err = Confirm(db, booking.ID)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})

	t.Run("cancelled can reopen to pending", func(t *testing.T) {
		booking := book(t, db, chair.ID, 9, 10)
		_, err := Cancel(db, booking.ID)
		require.NoError(t, err)

		pending := models.BookingPending
		reopened, err := UpdateBooking(db, booking.ID, UpdateBookingInput{Status: &pending})
		require.NoError(t, err)
		assert.Equal(t, models.BookingPending, reopened.Status)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		booking := book(t, db, chair.ID, 14, 15)
		_, err := Confirm(db, booking.ID)
		require.NoError(t, err)

		completed := models.BookingCompleted
		_, err = UpdateBooking(db, booking.ID, UpdateBookingInput{Status: &completed})
		require.NoError(t, err)

		// Every further change is rejected.
		_, err = Cancel(db, booking.ID)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)

		pending := models.BookingPending
		_, err = UpdateBooking(db, booking.ID, UpdateBookingInput{Status: &pending})
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)

		name := "Someone Else"
		_, err = UpdateBooking(db, booking.ID, UpdateBookingInput{CustomerName: &name})
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})

	t.Run("pending can not jump to completed", func(t *testing.T) {
		booking := book(t, db, chair.ID, 16, 17)
		completed := models.BookingCompleted
		_, err := UpdateBooking(db, booking.ID, UpdateBookingInput{Status: &completed})
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})
}
