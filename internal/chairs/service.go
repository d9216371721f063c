package chairs

import (
	"time"

	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// overlapping returns the confirmed bookings for a chair that intersect
// [start, end) with strict interval overlap, excluding one booking id
// (zero to exclude none).
func overlapping(db *gorm.DB, chairID uint, start, end time.Time, excludeID uint) ([]models.ChairBooking, error) {
	var conflicts []models.ChairBooking
	q := db.Where("chair_id = ? AND status = ? AND start_time < ? AND end_time > ?",
		chairID, models.BookingConfirmed, end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// CheckAvailability reports whether a chair is free for the range and,
// when it is not, which confirmed bookings are in the way.
func CheckAvailability(db *gorm.DB, chairID uint, start, end time.Time) (bool, []models.ChairBooking, error) {
	if !end.After(start) {
		return false, nil, fiber.NewError(fiber.StatusBadRequest, "End time must be after start time")
	}
	conflicts, err := overlapping(db, chairID, start, end, 0)
	if err != nil {
		return false, nil, err
	}
	return len(conflicts) == 0, conflicts, nil
}

// validate enforces the two booking rules: a sane time range and no
// overlap with any other confirmed booking of the same chair.
func validate(db *gorm.DB, b *models.ChairBooking) error {
	if !b.EndTime.After(b.StartTime) {
		return fiber.NewError(fiber.StatusBadRequest, "End time must be after start time")
	}
	if b.Status != models.BookingConfirmed {
		return nil
	}
	conflicts, err := overlapping(db, b.ChairID, b.StartTime, b.EndTime, b.ID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return fiber.NewError(fiber.StatusConflict, "Chair is already booked for this time range")
	}
	return nil
}

type CreateBookingInput struct {
	ChairID      uint            `json:"chair_id"`
	CustomerName string          `json:"customer_name"`
	CustomerMob  string          `json:"customer_mob"`
	BookedDate   time.Time       `json:"booked_date"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Amount       decimal.Decimal `json:"amount"`
}

func CreateBooking(db *gorm.DB, in CreateBookingInput) (*models.ChairBooking, error) {
	var chair models.Chair
	if err := db.First(&chair, in.ChairID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Chair not found")
	}
	if in.CustomerName == "" || in.CustomerMob == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Customer name and mobile number are required")
	}

	booking := models.ChairBooking{
		ChairID:      in.ChairID,
		CustomerName: in.CustomerName,
		CustomerMob:  in.CustomerMob,
		BookedDate:   in.BookedDate,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Amount:       in.Amount,
		Status:       models.BookingPending,
	}
	if err := validate(db, &booking); err != nil {
		return nil, err
	}
	if err := db.Create(&booking).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create booking")
	}
	return &booking, nil
}

// Confirm moves a pending booking to confirmed, re-checking the overlap
// rule at confirmation time.
func Confirm(db *gorm.DB, bookingID uint) (*models.ChairBooking, error) {
	var booking models.ChairBooking
	if err := db.First(&booking, bookingID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Booking not found")
	}
	if booking.Status != models.BookingPending {
		return nil, fiber.NewError(fiber.StatusConflict, "Only a pending booking can be confirmed")
	}

	booking.Status = models.BookingConfirmed
	if err := validate(db, &booking); err != nil {
		return nil, err
	}
	if err := db.Save(&booking).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not confirm booking")
	}
	return &booking, nil
}

// Cancel works from any non-completed state. Completed is terminal.
func Cancel(db *gorm.DB, bookingID uint) (*models.ChairBooking, error) {
	var booking models.ChairBooking
	if err := db.First(&booking, bookingID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Booking not found")
	}
	if booking.Status == models.BookingCompleted {
		return nil, fiber.NewError(fiber.StatusConflict, "A completed booking can not be cancelled")
	}

	booking.Status = models.BookingCancelled
	if err := db.Save(&booking).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not cancel booking")
	}
	return &booking, nil
}

type UpdateBookingInput struct {
	CustomerName *string               `json:"customer_name"`
	CustomerMob  *string               `json:"customer_mob"`
	BookedDate   *time.Time            `json:"booked_date"`
	StartTime    *time.Time            `json:"start_time"`
	EndTime      *time.Time            `json:"end_time"`
	Amount       *decimal.Decimal      `json:"amount"`
	Status       *models.BookingStatus `json:"status"`
}

// allowedTransition is the general-patch rule set. Confirm and Cancel
// have their own entry points; re-opening a cancelled booking back to
// pending happens here.
func allowedTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.BookingPending:
		return to == models.BookingConfirmed || to == models.BookingCancelled
	case models.BookingConfirmed:
		return to == models.BookingCompleted || to == models.BookingCancelled
	case models.BookingCancelled:
		return to == models.BookingPending
	case models.BookingCompleted:
		return false
	}
	return false
}

func UpdateBooking(db *gorm.DB, bookingID uint, in UpdateBookingInput) (*models.ChairBooking, error) {
	var booking models.ChairBooking
	if err := db.First(&booking, bookingID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Booking not found")
	}
	if booking.Status == models.BookingCompleted {
		return nil, fiber.NewError(fiber.StatusConflict, "A completed booking can not be modified")
	}

	if in.Status != nil {
		switch *in.Status {
		case models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
		default:
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid booking status")
		}
		if !allowedTransition(booking.Status, *in.Status) {
			return nil, fiber.NewError(fiber.StatusConflict, "Invalid booking status transition")
		}
		booking.Status = *in.Status
	}

	if in.CustomerName != nil {
		booking.CustomerName = *in.CustomerName
	}
	if in.CustomerMob != nil {
		booking.CustomerMob = *in.CustomerMob
	}
	if in.BookedDate != nil {
		booking.BookedDate = *in.BookedDate
	}
	if in.StartTime != nil {
		booking.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		booking.EndTime = *in.EndTime
	}
	if in.Amount != nil {
		booking.Amount = *in.Amount
	}

	if err := validate(db, &booking); err != nil {
		return nil, err
	}
	if err := db.Save(&booking).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not update booking")
	}
	return &booking, nil
}
