package chairs

import (
	"strconv"
	"time"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateChairRequest struct {
	ChairName string          `json:"chair_name"`
	Amount    decimal.Decimal `json:"amount"`
}

type AvailabilityRequest struct {
	ChairID   uint      `json:"chair_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func ListChairsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var chairs []models.Chair
		if err := database.DB.Order("chair_name ASC").Find(&chairs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list chairs")
		}
		return c.JSON(chairs)
	}
}

func CreateChairHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateChairRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ChairName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Chair name is required")
		}

		chair := models.Chair{ChairName: body.ChairName, Amount: body.Amount, IsActive: true}
		if err := database.DB.Create(&chair).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create chair")
		}
		return c.Status(fiber.StatusCreated).JSON(chair)
	}
}

func DeleteChairHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var chair models.Chair
		if err := database.DB.First(&chair, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Chair not found")
		}
		if err := database.DB.Delete(&chair).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete chair")
		}
		return c.JSON(fiber.Map{"message": "Chair deleted"})
	}
}

func ListBookingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Chair").Order("start_time DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if chairID := c.Query("chair_id"); chairID != "" {
			q = q.Where("chair_id = ?", chairID)
		}
		var bookings []models.ChairBooking
		if err := q.Find(&bookings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list bookings")
		}
		return c.JSON(bookings)
	}
}

func GetBookingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var booking models.ChairBooking
		if err := database.DB.Preload("Chair").First(&booking, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return c.JSON(booking)
	}
}

func CreateBookingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBookingInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		booking, err := CreateBooking(database.DB, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(booking)
	}
}

func UpdateBookingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body UpdateBookingInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		booking, err := UpdateBooking(database.DB, id, body)
		if err != nil {
			return err
		}
		return c.JSON(booking)
	}
}

func ConfirmBookingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		booking, err := Confirm(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(booking)
	}
}

func CancelBookingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		booking, err := Cancel(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(booking)
	}
}

func CheckAvailabilityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AvailabilityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		available, conflicts, err := CheckAvailability(database.DB, body.ChairID, body.StartTime, body.EndTime)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"available": available,
			"conflicts": conflicts,
		})
	}
}
