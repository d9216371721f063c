package delivery

import (
	"strconv"

	"restopos-backend/internal/auth"
	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateRequest struct {
	DriverID *uint                  `json:"driver_id"`
	Status   *models.DeliveryStatus `json:"status"`
}

func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Order").Preload("Order.Items").Preload("Driver").
			Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if driver := c.Query("driver_id"); driver != "" {
			q = q.Where("driver_id = ?", driver)
		}
		var list []models.DeliveryOrder
		if err := q.Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list delivery orders")
		}
		return c.JSON(list)
	}
}

// MyDeliveriesHandler lists the authenticated driver's open assignments.
func MyDeliveriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		driverID, ok := c.Locals(auth.CtxUserIDKey).(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Driver identity missing")
		}

		var list []models.DeliveryOrder
		if err := database.DB.Preload("Order").Preload("Order.Items").
			Where("driver_id = ? AND status IN ?", driverID,
				[]models.DeliveryStatus{models.DeliveryStatusPending, models.DeliveryStatusAccepted}).
			Order("created_at ASC").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list deliveries")
		}
		return c.JSON(list)
	}
}

func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}
		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var rec models.DeliveryOrder
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Delivery order not found")
		}

		if body.DriverID != nil {
			var driver models.User
			if err := database.DB.Where("id = ? AND role = ?", *body.DriverID, models.RoleDriver).
				First(&driver).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Driver not found")
			}
			rec.DriverID = body.DriverID
		}
		if body.Status != nil {
			switch *body.Status {
			case models.DeliveryStatusPending, models.DeliveryStatusAccepted,
				models.DeliveryStatusDelivered, models.DeliveryStatusCancelled:
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Invalid delivery status")
			}
			rec.Status = *body.Status
		}

		if err := database.DB.Save(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update delivery order")
		}
		return c.JSON(rec)
	}
}
