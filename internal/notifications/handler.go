package notifications

import (
	"strconv"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Notification
		if err := database.DB.Order("created_at DESC").Limit(100).Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list notifications")
		}
		return c.JSON(list)
	}
}

func UnreadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Notification
		if err := database.DB.Where("is_read = ?", false).
			Order("created_at DESC").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list notifications")
		}
		return c.JSON(fiber.Map{
			"count":         len(list),
			"notifications": list,
		})
	}
}

func MarkAsReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var n models.Notification
		if err := database.DB.First(&n, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}
		if err := database.DB.Model(&n).Update("is_read", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not mark notification as read")
		}
		return c.JSON(n)
	}
}

// MarkAllAsReadHandler clears the unread badge in one call.
func MarkAllAsReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Model(&models.Notification{}).
			Where("is_read = ?", false).Update("is_read", true)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not mark notifications as read")
		}
		return c.JSON(fiber.Map{"updated": res.RowsAffected})
	}
}
