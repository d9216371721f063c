package orders

import (
	"strconv"
	"time"

	"restopos-backend/internal/auth"
	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Items").Preload("FOCProducts").Preload("OnlineOrder").
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if orderType := c.Query("order_type"); orderType != "" {
			q = q.Where("order_type = ?", orderType)
		}
		if date := c.Query("date"); date != "" {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Date must be YYYY-MM-DD")
			}
			q = q.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
		}

		var list []models.Order
		if err := q.Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}
		return c.JSON(list)
	}
}

func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var order models.Order
		if err := database.DB.Preload("Items").Preload("FOCProducts").Preload("OnlineOrder").
			First(&order, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return c.JSON(order)
	}
}

func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
			body.UserID = userID
		}

		order, err := CreateOrder(database.DB, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateOrderInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := UpdateOrder(database.DB, id, body)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var order models.Order
		if err := database.DB.First(&order, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		if order.Status == models.OrderStatusDelivered {
			return fiber.NewError(fiber.StatusConflict, "Delivered orders can not be deleted")
		}
		if err := database.DB.Select(clause.Associations).Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete order")
		}
		return c.JSON(fiber.Map{"message": "Order deleted"})
	}
}

func RemoveItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := parseID(c, "id")
		if err != nil {
			return err
		}
		itemID, err := parseID(c, "itemId")
		if err != nil {
			return err
		}

		order, orderDeleted, err := RemoveItem(database.DB, orderID, itemID)
		if err != nil {
			return err
		}
		if orderDeleted {
			return c.JSON(fiber.Map{"message": "Last item removed, order deleted"})
		}
		return c.JSON(order)
	}
}

func RecalculateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var order models.Order
		if err := database.DB.First(&order, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		if err := RecalculateTotal(database.DB, &order); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not recalculate total")
		}
		return c.JSON(order)
	}
}

func UpdateStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateStatusInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := UpdateStatus(database.DB, id, body)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

func CancelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		order, err := CancelOrder(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

func ChangeTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var body ChangeTypeInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, deliveryOrder, err := ChangeOrderType(database.DB, id, body)
		if err != nil {
			return err
		}
		resp := fiber.Map{"order": order}
		if deliveryOrder != nil {
			resp["delivery_order"] = deliveryOrder
		}
		return c.JSON(resp)
	}
}
