package menu

import (
	"strconv"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMenuRequest struct {
	Name       string           `json:"name"`
	DayOfWeek  models.DayOfWeek `json:"day_of_week"`
	MessTypeID *uint            `json:"mess_type_id"`
	IsCustom   bool             `json:"is_custom"`
	CreatedBy  string           `json:"created_by"`
}

type UpdateMenuRequest struct {
	Name       *string           `json:"name"`
	DayOfWeek  *models.DayOfWeek `json:"day_of_week"`
	MessTypeID *uint             `json:"mess_type_id"`
	IsCustom   *bool             `json:"is_custom"`
}

type AddItemRequest struct {
	DishID   uint            `json:"dish_id"`
	MealType models.MealType `json:"meal_type"`
}

type CreateMessTypeRequest struct {
	Name models.MessTypeName `json:"name"`
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Items").Preload("Items.Dish").Preload("MessType").Order("name ASC")
		if mt := c.Query("mess_type_id"); mt != "" {
			q = q.Where("mess_type_id = ?", mt)
		}
		if day := c.Query("day_of_week"); day != "" {
			q = q.Where("day_of_week = ?", day)
		}
		if custom := c.Query("is_custom"); custom != "" {
			q = q.Where("is_custom = ?", custom == "true")
		}
		if by := c.Query("created_by"); by != "" {
			q = q.Where("created_by = ?", by)
		}
		var menus []models.Menu
		if err := q.Find(&menus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list menus")
		}
		return c.JSON(menus)
	}
}

func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var menu models.Menu
		if err := database.DB.Preload("Items").Preload("Items.Dish").Preload("MessType").
			First(&menu, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu not found")
		}
		return c.JSON(menu)
	}
}

func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMenuRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Menu name is required")
		}

		createdBy := body.CreatedBy
		if createdBy == "" {
			createdBy = "admin"
		}

		menu := models.Menu{
			Name:       body.Name,
			DayOfWeek:  body.DayOfWeek,
			MessTypeID: body.MessTypeID,
			IsCustom:   body.IsCustom,
			CreatedBy:  createdBy,
		}
		if err := database.DB.Create(&menu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create menu")
		}
		return c.Status(fiber.StatusCreated).JSON(menu)
	}
}

func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateMenuRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var menu models.Menu
		if err := database.DB.First(&menu, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu not found")
		}

		if body.Name != nil {
			menu.Name = *body.Name
		}
		if body.DayOfWeek != nil {
			menu.DayOfWeek = *body.DayOfWeek
		}
		if body.MessTypeID != nil {
			menu.MessTypeID = body.MessTypeID
		}
		if body.IsCustom != nil {
			menu.IsCustom = *body.IsCustom
		}

		if err := database.DB.Save(&menu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update menu")
		}
		return c.JSON(menu)
	}
}

func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var menu models.Menu
		if err := database.DB.First(&menu, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu not found")
		}
		if err := database.DB.Select("Items").Delete(&menu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete menu")
		}
		return c.JSON(fiber.Map{"message": "Menu deleted"})
	}
}

func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		menuID, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item, err := AddItem(database.DB, menuID, body.DishID, body.MealType)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

func RemoveItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		menuID, err := parseID(c, "id")
		if err != nil {
			return err
		}
		itemID, err := parseID(c, "itemId")
		if err != nil {
			return err
		}
		if err := RemoveItem(database.DB, menuID, itemID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Menu item removed"})
	}
}

func ListMessTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var types []models.MessType
		if err := database.DB.Find(&types).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list mess types")
		}
		return c.JSON(types)
	}
}

func CreateMessTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMessTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		switch body.Name {
		case models.MessTypeFullBoard, models.MessTypeBreakfastLunch, models.MessTypeBreakfastDinner, models.MessTypeLunchDinner:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Invalid mess type name")
		}

		mt := models.MessType{Name: body.Name}
		if err := database.DB.Create(&mt).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Mess type already exists")
		}
		return c.Status(fiber.StatusCreated).JSON(mt)
	}
}
