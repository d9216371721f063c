package catalog

import (
	"strconv"
	"strings"

	"restopos-backend/internal/database"
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

type SizeInput struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

type DishRequest struct {
	Name        string          `json:"name"`
	ArabicName  string          `json:"arabic_name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
	Sizes       []SizeInput     `json:"sizes"`
	Variants    []string        `json:"variants"`
}

type OnlineOrderRequest struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Reference  string          `json:"reference"`
}

type FOCProductRequest struct {
	Name     string `json:"name"`
	Quantity uint   `json:"quantity"`
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cats []models.Category
		if err := database.DB.Order("name ASC").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}
		return c.JSON(cats)
	}
}

func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		cat := models.Category{Name: body.Name}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Category already exists")
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var cat models.Category
		if err := database.DB.First(&cat, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var dishCount int64
		database.DB.Model(&models.Dish{}).Where("category_id = ?", id).Count(&dishCount)
		if dishCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Category still has dishes")
		}

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}
		return c.JSON(fiber.Map{"message": "Category deleted"})
	}
}

func ListDishesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Category").Preload("Sizes").Preload("Variants").Order("name ASC")
		if cat := c.Query("category_id"); cat != "" {
			q = q.Where("category_id = ?", cat)
		}
		var dishes []models.Dish
		if err := q.Find(&dishes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list dishes")
		}
		return c.JSON(dishes)
	}
}

// SearchDishesHandler is the POS quick lookup, matching both the English
// and the Arabic name.
func SearchDishesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		term := strings.TrimSpace(c.Query("search"))
		if term == "" {
			return fiber.NewError(fiber.StatusBadRequest, "search query parameter is required")
		}

		pattern := "%" + term + "%"
		var dishes []models.Dish
		if err := database.DB.Preload("Category").Preload("Sizes").Preload("Variants").
			Where("name LIKE ? OR arabic_name LIKE ?", pattern, pattern).
			Limit(25).Find(&dishes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not search dishes")
		}
		return c.JSON(dishes)
	}
}

func GetDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var dish models.Dish
		if err := database.DB.Preload("Category").Preload("Sizes").Preload("Variants").
			First(&dish, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dish not found")
		}
		return c.JSON(dish)
	}
}

func CreateDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DishRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" || body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Dish name and category are required")
		}
		var cat models.Category
		if err := database.DB.First(&cat, body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		dish := models.Dish{
			Name:        body.Name,
			ArabicName:  body.ArabicName,
			Description: body.Description,
			Price:       body.Price,
			CategoryID:  body.CategoryID,
		}
		for _, s := range body.Sizes {
			dish.Sizes = append(dish.Sizes, models.DishSize{Size: s.Size, Price: s.Price})
		}
		for _, v := range body.Variants {
			dish.Variants = append(dish.Variants, models.DishVariant{Name: v})
		}

		if err := database.DB.Create(&dish).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create dish")
		}
		return c.Status(fiber.StatusCreated).JSON(dish)
	}
}

func UpdateDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body DishRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var dish models.Dish
		if err := database.DB.Preload("Sizes").Preload("Variants").First(&dish, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dish not found")
		}

		if body.Name != "" {
			dish.Name = body.Name
		}
		if body.ArabicName != "" {
			dish.ArabicName = body.ArabicName
		}
		if body.Description != "" {
			dish.Description = body.Description
		}
		if !body.Price.IsZero() {
			dish.Price = body.Price
		}
		if body.CategoryID != 0 {
			var cat models.Category
			if err := database.DB.First(&cat, body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Category not found")
			}
			dish.CategoryID = body.CategoryID
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if body.Sizes != nil {
				if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.DishSize{}).Error; err != nil {
					return err
				}
				dish.Sizes = nil
				for _, s := range body.Sizes {
					dish.Sizes = append(dish.Sizes, models.DishSize{DishID: dish.ID, Size: s.Size, Price: s.Price})
				}
			}
			if body.Variants != nil {
				if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.DishVariant{}).Error; err != nil {
					return err
				}
				dish.Variants = nil
				for _, v := range body.Variants {
					dish.Variants = append(dish.Variants, models.DishVariant{DishID: dish.ID, Name: v})
				}
			}
			return tx.Save(&dish).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update dish")
		}
		return c.JSON(dish)
	}
}

func DeleteDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var dish models.Dish
		if err := database.DB.First(&dish, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dish not found")
		}
		if err := database.DB.Select("Sizes", "Variants").Delete(&dish).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete dish")
		}
		return c.JSON(fiber.Map{"message": "Dish deleted"})
	}
}

func ListOnlineOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var platforms []models.OnlineOrder
		if err := database.DB.Order("name ASC").Find(&platforms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list online platforms")
		}
		return c.JSON(platforms)
	}
}

func CreateOnlineOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OnlineOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Platform name is required")
		}

		platform := models.OnlineOrder{Name: body.Name, Percentage: body.Percentage, Reference: body.Reference}
		if err := database.DB.Create(&platform).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create online platform")
		}
		return c.Status(fiber.StatusCreated).JSON(platform)
	}
}

func ListFOCProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var focs []models.FOCProduct
		if err := database.DB.Find(&focs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list FOC products")
		}
		return c.JSON(focs)
	}
}

func CreateFOCProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FOCProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}

		foc := models.FOCProduct{Name: body.Name, Quantity: body.Quantity}
		if err := database.DB.Create(&foc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create FOC product")
		}
		return c.Status(fiber.StatusCreated).JSON(foc)
	}
}
