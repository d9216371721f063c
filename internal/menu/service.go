package menu

import (
	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecalculateSubTotal rewrites a menu's derived sub-total from its items'
// current dish prices. Fires on every menu item write; menu saves do not
// cascade back into items, so no recursion guard is needed.
func RecalculateSubTotal(db *gorm.DB, menuID uint) error {
	var items []models.MenuItem
	if err := db.Preload("Dish").Where("menu_id = ?", menuID).Find(&items).Error; err != nil {
		return err
	}

	subTotal := decimal.Zero
	for _, it := range items {
		subTotal = subTotal.Add(it.Dish.Price)
	}

	return db.Model(&models.Menu{}).Where("id = ?", menuID).
		Update("sub_total", subTotal).Error
}

// AddItem attaches a dish to a menu and refreshes the sub-total, both or
// neither.
func AddItem(db *gorm.DB, menuID, dishID uint, mealType models.MealType) (*models.MenuItem, error) {
	var menu models.Menu
	if err := db.First(&menu, menuID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Menu not found")
	}
	var dish models.Dish
	if err := db.First(&dish, dishID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Dish not found")
	}

	item := models.MenuItem{MenuID: menuID, DishID: dishID, MealType: mealType}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return RecalculateSubTotal(tx, menuID)
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not add menu item")
	}
	item.Dish = dish
	return &item, nil
}

// RemoveItem detaches a dish from a menu and refreshes the sub-total.
func RemoveItem(db *gorm.DB, menuID, itemID uint) error {
	var item models.MenuItem
	if err := db.Where("id = ? AND menu_id = ?", itemID, menuID).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Menu item not found on this menu")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return RecalculateSubTotal(tx, menuID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not remove menu item")
	}
	return nil
}
