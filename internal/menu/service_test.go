package menu

import (
	"testing"

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

func seedDish(t *testing.T, db *gorm.DB, name, price string) *models.Dish {
	t.Helper()
	cat := models.Category{Name: "Mains-" + name}
	require.NoError(t, db.Create(&cat).Error)
	dish := models.Dish{Name: name, Price: d(price), CategoryID: cat.ID}
	require.NoError(t, db.Create(&dish).Error)
	return &dish
}

func TestMenuSubTotal(t *testing.T) {
	db := newTestDB(t)

	menu := models.Menu{Name: "Monday Lunch", DayOfWeek: models.Monday}
	require.NoError(t, db.Create(&menu).Error)

	rice := seedDish(t, db, "Steamed Rice", "3.50")
	curry := seedDish(t, db, "Chicken Curry", "8.00")

	t.Run("adding items accumulates the sub-total", func(t *testing.T) {
		_, err := AddItem(db, menu.ID, rice.ID, models.MealLunch)
		require.NoError(t, err)
		item, err := AddItem(db, menu.ID, curry.ID, models.MealLunch)
		require.NoError(t, err)

		var stored models.Menu
		require.NoError(t, db.First(&stored, menu.ID).Error)
		assert.True(t, stored.SubTotal.Equal(d("11.50")), "got %s", stored.SubTotal)

		t.Run("removing an item shrinks it back", func(t *testing.T) {
			require.NoError(t, RemoveItem(db, menu.ID, item.ID))
			require.NoError(t, db.First(&stored, menu.ID).Error)
			assert.True(t, stored.SubTotal.Equal(d("3.50")), "got %s", stored.SubTotal)
		})
	})

	t.Run("recalculate picks up a dish price change", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Dish{}).Where("id = ?", rice.ID).
			Update("price", d("4.00")).Error)

		require.NoError(t, RecalculateSubTotal(db, menu.ID))

		var stored models.Menu
		require.NoError(t, db.First(&stored, menu.ID).Error)
		assert.True(t, stored.SubTotal.Equal(d("4.00")), "got %s", stored.SubTotal)
	})

	t.Run("unknown dish is not found", func(t *testing.T) {
		_, err := AddItem(db, menu.ID, 99999, models.MealDinner)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusNotFound, fe.Code)
	})

	t.Run("foreign item removal is not found", func(t *testing.T) {
		other := models.Menu{Name: "Tuesday Lunch", DayOfWeek: models.Tuesday}
		require.NoError(t, db.Create(&other).Error)

		err := RemoveItem(db, other.ID, 1)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusNotFound, fe.Code)
	})
}
