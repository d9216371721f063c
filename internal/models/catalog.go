package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dish is the live catalog entry. Orders never reference it directly:
// order items carry a snapshot of name/price taken at order time.
type Dish struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null;index" json:"name"`
	ArabicName  string          `gorm:"size:200" json:"arabic_name"`
	Description string          `gorm:"size:500" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // base price when no size applies
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID" json:"category"`
	Sizes       []DishSize      `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"sizes"`
	Variants    []DishVariant   `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type DishSize struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	DishID uint            `gorm:"index;not null" json:"dish_id"`
	Size   string          `gorm:"size:20;not null" json:"size"`
	Price  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

type DishVariant struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	DishID uint   `gorm:"index;not null" json:"dish_id"`
	Name   string `gorm:"size:200;not null" json:"name"`
}

// OnlineOrder is a third-party delivery platform (Talabat, Snoonu, Rafeeq).
// The percentage is the commission the platform keeps.
type OnlineOrder struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
	Reference  string          `gorm:"size:255" json:"reference"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// FOCProduct is a free-of-cost product line, tracked for inventory and
// reporting only. It never contributes to an order's total.
type FOCProduct struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Quantity uint   `gorm:"not null" json:"quantity"`
}
