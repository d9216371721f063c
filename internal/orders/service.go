package orders

import (
	"encoding/json"
	"fmt"

	"restopos-backend/internal/credit"
	"restopos-backend/internal/customers"
	"restopos-backend/internal/delivery"
	"restopos-backend/internal/logger"
	"restopos-backend/internal/models"
	"restopos-backend/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemInput struct {
	DishName     string          `json:"dish_name"`
	Price        decimal.Decimal `json:"price"`
	SizeName     string          `json:"size_name"`
	CategoryName string          `json:"category_name"`
	Quantity     uint            `json:"quantity"`
	Variants     []string        `json:"variants"`
}

type CreateOrderInput struct {
	UserID              uint             `json:"user_id"`
	OrderType           models.OrderType `json:"order_type"`
	CustomerName        string           `json:"customer_name"`
	Address             string           `json:"address"`
	CustomerPhoneNumber string           `json:"customer_phone_number"`
	DeliveryCharge      decimal.Decimal  `json:"delivery_charge"`
	DeliveryDriverID    *uint            `json:"delivery_driver_id"`
	KitchenNote         string           `json:"kitchen_note"`
	OnlineOrderID       *uint            `json:"online_order_id"`
	ChairAmount         decimal.Decimal  `json:"chair_amount"`
	ChairDetails        json.RawMessage  `json:"chair_details"`
	Items               []ItemInput      `json:"items"`
	FOCProductIDs       []uint           `json:"foc_product_ids"`
}

type UpdateOrderInput struct {
	CustomerName        *string          `json:"customer_name"`
	Address             *string          `json:"address"`
	CustomerPhoneNumber *string          `json:"customer_phone_number"`
	DeliveryCharge      *decimal.Decimal `json:"delivery_charge"`
	DeliveryDriverID    *uint            `json:"delivery_driver_id"`
	KitchenNote         *string          `json:"kitchen_note"`
	OnlineOrderID       *uint            `json:"online_order_id"`
	ChairAmount         *decimal.Decimal `json:"chair_amount"`
	ChairDetails        json.RawMessage  `json:"chair_details"`
	IsScanned           *bool            `json:"is_scanned"`
	NewItems            []ItemInput      `json:"new_items"`
	FOCProductIDs       *[]uint          `json:"foc_product_ids"`
}

type UpdateStatusInput struct {
	Status        models.OrderStatus    `json:"status"`
	PaymentMethod *models.PaymentMethod `json:"payment_method"`
	CashAmount    decimal.Decimal       `json:"cash_amount"`
	BankAmount    decimal.Decimal       `json:"bank_amount"`
	CreditUserID  *uint                 `json:"credit_user_id"`
	OrderType     *models.OrderType     `json:"order_type"`
	OnlineOrderID *uint                 `json:"online_order_id"`
}

// itemsTotal sums price*quantity over the given items.
func itemsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// orderTotal is THE total formula: items plus delivery charge plus chair
// rental. Every mutation path funnels through it so the stored total never
// drifts from the item list.
func orderTotal(items []models.OrderItem, deliveryCharge, chairAmount decimal.Decimal) decimal.Decimal {
	return itemsTotal(items).Add(deliveryCharge).Add(chairAmount)
}

func buildItems(inputs []ItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Item quantity must be at least 1")
		}
		variants := "[]"
		if len(in.Variants) > 0 {
			raw, err := json.Marshal(in.Variants)
			if err != nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid item variants")
			}
			variants = string(raw)
		}
		items = append(items, models.OrderItem{
			DishName:     in.DishName,
			Price:        in.Price,
			SizeName:     in.SizeName,
			CategoryName: in.CategoryName,
			Quantity:     in.Quantity,
			Variants:     variants,
		})
	}
	return items, nil
}

// findFOCProducts resolves the full id set or rejects the write; a silent
// partial match would drop products the client asked for.
func findFOCProducts(tx *gorm.DB, ids []uint) ([]models.FOCProduct, error) {
	var focs []models.FOCProduct
	if err := tx.Find(&focs, ids).Error; err != nil {
		return nil, err
	}
	if len(focs) != len(ids) {
		return nil, fiber.NewError(fiber.StatusNotFound, "FOC product not found")
	}
	return focs, nil
}

func requireDeliveryFields(name, address, phone string) error {
	if name == "" || address == "" || phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Delivery orders require customer name, address and phone number")
	}
	return nil
}

// CreateOrder creates the order with its item snapshots, derives the total
// and the invoice number, then runs the fixed post-create chain: delivery
// record (for delivery orders), customer-details cache, notification.
func CreateOrder(db *gorm.DB, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "An order needs at least one item")
	}

	orderType := in.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDining
	}
	switch orderType {
	case models.OrderTypeTakeaway, models.OrderTypeDining, models.OrderTypeDelivery, models.OrderTypeOnlineDelivery:
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid order type")
	}

	if orderType == models.OrderTypeDelivery {
		if err := requireDeliveryFields(in.CustomerName, in.Address, in.CustomerPhoneNumber); err != nil {
			return nil, err
		}
	}

	items, err := buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	chairDetails := "[]"
	if len(in.ChairDetails) > 0 {
		chairDetails = string(in.ChairDetails)
	}

	order := models.Order{
		UserID:              in.UserID,
		Status:              models.OrderStatusPending,
		OrderType:           orderType,
		PaymentMethod:       models.PaymentCash,
		CustomerName:        in.CustomerName,
		Address:             in.Address,
		CustomerPhoneNumber: in.CustomerPhoneNumber,
		DeliveryCharge:      in.DeliveryCharge,
		DeliveryDriverID:    in.DeliveryDriverID,
		KitchenNote:         in.KitchenNote,
		OnlineOrderID:       in.OnlineOrderID,
		ChairAmount:         in.ChairAmount,
		ChairDetails:        chairDetails,
		Items:               items,
		TotalAmount:         orderTotal(items, in.DeliveryCharge, in.ChairAmount),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Invoice number needs the storage id, so it is stamped right
		// after the insert and never touched again.
		order.InvoiceNumber = fmt.Sprintf("%04d", order.ID)
		if err := tx.Model(&order).Update("invoice_number", order.InvoiceNumber).Error; err != nil {
			return err
		}

		if len(in.FOCProductIDs) > 0 {
			focs, err := findFOCProducts(tx, in.FOCProductIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&order).Association("FOCProducts").Replace(focs); err != nil {
				return err
			}
			order.FOCProducts = focs
		}

		if orderType == models.OrderTypeDelivery {
			if _, err := delivery.EnsureOrder(tx, order.ID, in.DeliveryDriverID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create order")
	}

	// Post-create chain, in this order: customer cache first, then the
	// notification. Both are best effort and never fail the order.
	if err := customers.EnsureDetails(db, &order); err != nil {
		logger.L().Warn("customer details cache skipped", zap.Uint("order_id", order.ID), zap.Error(err))
	}
	if err := notifications.NotifyOrderCreated(db, &order); err != nil {
		logger.L().Warn("order notification skipped", zap.Uint("order_id", order.ID), zap.Error(err))
	}

	return &order, nil
}

// UpdateOrder patches scalar fields, appends any new items flagged as
// newly added, and fully recomputes the total from the complete item set.
func UpdateOrder(db *gorm.DB, orderID uint, in UpdateOrderInput) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").Preload("FOCProducts").First(&order, orderID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, fiber.NewError(fiber.StatusConflict, "Delivered orders can not be modified")
	}

	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.Address != nil {
		order.Address = *in.Address
	}
	if in.CustomerPhoneNumber != nil {
		order.CustomerPhoneNumber = *in.CustomerPhoneNumber
	}
	if in.DeliveryCharge != nil {
		order.DeliveryCharge = *in.DeliveryCharge
	}
	if in.DeliveryDriverID != nil {
		order.DeliveryDriverID = in.DeliveryDriverID
	}
	if in.KitchenNote != nil {
		order.KitchenNote = *in.KitchenNote
	}
	if in.OnlineOrderID != nil {
		order.OnlineOrderID = in.OnlineOrderID
	}
	if in.ChairAmount != nil {
		order.ChairAmount = *in.ChairAmount
	}
	if len(in.ChairDetails) > 0 {
		order.ChairDetails = string(in.ChairDetails)
	}
	if in.IsScanned != nil {
		order.IsScanned = *in.IsScanned
	}

	newItems, err := buildItems(in.NewItems)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range newItems {
			newItems[i].OrderID = order.ID
			newItems[i].IsNewlyAdded = true
			if err := tx.Create(&newItems[i]).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, newItems[i])
		}

		if in.FOCProductIDs != nil {
			var focs []models.FOCProduct
			if len(*in.FOCProductIDs) > 0 {
				var err error
				if focs, err = findFOCProducts(tx, *in.FOCProductIDs); err != nil {
					return err
				}
			}
			if err := tx.Model(&order).Association("FOCProducts").Replace(focs); err != nil {
				return err
			}
			order.FOCProducts = focs
		}

		order.TotalAmount = orderTotal(order.Items, order.DeliveryCharge, order.ChairAmount)
		return tx.Save(&order).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not update order")
	}

	return &order, nil
}

// RemoveItem deletes one item and recomputes the total. Removing the last
// remaining item deletes the whole order instead: an order with no items
// has no reason to exist.
func RemoveItem(db *gorm.DB, orderID, itemID uint) (*models.Order, bool, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, false, fiber.NewError(fiber.StatusNotFound, "Order not found")
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, false, fiber.NewError(fiber.StatusConflict, "Delivered orders can not be modified")
	}

	idx := -1
	for i, it := range order.Items {
		if it.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false, fiber.NewError(fiber.StatusNotFound, "Order item not found on this order")
	}

	if len(order.Items) == 1 {
		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Select(clause.Associations).Delete(&order).Error
		})
		if err != nil {
			return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Could not delete order")
		}
		return nil, true, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, itemID).Error; err != nil {
			return err
		}
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
		order.TotalAmount = orderTotal(order.Items, order.DeliveryCharge, order.ChairAmount)
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Could not remove order item")
	}

	return &order, false, nil
}

// RecalculateTotal rereads the item list and rewrites the stored total.
// Pure function of current child state, safe to call any number of times.
func RecalculateTotal(db *gorm.DB, order *models.Order) error {
	var items []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}
	order.Items = items
	order.TotalAmount = orderTotal(items, order.DeliveryCharge, order.ChairAmount)
	return db.Model(order).Update("total_amount", order.TotalAmount).Error
}

// UpdateStatus moves the order through its lifecycle. Delivering requires
// a payment method; a credit payment additionally links the order to the
// credit account and books the total onto its due balance, atomically.
func UpdateStatus(db *gorm.DB, orderID uint, in UpdateStatusInput) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, fiber.NewError(fiber.StatusConflict, "Delivered orders can not be modified")
	}

	switch in.Status {
	case models.OrderStatusPending, models.OrderStatusApproved, models.OrderStatusCancelled, models.OrderStatusDelivered:
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid order status")
	}

	if in.Status == models.OrderStatusDelivered && in.PaymentMethod == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Payment method is required to mark an order delivered")
	}

	if in.OrderType != nil {
		if *in.OrderType == models.OrderTypeDelivery {
			if err := requireDeliveryFields(order.CustomerName, order.Address, order.CustomerPhoneNumber); err != nil {
				return nil, err
			}
		}
		order.OrderType = *in.OrderType
	}
	if in.OnlineOrderID != nil {
		order.OnlineOrderID = in.OnlineOrderID
	}

	if in.PaymentMethod != nil {
		split, err := NormalizeSplit(db, *in.PaymentMethod, in.CashAmount, in.BankAmount, order.TotalAmount, in.CreditUserID)
		if err != nil {
			return nil, err
		}
		order.PaymentMethod = *in.PaymentMethod
		order.CashAmount = split.Cash
		order.BankAmount = split.Bank
		order.CreditAmount = split.Credit
		order.CreditUserID = split.CreditUserID
	}

	order.Status = in.Status

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if order.PaymentMethod == models.PaymentCredit && order.CreditUserID != nil {
			var link models.CreditOrder
			res := tx.Where("order_id = ?", order.ID).First(&link)
			if res.Error == nil {
				return nil // already billed, do not double the due
			}
			if err := tx.Create(&models.CreditOrder{
				OrderID:      order.ID,
				CreditUserID: *order.CreditUserID,
			}).Error; err != nil {
				return err
			}

			var user models.CreditUser
			if err := tx.First(&user, *order.CreditUserID).Error; err != nil {
				return err
			}
			return credit.AddToTotalDue(tx, &user, order.TotalAmount)
		}

		if in.OrderType != nil && *in.OrderType == models.OrderTypeDelivery {
			_, err := delivery.EnsureOrder(tx, order.ID, order.DeliveryDriverID)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not update order status")
	}

	return &order, nil
}

// CancelOrder rejects both the delivered terminal state and a repeat
// cancellation, so the caller always learns the order was already settled.
func CancelOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, fiber.NewError(fiber.StatusConflict, "Delivered orders can not be cancelled")
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, fiber.NewError(fiber.StatusConflict, "Order is already cancelled")
	}

	order.Status = models.OrderStatusCancelled
	if err := db.Save(&order).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not cancel order")
	}
	return &order, nil
}

type ChangeTypeInput struct {
	OrderType           models.OrderType `json:"order_type"`
	CustomerName        *string          `json:"customer_name"`
	Address             *string          `json:"address"`
	CustomerPhoneNumber *string          `json:"customer_phone_number"`
	DeliveryDriverID    *uint            `json:"delivery_driver_id"`
}

// ChangeOrderType switches the channel. Switching to delivery validates
// the contact fields and gets-or-creates the driver-workflow record,
// which is returned alongside the order.
func ChangeOrderType(db *gorm.DB, orderID uint, in ChangeTypeInput) (*models.Order, *models.DeliveryOrder, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, nil, fiber.NewError(fiber.StatusConflict, "Delivered orders can not be modified")
	}

	switch in.OrderType {
	case models.OrderTypeTakeaway, models.OrderTypeDining, models.OrderTypeDelivery, models.OrderTypeOnlineDelivery:
	default:
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid order type")
	}

	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.Address != nil {
		order.Address = *in.Address
	}
	if in.CustomerPhoneNumber != nil {
		order.CustomerPhoneNumber = *in.CustomerPhoneNumber
	}
	if in.DeliveryDriverID != nil {
		order.DeliveryDriverID = in.DeliveryDriverID
	}

	if in.OrderType == models.OrderTypeDelivery {
		if err := requireDeliveryFields(order.CustomerName, order.Address, order.CustomerPhoneNumber); err != nil {
			return nil, nil, err
		}
	}
	order.OrderType = in.OrderType

	var deliveryOrder *models.DeliveryOrder
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		if in.OrderType == models.OrderTypeDelivery {
			rec, err := delivery.EnsureOrder(tx, order.ID, order.DeliveryDriverID)
			if err != nil {
				return err
			}
			deliveryOrder = rec
		}
		return nil
	})
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not change order type")
	}

	return &order, deliveryOrder, nil
}
