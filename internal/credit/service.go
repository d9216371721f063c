package credit

import (
	"time"

	"restopos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// refreshActive recomputes the derived activity flag. An account is
// frozen the moment its due balance reaches the credit limit.
func refreshActive(u *models.CreditUser) {
	u.IsActive = u.TotalDue.LessThan(u.LimitAmount)
}

// AddToTotalDue books a new order amount against the account and
// re-evaluates the activity flag.
func AddToTotalDue(db *gorm.DB, user *models.CreditUser, amount decimal.Decimal) error {
	user.TotalDue = user.TotalDue.Add(amount)
	refreshActive(user)
	return db.Save(user).Error
}

// MakePayment settles part of the due balance. Payments larger than the
// outstanding due are clamped so the balance never goes negative. The due
// date restarts from the payment moment.
func MakePayment(db *gorm.DB, user *models.CreditUser, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "Payment amount must be positive")
	}
	if amount.GreaterThan(user.TotalDue) {
		amount = user.TotalDue
	}
	user.TotalDue = user.TotalDue.Sub(amount)
	user.DueDate = time.Now()
	refreshActive(user)
	return db.Save(user).Error
}

// RecordPayment writes a payment transaction and decrements the account's
// due balance by the received amount, unclamped. The transaction status is
// evaluated from the balance as it stood before the decrement: "due" when
// something was outstanding going in, "completed" otherwise.
func RecordPayment(db *gorm.DB, userID uint, received, cash, bank decimal.Decimal, method models.PaymentMethod) (*models.CreditTransaction, error) {
	var user models.CreditUser
	if err := db.First(&user, userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Credit user not found")
	}

	status := models.TransactionStatusCompleted
	if user.TotalDue.GreaterThan(decimal.Zero) {
		status = models.TransactionStatusDue
	}
	remaining := user.TotalDue.Sub(received)

	txn := models.CreditTransaction{
		Date:           time.Now(),
		ReceivedAmount: received,
		CashAmount:     cash,
		BankAmount:     bank,
		PaymentMethod:  method,
		Status:         status,
		CreditUserID:   user.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		user.TotalDue = remaining
		refreshActive(&user)
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not record payment")
	}
	return &txn, nil
}

// FindActiveUser looks an account up by mobile number for credit billing.
// A frozen account is a forbidden, not a missing, result.
func FindActiveUser(db *gorm.DB, mobileNumber string) (*models.CreditUser, error) {
	var user models.CreditUser
	if err := db.Where("mobile_number = ?", mobileNumber).First(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Credit user not found")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Credit user account is inactive")
	}
	return &user, nil
}

// CreateUser opens a credit account. The due date defaults to the bill
// date plus the configured grace period. A backing ledger entry is created
// by the caller so account creation stays storage-only here.
func CreateUser(db *gorm.DB, username, mobileNumber string, limitAmount decimal.Decimal, billDate time.Time, dueDays int) (*models.CreditUser, error) {
	if username == "" || mobileNumber == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Username and mobile number are required")
	}

	var count int64
	db.Model(&models.CreditUser{}).Where("mobile_number = ?", mobileNumber).Count(&count)
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "A credit user with this mobile number already exists")
	}

	if billDate.IsZero() {
		billDate = time.Now()
	}

	user := models.CreditUser{
		Username:     username,
		MobileNumber: mobileNumber,
		BillDate:     billDate,
		DueDate:      billDate.AddDate(0, 0, dueDays),
		TotalDue:     decimal.Zero,
		LimitAmount:  limitAmount,
	}
	refreshActive(&user)

	if err := db.Create(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create credit user")
	}
	return &user, nil
}
