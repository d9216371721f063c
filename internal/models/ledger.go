package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chart of accounts: NatureGroup -> MainGroup -> Ledger -> Transaction.
// A voucher is a pair of opposite-direction transactions sharing a voucher
// number; it is the atomic unit of double-entry bookkeeping here.

type NatureGroup struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"` // e.g. "Income", "Expense"
}

type MainGroup struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Name          string      `gorm:"size:100;uniqueIndex;not null" json:"name"` // e.g. "Sundry Debtors"
	NatureGroupID uint        `gorm:"index;not null" json:"nature_group_id"`
	NatureGroup   NatureGroup `gorm:"foreignKey:NatureGroupID" json:"nature_group"`
}

type Ledger struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;not null;index" json:"name"`
	MobileNumber   string          `gorm:"size:15" json:"mobile_number"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"opening_balance"`
	MainGroupID    uint            `gorm:"index;not null" json:"main_group_id"`
	MainGroup      MainGroup       `gorm:"foreignKey:MainGroupID" json:"main_group"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Transaction is a single debit-or-credit posting. ParticularsID is the
// counter-ledger of the posting's other side.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	LedgerID        uint            `gorm:"index;not null" json:"ledger_id"`
	Ledger          Ledger          `gorm:"foreignKey:LedgerID" json:"ledger"`
	ParticularsID   uint            `gorm:"index;not null" json:"particulars_id"`
	Particulars     Ledger          `gorm:"foreignKey:ParticularsID" json:"particulars"`
	Date            time.Time       `gorm:"index;not null" json:"date"`
	VoucherNo       uint            `gorm:"index;not null" json:"voucher_no"`
	DebitAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"debit_amount"`
	CreditAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"credit_amount"`
	Remarks         string          `gorm:"size:500" json:"remarks"`
	TransactionType string          `gorm:"size:50;index" json:"transaction_type"` // e.g. "payment", "receipt", "journal"
	CreatedAt       time.Time       `json:"created_at"`
}
