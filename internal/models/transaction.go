package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeDebit  = "debit"
	TransactionTypeCredit = "credit"
)

// Transaction is an append-only audit record. A transfer writes two rows
// sharing one reference: a debit row for the sender's ledger view and a
// credit row for the recipient's. Rows are never updated or deleted.
type Transaction struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	SenderID    uint            `gorm:"not null;index" json:"sender_id"`
	RecipientID uint            `gorm:"not null;index" json:"recipient_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Type        string          `gorm:"not null" json:"type"`
	Reference   string          `gorm:"index" json:"reference"`
	Timestamp   time.Time       `gorm:"not null" json:"timestamp"`
}
