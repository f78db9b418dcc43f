package funds

import (
	"context"

	"custodia/internal/models"

	"github.com/shopspring/decimal"
)

// Service is the transactional funds-movement engine. It validates requests,
// mutates balances atomically, records the audit trail and suppresses
// duplicate transfer executions. It holds no in-process state and is safe for
// concurrent use.
type Service interface {
	// Wallet provisioning
	CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)

	// Funds movement
	Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error
	Transfer(ctx context.Context, senderID, recipientID uint, amount decimal.Decimal, idempotencyKey string) error

	// Query layer
	ListDebitTransactions(ctx context.Context, userID uint) ([]models.Transaction, error)
	ListCreditTransactions(ctx context.Context, userID uint) ([]models.Transaction, error)
}
