package repositories

import (
	"context"
	"errors"

	"custodia/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already exists")
)

// LedgerRepository defines the database operations backing the funds engine.
// Methods called through ExecuteInTransaction run against the transaction
// scope and roll back together when the callback returns an error.
type LedgerRepository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserWithWallet(ctx context.Context, userID uint) (*models.User, error)

	// Wallet operations
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	GetWalletByUserID(ctx context.Context, userID uint) (*models.Wallet, error)
	GetWalletForUpdate(ctx context.Context, walletID uint) (*models.Wallet, error)
	AdjustBalance(ctx context.Context, walletID uint, delta decimal.Decimal) error

	// Transaction (audit) operations
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListDebitTransactions(ctx context.Context, senderID uint) ([]models.Transaction, error)
	ListCreditTransactions(ctx context.Context, recipientID uint) ([]models.Transaction, error)

	// Atomicity
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
