package funds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custodia/internal/models"
	"custodia/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type service struct {
	repo  repositories.LedgerRepository
	cache repositories.CacheRepository
}

// NewService creates a new funds engine.
func NewService(repo repositories.LedgerRepository, cache repositories.CacheRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{
		repo:  repo,
		cache: cache,
	}
}

// isWholeAmount reports whether the amount is strictly positive with no
// fractional part. Only whole currency units move through the ledger.
func isWholeAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(0))
}

func dedupKey(idempotencyKey string) string {
	return DedupKeyPrefix + idempotencyKey
}

func (s *service) CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet := &models.Wallet{
		UserID:  userID,
		Balance: decimal.Zero,
	}
	if err := s.repo.CreateWallet(ctx, wallet); err != nil {
		if errors.Is(err, repositories.ErrDuplicateWallet) {
			return nil, ErrWalletExists
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return wallet, nil
}

func (s *service) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	user, err := s.repo.GetUserWithWallet(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deposit failed: %w", err)
	}
	if user.Wallet == nil {
		return ErrUserNotFound
	}

	if !isWholeAmount(amount) {
		return ErrInvalidAmount
	}

	err = s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		if _, err := tx.GetWalletForUpdate(ctx, user.Wallet.ID); err != nil {
			return err
		}
		return tx.AdjustBalance(ctx, user.Wallet.ID, amount)
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  amount.String(),
			"error":   err.Error(),
		}).Error("deposit failed")
		return fmt.Errorf("deposit failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount.String(),
	}).Info("deposit completed")
	return nil
}

func (s *service) Transfer(ctx context.Context, senderID, recipientID uint, amount decimal.Decimal, idempotencyKey string) error {
	if idempotencyKey != "" {
		val, err := s.cache.Get(ctx, dedupKey(idempotencyKey))
		if err != nil && !errors.Is(err, repositories.ErrCacheMiss) {
			return fmt.Errorf("transfer failed: %w", err)
		}
		if err == nil && val == ProcessedMarker {
			return ErrAlreadyProcessed
		}
	}

	sender, err := s.repo.GetUserWithWallet(ctx, senderID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrSenderNotFound
		}
		return fmt.Errorf("transfer failed: %w", err)
	}
	if sender.Wallet == nil {
		return ErrSenderNotFound
	}

	recipient, err := s.repo.GetUserWithWallet(ctx, recipientID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrRecipientNotFound
		}
		return fmt.Errorf("transfer failed: %w", err)
	}
	if recipient.Wallet == nil {
		return ErrRecipientNotFound
	}

	if sender.ID == recipient.ID {
		return ErrSameWalletTransfer
	}

	// Balance is checked before amount format to keep the historical outcome
	// ordering; both are re-validated against the locked row below.
	if sender.Wallet.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	if !isWholeAmount(amount) {
		return ErrInvalidAmount
	}

	reference := uuid.NewString()
	markerWritten := false

	err = s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		// Lock both wallet rows in ascending ID order to avoid deadlock, and
		// keep the locked view of the sender for the definitive balance check.
		first, second := sender.Wallet.ID, recipient.Wallet.ID
		if second < first {
			first, second = second, first
		}
		var lockedSender *models.Wallet
		for _, walletID := range []uint{first, second} {
			locked, err := tx.GetWalletForUpdate(ctx, walletID)
			if err != nil {
				return err
			}
			if locked.ID == sender.Wallet.ID {
				lockedSender = locked
			}
		}
		if lockedSender.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}

		if err := tx.AdjustBalance(ctx, sender.Wallet.ID, amount.Neg()); err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, recipient.Wallet.ID, amount); err != nil {
			return err
		}

		now := time.Now().UTC()
		debit := &models.Transaction{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Amount:      amount,
			Type:        models.TransactionTypeDebit,
			Reference:   reference,
			Timestamp:   now,
		}
		credit := &models.Transaction{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Amount:      amount,
			Type:        models.TransactionTypeCredit,
			Reference:   reference,
			Timestamp:   now,
		}
		if err := tx.CreateTransaction(ctx, debit); err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, credit); err != nil {
			return err
		}

		// Claim the dedup key as the final step before commit. Losing the
		// SETNX race means another request with this key already went
		// through, so this transfer rolls back.
		if idempotencyKey != "" {
			won, err := s.cache.SetIfAbsent(ctx, dedupKey(idempotencyKey), ProcessedMarker, DedupTTL)
			if err != nil {
				return err
			}
			if !won {
				return ErrAlreadyProcessed
			}
			markerWritten = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrAlreadyProcessed) {
			return err
		}
		// The marker must not survive a rolled-back transfer.
		if markerWritten {
			if delErr := s.cache.Delete(ctx, dedupKey(idempotencyKey)); delErr != nil {
				logrus.WithFields(logrus.Fields{
					"idempotency_key": idempotencyKey,
					"error":           delErr.Error(),
				}).Warn("failed to clear dedup marker after rollback")
			}
		}
		logrus.WithFields(logrus.Fields{
			"sender_id":    senderID,
			"recipient_id": recipientID,
			"amount":       amount.String(),
			"error":        err.Error(),
		}).Error("transfer failed")
		return fmt.Errorf("transfer failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"sender_id":    senderID,
		"recipient_id": recipientID,
		"amount":       amount.String(),
		"reference":    reference,
	}).Info("transfer completed")
	return nil
}

func (s *service) ListDebitTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	txs, err := s.repo.ListDebitTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debit transactions: %w", err)
	}
	return txs, nil
}

func (s *service) ListCreditTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	txs, err := s.repo.ListCreditTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit transactions: %w", err)
	}
	return txs, nil
}
