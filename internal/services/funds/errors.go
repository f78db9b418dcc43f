package funds

import "errors"

// Service errors. Every expected business-rule violation resolves into one of
// these values; only unexpected persistence failures surface as wrapped
// errors outside this set.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrSenderNotFound     = errors.New("sender not found")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrSameWalletTransfer = errors.New("cannot transfer to the same wallet")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidAmount      = errors.New("amount must be a positive whole number")
	ErrAlreadyProcessed   = errors.New("transfer already processed")
	ErrWalletExists       = errors.New("wallet already exists")
)
