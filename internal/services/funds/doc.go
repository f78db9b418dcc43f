/*
Package funds implements the transactional funds-movement engine.

Each user owns exactly one wallet with a non-negative balance. Funds enter a
wallet through deposits and move between wallets through transfers; every
successful transfer appends a debit row and a credit row to the append-only
transaction audit trail.

Usage:

	svc := funds.NewService(ledgerRepo, cacheRepo)

	// Provision a wallet at registration
	wallet, err := svc.CreateWallet(ctx, userID)

	// External credit
	err = svc.Deposit(ctx, userID, decimal.NewFromInt(100))

	// Internal move with replay suppression
	err = svc.Transfer(ctx, senderID, recipientID, decimal.NewFromInt(25), key)

Error Handling:

Expected business-rule violations are returned as sentinel errors
(ErrInsufficientFunds, ErrInvalidAmount, ...) for the caller to map to a
transport response. Unexpected persistence failures are wrapped and returned
after the store transaction has rolled back; no partial balance mutation is
ever observable.

Concurrency:

All mutations run inside a single store transaction with row locks taken on
the involved wallets in ascending ID order. Two transfers racing on the same
idempotency key resolve through a SETNX marker with a 30 second TTL: at most
one commits, the other reports ErrAlreadyProcessed.
*/
package funds
