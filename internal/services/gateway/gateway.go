// Package gateway confirms external payments backing wallet deposits.
package gateway

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrAmountMismatch      = errors.New("paid amount does not match deposit amount")
)

// DepositGateway verifies that an external payment reference represents a
// settled payment of the claimed amount before the wallet is credited.
type DepositGateway interface {
	VerifyReference(ctx context.Context, reference string, amount decimal.Decimal) error
}
