package handlers

import (
	"errors"
	"strconv"
	"time"

	"custodia/internal/models"
	"custodia/internal/repositories"
	"custodia/internal/services/funds"
	"custodia/internal/services/gateway"
	"custodia/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	walletCachePrefix = "wallet:user:"
	walletCacheTTL    = 60 * time.Second
)

// WalletHandler exposes wallet and funds-movement endpoints. It translates
// the funds engine's outcome errors into HTTP responses.
type WalletHandler struct {
	service funds.Service
	repo    repositories.LedgerRepository
	cache   repositories.CacheRepository
	gateway gateway.DepositGateway
}

func NewWalletHandler(s funds.Service, repo repositories.LedgerRepository, cache repositories.CacheRepository, gw gateway.DepositGateway) *WalletHandler {
	return &WalletHandler{
		service: s,
		repo:    repo,
		cache:   cache,
		gateway: gw,
	}
}

func claimsFrom(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok
}

func respondFundsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, funds.ErrUserNotFound),
		errors.Is(err, funds.ErrSenderNotFound),
		errors.Is(err, funds.ErrRecipientNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, funds.ErrInvalidAmount),
		errors.Is(err, funds.ErrSameWalletTransfer),
		errors.Is(err, funds.ErrInsufficientFunds),
		errors.Is(err, funds.ErrWalletExists):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, "internal server error")
	}
}

// GetUser handles GET /api/user and returns the authenticated user's profile
// with their wallet.
func (h *WalletHandler) GetUser(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}
	user, err := h.repo.GetUserWithWallet(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, "user not found")
		}
		return response.ServerError(c, "failed to fetch user")
	}
	return response.Success(c, "user fetched", user)
}

// GetWallet handles GET /api/wallet. Reads go through a short-lived cache.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}
	cacheKey := walletCachePrefix + strconv.FormatUint(uint64(claims.UserID), 10)

	var wallet models.Wallet
	if found, err := h.cache.GetJSON(c.Context(), cacheKey, &wallet); err == nil && found {
		return response.Success(c, "wallet fetched", wallet)
	}

	w, err := h.repo.GetWalletByUserID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return response.NotFound(c, "wallet not found")
		}
		return response.ServerError(c, "failed to fetch wallet")
	}
	_ = h.cache.SetJSON(c.Context(), cacheKey, w, walletCacheTTL)
	return response.Success(c, "wallet fetched", w)
}

// Deposit handles POST /api/wallet/deposit: an external credit into the
// authenticated user's wallet.
func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}
	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.service.Deposit(c.Context(), claims.UserID, req.Amount); err != nil {
		return respondFundsError(c, err)
	}
	h.invalidateWalletCache(c, claims.UserID)
	return response.Success(c, "deposit successful", nil)
}

// VerifyDeposit handles POST /api/wallet/deposit/verify: it confirms an
// external payment reference with the gateway before crediting the wallet.
func (h *WalletHandler) VerifyDeposit(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}
	var req struct {
		Reference string          `json:"reference"`
		Amount    decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil || req.Reference == "" {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.gateway.VerifyReference(c.Context(), req.Reference, req.Amount); err != nil {
		if errors.Is(err, gateway.ErrPaymentNotConfirmed) || errors.Is(err, gateway.ErrAmountMismatch) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "payment verification failed")
	}

	if err := h.service.Deposit(c.Context(), claims.UserID, req.Amount); err != nil {
		return respondFundsError(c, err)
	}
	h.invalidateWalletCache(c, claims.UserID)
	return response.Success(c, "deposit verified and credited", nil)
}

// Transfer handles POST /api/wallet/transfer. The idempotency key may come
// from the body or the Idempotency-Key header.
func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}
	var req struct {
		RecipientID    uint            `json:"recipient_id"`
		Amount         decimal.Decimal `json:"amount"`
		IdempotencyKey string          `json:"idempotency_key"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.Get("Idempotency-Key")
	}

	err := h.service.Transfer(c.Context(), claims.UserID, req.RecipientID, req.Amount, req.IdempotencyKey)
	if errors.Is(err, funds.ErrAlreadyProcessed) {
		// A replayed request reports success without re-executing.
		return response.Success(c, "transfer already processed", fiber.Map{"duplicate": true})
	}
	if err != nil {
		return respondFundsError(c, err)
	}
	h.invalidateWalletCache(c, claims.UserID)
	h.invalidateWalletCache(c, req.RecipientID)
	return response.Success(c, "transfer successful", nil)
}

// ListDebits handles GET /api/wallet/transactions/debits: the transfers the
// authenticated user sent, most recent first.
func (h *WalletHandler) ListDebits(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}
	txs, err := h.service.ListDebitTransactions(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to fetch transactions")
	}
	return response.Success(c, "debit transactions fetched", txs)
}

// ListCredits handles GET /api/wallet/transactions/credits: the transfers the
// authenticated user received, most recent first.
func (h *WalletHandler) ListCredits(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return response.Unauthorized(c)
	}
	txs, err := h.service.ListCreditTransactions(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to fetch transactions")
	}
	return response.Success(c, "credit transactions fetched", txs)
}

func (h *WalletHandler) invalidateWalletCache(c *fiber.Ctx, userID uint) {
	key := walletCachePrefix + strconv.FormatUint(uint64(userID), 10)
	_ = h.cache.Delete(c.Context(), key)
}
