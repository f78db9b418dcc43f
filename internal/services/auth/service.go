// Package auth provides registration and login on top of the ledger store.
// Registration provisions the user's single wallet through the funds engine.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custodia/internal/models"
	"custodia/internal/repositories"
	"custodia/internal/services/funds"
	"custodia/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const tokenTTL = 24 * time.Hour

type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type service struct {
	repo      repositories.LedgerRepository
	wallets   funds.Service
	jwtSecret string
}

func NewService(repo repositories.LedgerRepository, wallets funds.Service, jwtSecret string) Service {
	return &service{
		repo:      repo,
		wallets:   wallets,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, ErrUserExists
	}

	wallet, err := s.wallets.CreateWallet(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to provision wallet: %w", err)
	}
	user.Wallet = wallet

	logrus.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"wallet_id": wallet.ID,
	}).Info("user registered")
	return user, nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(user.ID, user.Username, s.jwtSecret, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
