package auth

import (
	"context"
	"testing"

	"custodia/internal/models"
	"custodia/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockRepo) GetUserWithWallet(ctx context.Context, userID uint) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockRepo) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *mockRepo) GetWalletByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	wallet, _ := args.Get(0).(*models.Wallet)
	return wallet, args.Error(1)
}

func (m *mockRepo) GetWalletForUpdate(ctx context.Context, walletID uint) (*models.Wallet, error) {
	args := m.Called(ctx, walletID)
	wallet, _ := args.Get(0).(*models.Wallet)
	return wallet, args.Error(1)
}

func (m *mockRepo) AdjustBalance(ctx context.Context, walletID uint, delta decimal.Decimal) error {
	args := m.Called(ctx, walletID, delta)
	return args.Error(0)
}

func (m *mockRepo) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockRepo) ListDebitTransactions(ctx context.Context, senderID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, senderID)
	txs, _ := args.Get(0).([]models.Transaction)
	return txs, args.Error(1)
}

func (m *mockRepo) ListCreditTransactions(ctx context.Context, recipientID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, recipientID)
	txs, _ := args.Get(0).([]models.Transaction)
	return txs, args.Error(1)
}

func (m *mockRepo) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	return fn(m)
}

type mockWallets struct {
	mock.Mock
}

func (m *mockWallets) CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	wallet, _ := args.Get(0).(*models.Wallet)
	return wallet, args.Error(1)
}

func (m *mockWallets) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *mockWallets) Transfer(ctx context.Context, senderID, recipientID uint, amount decimal.Decimal, idempotencyKey string) error {
	args := m.Called(ctx, senderID, recipientID, amount, idempotencyKey)
	return args.Error(0)
}

func (m *mockWallets) ListDebitTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, userID)
	txs, _ := args.Get(0).([]models.Transaction)
	return txs, args.Error(1)
}

func (m *mockWallets) ListCreditTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, userID)
	txs, _ := args.Get(0).([]models.Transaction)
	return txs, args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Run("creates user with hashed password and wallet", func(t *testing.T) {
		repo := new(mockRepo)
		wallets := new(mockWallets)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, repositories.ErrUserNotFound)
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "alice" && u.Email == "alice@example.com" && u.Password != "s3cretpass"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 7
		}).Return(nil)
		wallets.On("CreateWallet", mock.Anything, uint(7)).Return(&models.Wallet{ID: 3, UserID: 7}, nil)

		svc := NewService(repo, wallets, "secret")
		user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")

		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		require.NotNil(t, user.Wallet)
		assert.Equal(t, uint(3), user.Wallet.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cretpass")))
		repo.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

		svc := NewService(repo, new(mockWallets), "secret")
		_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")

		assert.ErrorIs(t, err, ErrUserExists)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 7, Username: "alice", Password: string(hash)}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(stored, nil)

		svc := NewService(repo, new(mockWallets), "secret")
		token, err := svc.Login(context.Background(), "alice", "s3cretpass")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(stored, nil)

		svc := NewService(repo, new(mockWallets), "secret")
		_, err := svc.Login(context.Background(), "alice", "wrongpass")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrUserNotFound)

		svc := NewService(repo, new(mockWallets), "secret")
		_, err := svc.Login(context.Background(), "ghost", "s3cretpass")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
