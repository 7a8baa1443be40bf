package services

import (
	"context"
	"encoding/json"
	"testing"

	"microjob_backend/internal/models"
	"microjob_backend/internal/services/dto"
	"microjob_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walletFixture struct {
	userRepo   *fakeUserRepo
	walletRepo *fakeWalletRepo
	svc        WalletService
}

func newWalletFixture() *walletFixture {
	userRepo := newFakeUserRepo()
	walletRepo := newFakeWalletRepo(userRepo)
	return &walletFixture{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		svc:        NewWalletService(walletRepo, userRepo),
	}
}

func (f *walletFixture) addUser(balance float64) *models.User {
	return f.userRepo.add(&models.User{
		Email:         "worker@test.com",
		Role:          models.UserRoleUser,
		Status:        models.UserStatusApproved,
		WalletBalance: balance,
	})
}

func withdrawalRequest(amount float64) *dto.RequestWithdrawalRequest {
	return &dto.RequestWithdrawalRequest{
		Amount:  amount,
		Method:  "kaspi",
		Details: json.RawMessage(`{"phone":"+77001234567"}`),
	}
}

func TestSettleApplication_Idempotent(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(0)
	app := &models.Application{
		BaseModel: models.BaseModel{ID: "app-1"},
		UserID:    user.ID,
		JobAmount: 50,
	}

	credited, err := f.svc.SettleApplication(ctx, app)
	require.NoError(t, err)
	assert.True(t, credited)

	// Ретрай того же расчета
	credited, err = f.svc.SettleApplication(ctx, app)
	require.NoError(t, err)
	assert.False(t, credited)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)

	txns, err := f.walletRepo.ListTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionTypeSettlement, txns[0].Type)
	assert.Equal(t, 50.0, txns[0].Amount)
}

func TestSettleApplication_NegativeAmountClamped(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(0)
	app := &models.Application{
		BaseModel: models.BaseModel{ID: "app-neg"},
		UserID:    user.ID,
		JobAmount: -25,
	}

	credited, err := f.svc.SettleApplication(ctx, app)
	require.NoError(t, err)
	assert.True(t, credited)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	// Нулевой расчет все равно фиксируется в леджере
	txns, err := f.walletRepo.ListTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, 0.0, txns[0].Amount)
}

func TestRequestWithdrawal_HappyPath(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(100)

	w, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(40))
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, w.Status)
	assert.Equal(t, 40.0, w.Amount)
	assert.Nil(t, w.ResolvedAt)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)

	txns, err := f.walletRepo.ListTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionTypeWithdrawal, txns[0].Type)
	assert.Equal(t, -40.0, txns[0].Amount)
}

func TestRequestWithdrawal_Overdraw(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(30)

	_, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(50))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	// Баланс не тронут, запрос не создан
	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, balance)

	withdrawals, err := f.svc.GetUserWithdrawals(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, withdrawals)
}

func TestRequestWithdrawal_ExactBalance(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(50)

	_, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(50))
	require.NoError(t, err)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestRequestWithdrawal_NonPositiveAmount(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(100)

	for _, amount := range []float64{0, -10} {
		_, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(amount))
		require.Error(t, err, "amount %v", amount)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	}
}

func TestRequestWithdrawal_BannedUser(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(100)
	require.NoError(t, f.userRepo.UpdateStatus(ctx, user.ID, models.UserStatusBanned))

	_, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(40))
	assert.ErrorIs(t, err, apperrors.ErrUserBanned)
}

func TestResolveWithdrawal_RejectRefunds(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(100)
	w, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(40))
	require.NoError(t, err)

	resolved, err := f.svc.ResolveWithdrawal(ctx, w.ID, models.WithdrawalStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	// Резерв вернулся встречной записью
	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	txns, err := f.walletRepo.ListTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, models.TransactionTypeRefund, txns[1].Type)
	assert.Equal(t, 40.0, txns[1].Amount)
}

func TestResolveWithdrawal_CompleteKeepsDebit(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(100)
	w, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(40))
	require.NoError(t, err)

	resolved, err := f.svc.ResolveWithdrawal(ctx, w.ID, models.WithdrawalStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusCompleted, resolved.Status)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)
}

func TestResolveWithdrawal_Replay(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(100)
	w, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(40))
	require.NoError(t, err)

	_, err = f.svc.ResolveWithdrawal(ctx, w.ID, models.WithdrawalStatusRejected)
	require.NoError(t, err)

	// Повтор того же решения - no-op без второго рефанда
	replayed, err := f.svc.ResolveWithdrawal(ctx, w.ID, models.WithdrawalStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, replayed.Status)

	balance, err := f.walletRepo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	// Смена исхода решенного вывода - конфликт
	_, err = f.svc.ResolveWithdrawal(ctx, w.ID, models.WithdrawalStatusCompleted)
	assert.ErrorIs(t, err, apperrors.ErrWithdrawalAlreadyResolved)
}

func TestResolveWithdrawal_InvalidOutcome(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(100)
	w, err := f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(40))
	require.NoError(t, err)

	for _, outcome := range []models.WithdrawalStatus{models.WithdrawalStatusPending, "cancelled"} {
		_, err := f.svc.ResolveWithdrawal(ctx, w.ID, outcome)
		require.Error(t, err, "outcome %s", outcome)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	}
}

func TestResolveWithdrawal_NotFound(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	_, err := f.svc.ResolveWithdrawal(ctx, "missing", models.WithdrawalStatusCompleted)
	assert.ErrorIs(t, err, apperrors.ErrWithdrawalNotFound)
}

func TestGetWallet(t *testing.T) {
	t.Parallel()
	f := newWalletFixture()
	ctx := context.Background()

	user := f.addUser(0)
	app := &models.Application{
		BaseModel: models.BaseModel{ID: "app-w"},
		UserID:    user.ID,
		JobAmount: 70,
	}
	_, err := f.svc.SettleApplication(ctx, app)
	require.NoError(t, err)

	_, err = f.svc.RequestWithdrawal(ctx, user.ID, withdrawalRequest(20))
	require.NoError(t, err)

	wallet, err := f.svc.GetWallet(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, wallet.Balance)
	assert.Len(t, wallet.Transactions, 2)
}
