package services

import (
	"context"

	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"
	"microjob_backend/internal/repositories"
	"microjob_backend/internal/services/dto"
	"microjob_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// WalletService - кошельковый леджер: кредит при завершении отклика,
// резервирование при запросе вывода, рефанд при отклонении вывода.
type WalletService interface {
	// SettleApplication кредитует jobAmount пользователю ровно один раз
	// на отклик. Повторные вызовы (ретраи, re-complete) - no-op.
	// Возвращает true, если кредит был проведен этим вызовом.
	SettleApplication(ctx context.Context, app *models.Application) (bool, error)

	GetWallet(ctx context.Context, userID string) (*dto.WalletResponse, error)
	RequestWithdrawal(ctx context.Context, userID string, req *dto.RequestWithdrawalRequest) (*models.Withdrawal, error)
	ResolveWithdrawal(ctx context.Context, withdrawalID string, outcome models.WithdrawalStatus) (*models.Withdrawal, error)
	GetUserWithdrawals(ctx context.Context, userID string) ([]models.Withdrawal, error)
	GetAllWithdrawals(ctx context.Context, limit, offset int) ([]models.Withdrawal, error)
}

type WalletServiceImpl struct {
	walletRepo repositories.WalletRepository
	userRepo   repositories.UserRepository
}

func NewWalletService(walletRepo repositories.WalletRepository, userRepo repositories.UserRepository) WalletService {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		userRepo:   userRepo,
	}
}

func (s *WalletServiceImpl) SettleApplication(ctx context.Context, app *models.Application) (bool, error) {
	amount := app.JobAmount
	if amount < 0 {
		// Снапшоты пишутся нормализованными, но история могла прийти
		// из старых данных
		logger.CtxWarn(ctx, "negative job amount in settlement, clamping to zero",
			"application_id", app.ID, "amount", amount)
		amount = 0
	}

	credited, err := s.walletRepo.Settle(ctx, app.ID, app.UserID, amount)
	if err != nil {
		return false, err
	}

	if credited {
		logger.CtxInfo(ctx, "application settled",
			"application_id", app.ID, "user_id", app.UserID, "amount", amount)
	} else {
		logger.CtxInfo(ctx, "application already settled, skipping credit",
			"application_id", app.ID, "user_id", app.UserID)
	}
	return credited, nil
}

func (s *WalletServiceImpl) GetWallet(ctx context.Context, userID string) (*dto.WalletResponse, error) {
	balance, err := s.walletRepo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	txns, err := s.walletRepo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.WalletResponse{
		Balance:      balance,
		Transactions: txns,
	}, nil
}

func (s *WalletServiceImpl) RequestWithdrawal(ctx context.Context, userID string, req *dto.RequestWithdrawalRequest) (*models.Withdrawal, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("Withdrawal amount must be positive")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == models.UserStatusBanned {
		return nil, apperrors.ErrUserBanned
	}

	withdrawal := &models.Withdrawal{
		UserID:  userID,
		Amount:  req.Amount,
		Method:  req.Method,
		Details: datatypes.JSON(req.Details),
	}

	// Дебет и создание запроса атомарны; при нехватке средств баланс
	// остается нетронутым
	if err := s.walletRepo.CreateWithdrawal(ctx, withdrawal); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "withdrawal requested",
		"withdrawal_id", withdrawal.ID, "user_id", userID, "amount", req.Amount)
	return withdrawal, nil
}

func (s *WalletServiceImpl) ResolveWithdrawal(ctx context.Context, withdrawalID string, outcome models.WithdrawalStatus) (*models.Withdrawal, error) {
	if !outcome.Valid() || outcome == models.WithdrawalStatusPending {
		return nil, apperrors.NewBadRequestError("Outcome must be completed or rejected")
	}

	w, already, err := s.walletRepo.ResolveWithdrawal(ctx, withdrawalID, outcome)
	if err != nil {
		return nil, err
	}

	if already {
		// Повтор того же решения - идемпотентный no-op; попытка
		// сменить исход решенного вывода - ошибка
		if w.Status == outcome {
			logger.CtxInfo(ctx, "withdrawal already resolved, treating as no-op",
				"withdrawal_id", withdrawalID, "outcome", outcome)
			return w, nil
		}
		return nil, apperrors.ErrWithdrawalAlreadyResolved
	}

	logger.CtxInfo(ctx, "withdrawal resolved",
		"withdrawal_id", withdrawalID, "outcome", outcome, "amount", w.Amount)
	return w, nil
}

func (s *WalletServiceImpl) GetUserWithdrawals(ctx context.Context, userID string) ([]models.Withdrawal, error) {
	return s.walletRepo.ListWithdrawalsByUser(ctx, userID)
}

func (s *WalletServiceImpl) GetAllWithdrawals(ctx context.Context, limit, offset int) ([]models.Withdrawal, error) {
	return s.walletRepo.ListAllWithdrawals(ctx, limit, offset)
}
