package repositories

import (
	"context"
	"time"

	"microjob_backend/internal/models"
	"microjob_backend/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository - порт кошелькового леджера. Все мутации баланса
// выполняются серверными инкрементами внутри транзакций; никакой
// клиентской арифметики "прочитал-посчитал-записал" здесь нет.
type WalletRepository interface {
	Balance(ctx context.Context, userID string) (float64, error)

	// Settle кредитует баланс ровно один раз на отклик: запись в
	// wallet_transactions с уникальным application_id играет роль
	// идемпотентного ключа. Возвращает false, если расчет уже был.
	Settle(ctx context.Context, applicationID, userID string, amount float64) (bool, error)

	// CreateWithdrawal атомарно резервирует средства (условный дебет,
	// закрывающий гонку двух конкурентных выводов) и создает запрос.
	CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error

	// ResolveWithdrawal переводит pending-вывод в completed/rejected;
	// rejected возвращает средства в той же транзакции. Повторное
	// решение возвращает already = true и сохраненную запись.
	ResolveWithdrawal(ctx context.Context, id string, outcome models.WithdrawalStatus) (w *models.Withdrawal, already bool, err error)

	FindWithdrawalByID(ctx context.Context, id string) (*models.Withdrawal, error)
	ListWithdrawalsByUser(ctx context.Context, userID string) ([]models.Withdrawal, error)
	ListAllWithdrawals(ctx context.Context, limit, offset int) ([]models.Withdrawal, error)
	ListTransactions(ctx context.Context, userID string) ([]models.WalletTransaction, error)
}

type WalletRepositoryImpl struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &WalletRepositoryImpl{db: db}
}

func (r *WalletRepositoryImpl) Balance(ctx context.Context, userID string) (float64, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("wallet_balance").First(&user, "id = ?", userID).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, apperrors.DatabaseError(err)
	}
	return user.WalletBalance, nil
}

func (r *WalletRepositoryImpl) Settle(ctx context.Context, applicationID, userID string, amount float64) (bool, error) {
	credited := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn := &models.WalletTransaction{
			UserID:        userID,
			Amount:        amount,
			Type:          models.TransactionTypeSettlement,
			ApplicationID: &applicationID,
		}

		// Вставка-если-отсутствует по уникальному application_id
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}},
			DoNothing: true,
		}).Create(txn)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Расчет по этому отклику уже проведен
			return nil
		}

		credited = true
		if amount > 0 {
			return tx.Model(&models.User{}).
				Where("id = ?", userID).
				Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error
		}
		// Нулевая сумма: кредитовать нечего, но расчет зафиксирован
		return nil
	})
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	return credited, nil
}

func (r *WalletRepositoryImpl) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Условный дебет: WHERE wallet_balance >= amount сериализует
		// проверку достаточности со списанием - два конкурентных вывода
		// не могут оба пройти по одному и тому же остатку.
		res := tx.Model(&models.User{}).
			Where("id = ? AND wallet_balance >= ?", w.UserID, w.Amount).
			Update("wallet_balance", gorm.Expr("wallet_balance - ?", w.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInsufficientBalance
		}

		w.Status = models.WithdrawalStatusPending
		if err := tx.Create(w).Error; err != nil {
			return err
		}

		txn := &models.WalletTransaction{
			UserID:       w.UserID,
			Amount:       -w.Amount,
			Type:         models.TransactionTypeWithdrawal,
			WithdrawalID: &w.ID,
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return appErr
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *WalletRepositoryImpl) ResolveWithdrawal(ctx context.Context, id string, outcome models.WithdrawalStatus) (*models.Withdrawal, bool, error) {
	var w models.Withdrawal
	already := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&w, "id = ?", id).Error; err != nil {
			if apperrors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWithdrawalNotFound
			}
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", id, models.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":      outcome,
				"resolved_at": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Уже решен ранее: рефанд не повторяем
			already = true
			return nil
		}

		w.Status = outcome
		w.ResolvedAt = &now

		if outcome == models.WithdrawalStatusRejected {
			// Возврат зарезервированных средств в той же транзакции
			if err := tx.Model(&models.User{}).
				Where("id = ?", w.UserID).
				Update("wallet_balance", gorm.Expr("wallet_balance + ?", w.Amount)).Error; err != nil {
				return err
			}
			txn := &models.WalletTransaction{
				UserID:       w.UserID,
				Amount:       w.Amount,
				Type:         models.TransactionTypeRefund,
				WithdrawalID: &w.ID,
			}
			return tx.Create(txn).Error
		}
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, false, appErr
		}
		return nil, false, apperrors.DatabaseError(err)
	}
	return &w, already, nil
}

func (r *WalletRepositoryImpl) FindWithdrawalByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWithdrawalNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &w, nil
}

func (r *WalletRepositoryImpl) ListWithdrawalsByUser(ctx context.Context, userID string) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawals).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return withdrawals, nil
}

func (r *WalletRepositoryImpl) ListAllWithdrawals(ctx context.Context, limit, offset int) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&withdrawals).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return withdrawals, nil
}

func (r *WalletRepositoryImpl) ListTransactions(ctx context.Context, userID string) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return txns, nil
}
