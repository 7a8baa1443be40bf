package repositories

import (
	"context"

	"microjob_backend/internal/models"
	"microjob_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, userID string, status models.UserStatus) error
	FindAll(ctx context.Context, limit, offset int) ([]models.User, error)
	CountAll(ctx context.Context) (int64, error)

	// Saved jobs: только членство, без порядка
	SaveJob(ctx context.Context, userID, jobID string) error
	UnsaveJob(ctx context.Context, userID, jobID string) error
	ListSavedJobIDs(ctx context.Context, userID string) ([]string, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatus(ctx context.Context, userID string, status models.UserStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", status)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return users, nil
}

func (r *UserRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

func (r *UserRepositoryImpl) SaveJob(ctx context.Context, userID, jobID string) error {
	saved := &models.SavedJob{UserID: userID, JobID: jobID}
	err := r.db.WithContext(ctx).Create(saved).Error
	if err != nil && !apperrors.Is(err, gorm.ErrDuplicatedKey) {
		// Повторное сохранение той же вакансии - не ошибка
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *UserRepositoryImpl) UnsaveJob(ctx context.Context, userID, jobID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{}).Error
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *UserRepositoryImpl) ListSavedJobIDs(ctx context.Context, userID string) ([]string, error) {
	var jobIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.SavedJob{}).
		Where("user_id = ?", userID).
		Pluck("job_id", &jobIDs).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobIDs, nil
}
