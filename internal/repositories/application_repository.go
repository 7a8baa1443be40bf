package repositories

import (
	"context"
	"time"

	"microjob_backend/internal/models"
	"microjob_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create - атомарный create-if-absent: уникальный индекс
	// (job_id, user_id) гарантирует, что из двух конкурентных подач
	// выживет ровно одна, вторая получит ErrAlreadyApplied.
	Create(ctx context.Context, app *models.Application) error

	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindByUser(ctx context.Context, userID string) ([]models.Application, error)
	FindAll(ctx context.Context, limit, offset int) ([]models.Application, error)
	CountAll(ctx context.Context) (int64, error)
	HasApplied(ctx context.Context, jobID, userID string) (bool, error)

	// UpdateStatus - условный перевод статуса: срабатывает только если
	// текущий статус равен from (защита от конкурентных переводов).
	// Возвращает false, если строка уже ушла из статуса from.
	UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus, completedAt *time.Time) (bool, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *models.Application) error {
	err := r.db.WithContext(ctx).Create(app).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyApplied
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return apps, nil
}

func (r *ApplicationRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Order("applied_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return apps, nil
}

func (r *ApplicationRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&count).Error; err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

func (r *ApplicationRepositoryImpl) HasApplied(ctx context.Context, jobID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	return count > 0, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus, completedAt *time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":       to,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return false, apperrors.DatabaseError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
