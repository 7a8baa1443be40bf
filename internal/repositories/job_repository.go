package repositories

import (
	"context"

	"microjob_backend/internal/models"
	"microjob_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobRepository interface {
	FindByID(ctx context.Context, id string) (*models.Job, error)
	FindAll(ctx context.Context, limit, offset int) ([]models.Job, error)
	CountAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error

	// IncrementApplicants - атомарный серверный инкремент счетчика,
	// без чтения-модификации-записи на клиенте
	IncrementApplicants(ctx context.Context, jobID string, delta int) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

func (r *JobRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Job{}).Count(&count).Error; err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementApplicants(ctx context.Context, jobID string, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		Update("applicants", gorm.Expr("applicants + ?", delta)).Error
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}
