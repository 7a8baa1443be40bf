package repositories

import (
	"context"

	"microjob_backend/internal/models"
	"microjob_backend/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

type SettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", models.SettingsID).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			// Дефолтный документ, если настройки еще не сохранялись
			return &models.Settings{
				ID:           models.SettingsID,
				SiteName:     "MicroJob",
				SupportEmail: "admin@microjob.com",
			}, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}
