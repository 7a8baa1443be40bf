package services

import (
	"context"

	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"
	"microjob_backend/internal/repositories"
	"microjob_backend/internal/services/dto"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*models.Settings, error)
}

type SettingsServiceImpl struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsService(settingsRepo repositories.SettingsRepository) SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.SiteName != nil {
		settings.SiteName = *req.SiteName
	}
	if req.SupportEmail != nil {
		settings.SupportEmail = *req.SupportEmail
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "settings updated", "site_name", settings.SiteName)
	return settings, nil
}
