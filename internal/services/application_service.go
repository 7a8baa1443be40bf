package services

import (
	"context"
	"time"

	"microjob_backend/internal/email"
	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"
	"microjob_backend/internal/repositories"
	"microjob_backend/internal/services/dto"
	"microjob_backend/pkg/apperrors"
)

// ApplicationService - машина состояний отклика.
// pending → accepted/rejected → completed, с обратными переводами
// completed→accepted, accepted→pending и rejected→pending.
// Перевод в completed связан с exactly-once кредитом кошелька.
type ApplicationService interface {
	SubmitApplication(ctx context.Context, jobID, userID string, req *dto.SubmitApplicationRequest) (*models.Application, error)
	GetApplication(ctx context.Context, id, requesterID string, isAdmin bool) (*models.Application, error)
	GetUserApplications(ctx context.Context, userID string) ([]models.Application, error)
	GetAllApplications(ctx context.Context, limit, offset int) (*dto.ApplicationListResponse, error)
	TransitionStatus(ctx context.Context, applicationID string, target models.ApplicationStatus) (*models.Application, error)
}

type ApplicationServiceImpl struct {
	appRepo  repositories.ApplicationRepository
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	wallet   WalletService
	mailer   email.Provider
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	wallet WalletService,
	mailer email.Provider,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		wallet:   wallet,
		mailer:   mailer,
	}
}

func (s *ApplicationServiceImpl) SubmitApplication(ctx context.Context, jobID, userID string, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == models.UserStatusBanned {
		return nil, apperrors.ErrUserBanned
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	amount := job.Amount
	if amount < 0 {
		amount = 0
	}

	app := &models.Application{
		JobID:       jobID,
		UserID:      userID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		TelegramID:  req.TelegramID,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusPending,

		// Снапшот вакансии: правки и удаление Job не трогают историю
		JobTitle:  job.Title,
		Company:   job.Company,
		Logo:      job.Logo,
		JobAmount: amount,

		AppliedAt: time.Now(),
	}

	// Атомарный create-if-absent; дубль пары (job, user) вернет
	// ErrAlreadyApplied - терминальное для пользователя состояние
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	// Счетчик откликов информационный: его падение не откатывает отклик
	if err := s.jobRepo.IncrementApplicants(ctx, jobID, 1); err != nil {
		logger.CtxWithError(ctx, "failed to increment applicants counter", err,
			"job_id", jobID, "application_id", app.ID)
	}

	logger.CtxInfo(ctx, "application submitted",
		"application_id", app.ID, "job_id", jobID, "user_id", userID)
	return app, nil
}

func (s *ApplicationServiceImpl) GetApplication(ctx context.Context, id, requesterID string, isAdmin bool) (*models.Application, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && app.UserID != requesterID {
		return nil, apperrors.ErrForbidden
	}
	return app, nil
}

func (s *ApplicationServiceImpl) GetUserApplications(ctx context.Context, userID string) ([]models.Application, error) {
	return s.appRepo.FindByUser(ctx, userID)
}

func (s *ApplicationServiceImpl) GetAllApplications(ctx context.Context, limit, offset int) (*dto.ApplicationListResponse, error) {
	apps, err := s.appRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.appRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ApplicationListResponse{Applications: apps, Total: total}, nil
}

func (s *ApplicationServiceImpl) TransitionStatus(ctx context.Context, applicationID string, target models.ApplicationStatus) (*models.Application, error) {
	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	from := app.Status
	if !target.Valid() || !models.CanTransition(from, target) {
		logger.CtxWarn(ctx, "illegal application status transition requested",
			"application_id", applicationID, "from", from, "to", target)
		return nil, apperrors.ErrInvalidTransition
	}

	if target == models.ApplicationStatusCompleted {
		// Расчет до перевода статуса. Settle идемпотентен: если перевод
		// ниже не пройдет, ретрай не кредитует второй раз и доведет пару
		// статус+леджер до согласованности. Обратный перевод
		// completed→accepted средства не возвращает, а повторный
		// complete упирается в леджер - двойной выплаты нет.
		if _, err := s.wallet.SettleApplication(ctx, app); err != nil {
			return nil, err
		}
	}

	var completedAt *time.Time
	if target == models.ApplicationStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	ok, err := s.appRepo.UpdateStatus(ctx, app.ID, from, target, completedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Статус уже ушел из from конкурентным переводом
		logger.CtxWarn(ctx, "application status changed concurrently",
			"application_id", applicationID, "expected", from, "to", target)
		return nil, apperrors.ErrInvalidTransition
	}

	app.Status = target
	app.CompletedAt = completedAt

	s.notifyStatusChange(ctx, app)

	logger.CtxInfo(ctx, "application status updated",
		"application_id", app.ID, "from", from, "to", target)
	return app, nil
}

// notifyStatusChange шлет письмо заявителю, best-effort
func (s *ApplicationServiceImpl) notifyStatusChange(ctx context.Context, app *models.Application) {
	if s.mailer == nil || app.Email == "" {
		return
	}
	err := s.mailer.SendStatusUpdate(app.Email, app.JobTitle, string(app.Status))
	if err != nil {
		logger.CtxWithError(ctx, "failed to send status notification", err,
			"application_id", app.ID, "email", app.Email)
	}
}
