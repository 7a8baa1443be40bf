package services

import (
	"context"

	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"
	"microjob_backend/internal/repositories"
	"microjob_backend/internal/services/dto"
)

type JobService interface {
	GetJobs(ctx context.Context, limit, offset int) (*dto.JobListResponse, error)
	GetJob(ctx context.Context, jobID, viewerID string) (*dto.JobResponse, error)
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, jobID string) error
	ToggleSaveJob(ctx context.Context, userID, jobID string) (saved bool, err error)
	GetSavedJobIDs(ctx context.Context, userID string) ([]string, error)
}

type JobServiceImpl struct {
	jobRepo  repositories.JobRepository
	appRepo  repositories.ApplicationRepository
	userRepo repositories.UserRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
	}
}

func (s *JobServiceImpl) GetJobs(ctx context.Context, limit, offset int) (*dto.JobListResponse, error) {
	jobs, err := s.jobRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.jobRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.JobListResponse{Jobs: jobs, Total: total}, nil
}

func (s *JobServiceImpl) GetJob(ctx context.Context, jobID, viewerID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := &dto.JobResponse{Job: *job}

	if viewerID != "" {
		applied, err := s.appRepo.HasApplied(ctx, jobID, viewerID)
		if err != nil {
			return nil, err
		}
		resp.HasApplied = applied

		savedIDs, err := s.userRepo.ListSavedJobIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for _, id := range savedIDs {
			if id == jobID {
				resp.IsSaved = true
				break
			}
		}
	}

	return resp, nil
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		Title:       req.Title,
		Company:     req.Company,
		Logo:        req.Logo,
		Location:    req.Location,
		Type:        req.Type,
		Category:    req.Category,
		SalaryLabel: req.SalaryLabel,
		Amount:      req.Amount.Value(), // нормализуется в >= 0
		Description: req.Description,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "title", job.Title, "amount", job.Amount)
	return job, nil
}

func (s *JobServiceImpl) UpdateJob(ctx context.Context, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Logo != nil {
		job.Logo = *req.Logo
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
	if req.SalaryLabel != nil {
		job.SalaryLabel = *req.SalaryLabel
	}
	if req.Amount != nil {
		job.Amount = req.Amount.Value()
	}
	if req.Description != nil {
		job.Description = *req.Description
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobServiceImpl) DeleteJob(ctx context.Context, jobID string) error {
	// Отклики хранят снапшот вакансии и переживают удаление Job
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "job deleted", "job_id", jobID)
	return nil
}

func (s *JobServiceImpl) ToggleSaveJob(ctx context.Context, userID, jobID string) (bool, error) {
	if _, err := s.jobRepo.FindByID(ctx, jobID); err != nil {
		return false, err
	}

	savedIDs, err := s.userRepo.ListSavedJobIDs(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, id := range savedIDs {
		if id == jobID {
			if err := s.userRepo.UnsaveJob(ctx, userID, jobID); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	if err := s.userRepo.SaveJob(ctx, userID, jobID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *JobServiceImpl) GetSavedJobIDs(ctx context.Context, userID string) ([]string, error) {
	return s.userRepo.ListSavedJobIDs(ctx, userID)
}
