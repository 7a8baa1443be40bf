package services

import (
	"context"

	"microjob_backend/internal/logger"
	"microjob_backend/internal/models"
	"microjob_backend/internal/repositories"
	"microjob_backend/internal/services/dto"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	GetAllUsers(ctx context.Context, limit, offset int) (*dto.UserListResponse, error)
	UpdateUserStatus(ctx context.Context, userID string, status models.UserStatus) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.TelegramID != nil {
		user.TelegramID = *req.TelegramID
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetAllUsers(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	users, err := s.userRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UserListResponse{Users: users, Total: total}, nil
}

func (s *UserServiceImpl) UpdateUserStatus(ctx context.Context, userID string, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "user status updated", "user_id", userID, "status", status)
	return nil
}
