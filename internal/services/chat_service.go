package services

import (
	"context"

	"microjob_backend/internal/models"
	"microjob_backend/internal/repositories"
	"microjob_backend/internal/services/dto"
	"microjob_backend/pkg/apperrors"
)

// ChatService - чат поддержки: один тред на пользователя (id треда ==
// uid), сообщения пишут пользователь и админ. Семантика доставки
// (websocket fanout) живет в пакете ws.
type ChatService interface {
	SendMessage(ctx context.Context, senderID string, senderRole models.UserRole, req *dto.SendMessageRequest) (*models.ChatMessage, error)
	GetMessages(ctx context.Context, threadID, requesterID string, isAdmin bool) (*dto.MessageListResponse, error)
	GetThreads(ctx context.Context) (*dto.ThreadListResponse, error)
}

type ChatServiceImpl struct {
	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
}

func NewChatService(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository) ChatService {
	return &ChatServiceImpl{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

func (s *ChatServiceImpl) SendMessage(ctx context.Context, senderID string, senderRole models.UserRole, req *dto.SendMessageRequest) (*models.ChatMessage, error) {
	threadID := senderID
	if senderRole == models.UserRoleAdmin {
		// Админ отвечает в тред конкретного пользователя
		if req.ThreadID == "" {
			return nil, apperrors.NewBadRequestError("threadId is required for admin messages")
		}
		threadID = req.ThreadID
	}

	// Имя владельца треда для списка тредов в админке
	userName := ""
	if owner, err := s.userRepo.FindByID(ctx, threadID); err == nil {
		userName = owner.FullName
	}

	msg := &models.ChatMessage{
		ThreadID:   threadID,
		SenderID:   senderID,
		SenderRole: senderRole,
		Text:       req.Text,
	}

	if err := s.chatRepo.SaveMessage(ctx, msg, userName); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatServiceImpl) GetMessages(ctx context.Context, threadID, requesterID string, isAdmin bool) (*dto.MessageListResponse, error) {
	if !isAdmin && threadID != requesterID {
		return nil, apperrors.ErrForbidden
	}

	if isAdmin && threadID != requesterID {
		// Свой тред существует неявно (появится с первым сообщением),
		// чужой должен быть создан
		if _, err := s.chatRepo.FindThread(ctx, threadID); err != nil {
			return nil, err
		}
	}

	messages, err := s.chatRepo.ListMessages(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return &dto.MessageListResponse{Messages: messages, Total: len(messages)}, nil
}

func (s *ChatServiceImpl) GetThreads(ctx context.Context) (*dto.ThreadListResponse, error) {
	threads, err := s.chatRepo.ListThreads(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ThreadListResponse{Threads: threads, Total: len(threads)}, nil
}
