package repositories

import (
	"context"
	"time"

	"microjob_backend/internal/models"
	"microjob_backend/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	// SaveMessage пишет сообщение и обновляет тред одной транзакцией
	// (аналог батчевой записи message + thread в исходной системе)
	SaveMessage(ctx context.Context, msg *models.ChatMessage, userName string) error
	ListMessages(ctx context.Context, threadID string) ([]models.ChatMessage, error)
	ListThreads(ctx context.Context) ([]models.ChatThread, error)
	FindThread(ctx context.Context, id string) (*models.ChatThread, error)
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) SaveMessage(ctx context.Context, msg *models.ChatMessage, userName string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		thread := &models.ChatThread{
			ID:            msg.ThreadID,
			UserName:      userName,
			LastMessage:   msg.Text,
			LastTimestamp: time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_message", "last_timestamp", "user_name", "updated_at"}),
		}).Create(thread).Error
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r *ChatRepositoryImpl) ListMessages(ctx context.Context, threadID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return messages, nil
}

func (r *ChatRepositoryImpl) ListThreads(ctx context.Context) ([]models.ChatThread, error) {
	var threads []models.ChatThread
	err := r.db.WithContext(ctx).
		Order("last_timestamp DESC").
		Find(&threads).Error
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return threads, nil
}

func (r *ChatRepositoryImpl) FindThread(ctx context.Context, id string) (*models.ChatThread, error) {
	var thread models.ChatThread
	err := r.db.WithContext(ctx).First(&thread, "id = ?", id).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "chat")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return &thread, nil
}
