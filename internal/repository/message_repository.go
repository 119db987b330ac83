package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jayeshk55/CredLink-sub000/internal/model"
)

type MessageRepository interface {
	// Create 写入一条消息（演示/种子数据用，引擎本身无写路径）
	Create(ctx context.Context, senderID, receiverID, text string, createdAt time.Time) (*model.Message, error)
	// ListForUser 双向取出某用户的全部消息，按 created_at 升序
	ListForUser(ctx context.Context, userID string) ([]*model.Message, error)
	// ListRecentIncoming 最近 limit 条收到的消息，按 created_at 降序
	ListRecentIncoming(ctx context.Context, userID string, limit int) ([]*model.Message, error)
	// DeleteConversation 删除两人之间双向全部消息，返回删除行数
	DeleteConversation(ctx context.Context, userID, partnerID string) (int64, error)
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) Create(ctx context.Context, senderID, receiverID, text string, createdAt time.Time) (*model.Message, error) {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	m := &model.Message{ID: uuid.New().String(), SenderID: senderID, ReceiverID: receiverID, Text: text, CreatedAt: createdAt}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&res).Error
	return res, err
}

func (r *messageRepository) ListRecentIncoming(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *messageRepository) DeleteConversation(ctx context.Context, userID, partnerID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, partnerID, partnerID, userID).
		Delete(&model.Message{})
	return tx.RowsAffected, tx.Error
}
