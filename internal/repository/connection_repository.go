package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jayeshk55/CredLink-sub000/internal/model"
)

type ConnectionRepository interface {
	Create(ctx context.Context, senderID, receiverID, status string, createdAt time.Time) (*model.ConnectionRequest, error)
	// ListPendingTo 最近 limit 条发给该用户的 PENDING 申请，按 created_at 降序
	ListPendingTo(ctx context.Context, userID string, limit int) ([]*model.ConnectionRequest, error)
	CountPendingTo(ctx context.Context, userID string) (int64, error)
}

type connectionRepository struct{ db *gorm.DB }

func NewConnectionRepository(db *gorm.DB) ConnectionRepository { return &connectionRepository{db: db} }

func (r *connectionRepository) Create(ctx context.Context, senderID, receiverID, status string, createdAt time.Time) (*model.ConnectionRequest, error) {
	if status == "" {
		status = model.ConnectionPending
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	c := &model.ConnectionRequest{ID: uuid.New().String(), SenderID: senderID, ReceiverID: receiverID, Status: status, CreatedAt: createdAt}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *connectionRepository) ListPendingTo(ctx context.Context, userID string, limit int) ([]*model.ConnectionRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	var res []*model.ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, model.ConnectionPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *connectionRepository) CountPendingTo(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.ConnectionRequest{}).
		Where("receiver_id = ? AND status = ?", userID, model.ConnectionPending).
		Count(&cnt).Error
	return cnt, err
}
