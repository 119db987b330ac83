package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jayeshk55/CredLink-sub000/internal/model"
)

type ContactRepository interface {
	// Create ownerUserID 为空字符串时写入 NULL（旧 schema 行）
	Create(ctx context.Context, ownerUserID, cardID string, createdAt time.Time) (*model.ContactLink, error)
	// CountForOwner 统计归属某用户的联系人数。
	// 归属解析两条路径：owner_user_id 直接命中，或 owner_user_id IS NULL
	// 时通过 cards.owner_user_id 间接命中（迁移兼容）。
	CountForOwner(ctx context.Context, userID string) (int64, error)
}

type contactRepository struct{ db *gorm.DB }

func NewContactRepository(db *gorm.DB) ContactRepository { return &contactRepository{db: db} }

func (r *contactRepository) Create(ctx context.Context, ownerUserID, cardID string, createdAt time.Time) (*model.ContactLink, error) {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	l := &model.ContactLink{ID: uuid.New().String(), CardID: cardID, CreatedAt: createdAt}
	if ownerUserID != "" {
		l.OwnerUserID = &ownerUserID
	}
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

func (r *contactRepository) CountForOwner(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Table("contact_links").
		Joins("LEFT JOIN cards ON cards.id = contact_links.card_id").
		Where("contact_links.owner_user_id = ? OR (contact_links.owner_user_id IS NULL AND cards.owner_user_id = ?)",
			userID, userID).
		Count(&cnt).Error
	return cnt, err
}
