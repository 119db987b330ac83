package model

import "time"

// Card 名片（完整档案由上游 card-profile 服务维护，这里只保留归属解析所需字段）
type Card struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerUserID string    `json:"owner_user_id" gorm:"type:varchar(36);index:idx_card_owner;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Card) TableName() string { return "cards" }
