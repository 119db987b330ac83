package model

import "time"

// ContactLink 名片连接产生的联系人记录。
// OwnerUserID 为空时是旧 schema 的遗留行，归属需要通过 cards.owner_user_id 间接解析。
type ContactLink struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerUserID *string   `json:"owner_user_id" gorm:"type:varchar(36);index:idx_contact_owner"`
	CardID      string    `json:"card_id" gorm:"type:varchar(36);index:idx_contact_card;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (ContactLink) TableName() string { return "contact_links" }
