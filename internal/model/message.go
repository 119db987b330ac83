package model

import "time"

// Message 私信消息（append-only，不支持编辑）
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SenderID   string    `json:"sender_id" gorm:"type:varchar(36);index:idx_msg_sender;not null"`
	ReceiverID string    `json:"receiver_id" gorm:"type:varchar(36);index:idx_msg_receiver_created;not null"`
	Text       string    `json:"text" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_msg_receiver_created"`
}

func (Message) TableName() string { return "messages" }
