package model

import "time"

// ConnectionRequest 连接申请（状态流转由上游负责，这里只读）
type ConnectionRequest struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SenderID   string    `json:"sender_id" gorm:"type:varchar(36);index:idx_conn_sender;not null"`
	ReceiverID string    `json:"receiver_id" gorm:"type:varchar(36);index:idx_conn_receiver_status;not null"`
	Status     string    `json:"status" gorm:"type:varchar(16);index:idx_conn_receiver_status;not null;default:PENDING"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (ConnectionRequest) TableName() string { return "connection_requests" }

// ConnectionRequest 状态常量
const (
	ConnectionPending  = "PENDING"
	ConnectionAccepted = "ACCEPTED"
	ConnectionRejected = "REJECTED"
)
