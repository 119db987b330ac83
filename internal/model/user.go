package model

import "time"

// User 用户目录行（身份解析 + 登录校验）
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FullName     string    `json:"full_name" gorm:"type:varchar(128)"`
	Email        string    `json:"email" gorm:"type:varchar(128);uniqueIndex:ux_user_email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(128)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
