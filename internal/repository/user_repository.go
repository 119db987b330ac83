package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jayeshk55/CredLink-sub000/internal/model"
)

// Profile 身份目录返回的最小展示信息
type Profile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UserRepository 身份目录：批量解析展示名 + 登录查询
type UserRepository interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ResolveMany 一次 IN 查询解析全部 id；查不到的 id 不出现在结果里
	ResolveMany(ctx context.Context, ids []string) (map[string]Profile, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, fullName, email, passwordHash string) (*model.User, error) {
	u := &model.User{ID: uuid.New().String(), FullName: fullName, Email: email, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ResolveMany(ctx context.Context, ids []string) (map[string]Profile, error) {
	out := make(map[string]Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = Profile{FullName: u.FullName, Email: u.Email}
	}
	return out, nil
}
