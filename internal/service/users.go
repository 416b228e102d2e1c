package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

type UserUpdate struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	PhotoURL *string `json:"photo_url"`
	AdFree   *bool   `json:"ad_free"`
}

type UserService interface {
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, in UserUpdate) (*model.User, error)
	List(ctx context.Context, role, email string) ([]model.User, error)
}

type userService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) UserService { return &userService{db: db} }

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var u model.User
	err = s.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr("load user", err)
	}
	return &u, nil
}

// Update with no fields set returns the user unchanged.
func (s *userService) Update(ctx context.Context, id string, in UserUpdate) (*model.User, error) {
	cols := map[string]any{}
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Phone != nil {
		cols["phone"] = *in.Phone
	}
	if in.PhotoURL != nil {
		cols["photo_url"] = *in.PhotoURL
	}
	if in.AdFree != nil {
		cols["ad_free"] = *in.AdFree
	}
	if len(cols) == 0 {
		return s.Get(ctx, id)
	}

	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	cols["updated_at"] = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", pid).Updates(cols)
	if res.Error != nil {
		return nil, storageErr("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.Get(ctx, pid)
}

func (s *userService) List(ctx context.Context, role, email string) ([]model.User, error) {
	tx := s.db.WithContext(ctx)
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	if email != "" {
		tx = tx.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
	}
	var users []model.User
	err := tx.Order("created_at desc").Find(&users).Error
	return users, storageErr("list users", err)
}
