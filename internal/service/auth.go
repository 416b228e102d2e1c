package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
)

type SignupInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone"`
	Age      *int    `json:"age"`
	Gender   *string `json:"gender"`
}

// AuthService checks credentials only. It issues no tokens and keeps no
// sessions; callers get the user record back.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	db   *gorm.DB
	cost int
}

func NewAuthService(db *gorm.DB) AuthService {
	return &authService{db: db, cost: bcrypt.DefaultCost}
}

func (a *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalid("a valid email is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.Password == "" {
		return nil, invalid("password is required")
	}
	if in.Age != nil && (*in.Age < 0 || *in.Age > 120) {
		return nil, invalid("age must be between 0 and 120")
	}
	var gender *model.Gender
	if in.Gender != nil {
		g := model.Gender(*in.Gender)
		if !g.Valid() {
			return nil, invalid("unknown gender %q", *in.Gender)
		}
		gender = &g
	}

	var existing int64
	if err := a.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, storageErr("lookup user", err)
	}
	if existing > 0 {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if err != nil {
		return nil, err
	}
	u := model.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.SignupRole(in.Role),
		Phone:        in.Phone,
		Age:          in.Age,
		Gender:       gender,
		IsActive:     true,
	}
	if err := a.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, storageErr("create user", err)
	}
	return &u, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	var u model.User
	err := a.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("lookup user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}
