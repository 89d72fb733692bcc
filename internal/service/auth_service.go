package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
}

func NewAuthService(users repository.UserRepository, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

func (a *AuthService) Login(ctx context.Context, email, password string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Role, 24*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

type NewUser struct {
	Name           string
	Email          string
	Password       string
	Role           string
	Department     string
	CreateEmployee bool
}

func (a *AuthService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" || len(in.Password) < 6 {
		return nil, errors.New("invalid input")
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Email: in.Email,
		Role:  role,
	}
	if err := a.users.Create(ctx, u, hash, in.CreateEmployee, in.Department); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *AuthService) ResetPassword(ctx context.Context, id, password string) error {
	if len(password) < 6 {
		return errors.New("password too short")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return a.users.UpdatePasswordHash(ctx, id, hash)
}
