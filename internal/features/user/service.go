package user

import (
	"context"
	"errors"
	"time"
)

type UserService interface {
	CreateUser(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role string) ([]User, error)
}

type UserServiceImpl struct {
	Repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &UserServiceImpl{Repo: repo}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, u *User) error {
	if u.Email == "" || u.Name == "" {
		return errors.New("name and email are required")
	}
	existing, err := s.Repo.FindByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("a user with this email already exists")
	}
	u.CreatedAt = time.Now()
	return s.Repo.Create(ctx, u)
}

func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.Repo.FindByEmail(ctx, email)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

func (s *UserServiceImpl) ListByRole(ctx context.Context, role string) ([]User, error) {
	return s.Repo.ListByRole(ctx, role)
}
