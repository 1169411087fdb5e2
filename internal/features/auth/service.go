package auth

import (
	"context"
	"errors"

	common_models "go-permit/internal/common/models"
	"go-permit/internal/features/audit"
	"go-permit/internal/features/user"
	"go-permit/pkg/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *user.User, error)
}

type AuthServiceImpl struct {
	UserRepo     user.UserRepository
	AuditService audit.AuditService
}

func NewAuthService(userRepo user.UserRepository, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		UserRepo:     userRepo,
		AuditService: auditService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || u.Password != utils.HashPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Name, u.Department, u.Role)
	if err != nil {
		return "", nil, err
	}

	_ = s.AuditService.LogAction(ctx, common_models.AuditActionLogin, "", u.ID.Hex(), nil)

	return token, u, nil
}
