package audit

import (
	"context"
	"time"

	common_models "go-permit/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditService interface {
	LogAction(ctx context.Context, action common_models.AuditAction, permitID, actorID string, changes map[string]common_models.Change) error
	ListByPermit(ctx context.Context, permitID string, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo AuditRepository
}

func NewAuditService(repo AuditRepository) AuditService {
	return &AuditServiceImpl{Repo: repo}
}

func (s *AuditServiceImpl) LogAction(ctx context.Context, action common_models.AuditAction, permitID, actorID string, changes map[string]common_models.Change) error {
	if actorID == "" {
		actorID = "system"
	}

	log := common_models.AuditLog{
		ID:        primitive.NewObjectID(),
		Action:    action,
		PermitID:  permitID,
		ActorID:   actorID,
		Changes:   changes,
		Timestamp: time.Now(),
	}

	return s.Repo.Create(ctx, log)
}

func (s *AuditServiceImpl) ListByPermit(ctx context.Context, permitID string, limit int64) ([]common_models.AuditLog, error) {
	return s.Repo.ListByPermit(ctx, permitID, limit)
}
