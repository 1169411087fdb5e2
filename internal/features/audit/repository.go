package audit

import (
	"context"

	common_models "go-permit/internal/common/models"
	"go-permit/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	Create(ctx context.Context, log common_models.AuditLog) error
	ListByPermit(ctx context.Context, permitID string, limit int64) ([]common_models.AuditLog, error)
}

type AuditRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewAuditRepository(mongodb *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		Collection: mongodb.DB.Collection("audit_logs"),
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, log common_models.AuditLog) error {
	_, err := r.Collection.InsertOne(ctx, log)
	return err
}

func (r *AuditRepositoryImpl) ListByPermit(ctx context.Context, permitID string, limit int64) ([]common_models.AuditLog, error) {
	if limit < 1 {
		limit = 50
	}
	opts := options.Find().SetLimit(limit).SetSort(bson.M{"timestamp": -1})

	cursor, err := r.Collection.Find(ctx, bson.M{"permit_id": permitID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []common_models.AuditLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
