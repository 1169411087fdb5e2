package permit

import (
	"context"
	"fmt"
	"time"

	"go-permit/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListFilter narrows List queries. Zero values mean "no filter".
type ListFilter struct {
	Status     PermitStatus
	Type       PermitType
	Department string
	Search     string // case-insensitive substring on title / requester name
}

type PermitRepository interface {
	Insert(ctx context.Context, p *Permit) error
	GetByID(ctx context.Context, id string) (*Permit, error)
	List(ctx context.Context, filter ListFilter) ([]Permit, error)
	// UpdateDecision persists a decision with a compare-and-set on
	// (id, version, decided step still pending). Returns ErrConflict when
	// another writer got there first.
	UpdateDecision(ctx context.Context, p *Permit, expectedVersion int64, decidedIndex int) error
	EnsureIndexes(ctx context.Context) error
}

type PermitRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPermitRepository(mongodb *database.MongodbDB) PermitRepository {
	return &PermitRepositoryImpl{
		Collection: mongodb.DB.Collection("permits"),
	}
}

func (r *PermitRepositoryImpl) Insert(ctx context.Context, p *Permit) error {
	_, err := r.Collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	return err
}

func (r *PermitRepositoryImpl) GetByID(ctx context.Context, id string) (*Permit, error) {
	var p Permit
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PermitRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]Permit, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Department != "" {
		query["requester.department"] = filter.Department
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": regex}},
			{"requester.name": bson.M{"$regex": regex}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var permits []Permit
	if err = cursor.All(ctx, &permits); err != nil {
		return nil, err
	}
	return permits, nil
}

// UpdateDecision writes the whole post-decision aggregate, but only if the
// stored document still has the expected version and the decided step is
// still pending. Either condition being stale matches nothing, which keeps
// two racing decisions from both succeeding.
func (r *PermitRepositoryImpl) UpdateDecision(ctx context.Context, p *Permit, expectedVersion int64, decidedIndex int) error {
	filter := bson.M{
		"_id":     p.ID,
		"version": expectedVersion,
		fmt.Sprintf("approvers.%d.status", decidedIndex): ApproverStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":                 p.Status,
			"current_approver_index": p.CurrentApproverIndex,
			"approvers":              p.Approvers,
			"updated_at":             time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a vanished permit from a lost race
		count, err := r.Collection.CountDocuments(ctx, bson.M{"_id": p.ID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	p.Version = expectedVersion + 1
	return nil
}

func (r *PermitRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "requester.department", Value: 1}}},
	})
	return err
}
