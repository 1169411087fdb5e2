package permit

import (
	"context"

	"go-permit/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterRepository hands out monotonic sequence numbers per key.
// Keys are "{prefix}-{yyyymmdd}" so sequences reset daily per permit type.
type CounterRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}

type CounterRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCounterRepository(mongodb *database.MongodbDB) CounterRepository {
	return &CounterRepositoryImpl{
		Collection: mongodb.DB.Collection("permit_counters"),
	}
}

// Next atomically increments and returns the counter for key. The $inc on a
// single document is atomic in Mongo, so concurrent creates cannot draw the
// same sequence number.
func (r *CounterRepositoryImpl) Next(ctx context.Context, key string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
