package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// CounterRepository implements ports.Sequencer with a dedicated counters
// collection. Next is a single atomic $inc upsert, so concurrent callers
// always observe distinct values — there is no read-then-write window.
type CounterRepository struct {
	coll *mongo.Collection
}

func NewCounterRepository(db *mongo.Database) *CounterRepository {
	return &CounterRepository{coll: db.Collection(countersCollection)}
}

type counterDoc struct {
	Seq int64 `bson:"seq"`
}

// Next increments and returns the named sequence, starting at 1 for a
// sequence that does not exist yet.
func (r *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("increment counter %q: %w", name, err)
	}
	return doc.Seq, nil
}
