package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

const openPairIndex = "swap_requests_open_pair_uniq"

// EnsureIndexes creates the indexes every collection relies on. Unique
// indexes back the duplicate-email, idempotency-key and one-open-swap-per-pair
// guarantees. The open-pair index filters with $in, which needs MongoDB 6.0.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	sparseUnique := options.Index().SetUnique(true).SetSparse(true)
	openPairUnique := options.Index().
		SetName(openPairIndex).
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"state": bson.M{"$in": domain.OpenSwapStates}})

	plan := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionSkills: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}}},
		},
		collectionSwaps: {
			{Keys: bson.D{{Key: "user_a_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_b_id", Value: 1}}},
			{Keys: bson.D{{Key: "state", Value: 1}}},
			{Keys: bson.D{{Key: "idempotency_key", Value: 1}}, Options: sparseUnique},
			{
				Keys: bson.D{
					{Key: "user_a_id", Value: 1}, {Key: "user_b_id", Value: 1},
					{Key: "skill_a_id", Value: 1}, {Key: "skill_b_id", Value: 1},
				},
				Options: openPairUnique,
			},
		},
		collectionSwapEvents: {
			{Keys: bson.D{{Key: "swap_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
	}

	for name, indexes := range plan {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}
