package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

const collectionSwapEvents = "swap_events"

// SwapEventRepository persists the transition audit trail.
type SwapEventRepository struct {
	col *mongo.Collection
}

func NewSwapEventRepository(db *mongo.Database) *SwapEventRepository {
	return &SwapEventRepository{col: db.Collection(collectionSwapEvents)}
}

// Insert persists a transition event to the swap_events audit collection.
func (r *SwapEventRepository) Insert(ctx context.Context, e *domain.SwapEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *e
	doc.Timestamp = e.Timestamp.UTC()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert swap event: %w", err)
	}
	return nil
}

func (r *SwapEventRepository) ListBySwap(ctx context.Context, swapID string) ([]domain.SwapEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"swap_id": swapID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find swap events: %w", err)
	}
	events := []domain.SwapEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode swap events: %w", err)
	}
	return events, nil
}
