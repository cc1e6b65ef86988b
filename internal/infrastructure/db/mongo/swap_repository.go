package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

const collectionSwaps = "swap_requests"

type SwapRepository struct {
	col *mongo.Collection
}

func NewSwapRepository(db *mongo.Database) *SwapRepository {
	return &SwapRepository{col: db.Collection(collectionSwaps)}
}

// Create inserts a new swap request document.
func (r *SwapRepository) Create(ctx context.Context, s *domain.SwapRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return swapInsertError(err)
	}
	return nil
}

// swapInsertError tells the two unique indexes apart by the index name the
// server reports in the E11000 message. Anything but the open-pair index is
// the idempotency key.
func swapInsertError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert swap: %w", err)
	}
	if strings.Contains(err.Error(), openPairIndex) {
		return domain.ErrDuplicateSwap
	}
	return domain.ErrIdempotencyKeyUsed
}

func (r *SwapRepository) FindByID(ctx context.Context, id string) (*domain.SwapRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIdempotencyKey retrieves an existing swap that was created with the given key.
func (r *SwapRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.SwapRequest, error) {
	return r.findOne(ctx, bson.M{"idempotency_key": key})
}

// FindOpen returns the non-terminal swap proposed by userA to userB for the
// same pair of skills, if any.
func (r *SwapRepository) FindOpen(ctx context.Context, userAID, userBID, skillAID, skillBID string) (*domain.SwapRequest, error) {
	return r.findOne(ctx, bson.M{
		"user_a_id":  userAID,
		"user_b_id":  userBID,
		"skill_a_id": skillAID,
		"skill_b_id": skillBID,
		"state":      bson.M{"$in": domain.OpenSwapStates},
	})
}

func (r *SwapRepository) findOne(ctx context.Context, filter bson.M) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.SwapRequest
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSwapNotFound
		}
		return nil, fmt.Errorf("find swap: %w", err)
	}
	return &s, nil
}

// UpdateState moves the swap to next only while its stored state still equals
// expected. When nothing matched, a second lookup tells a missing swap apart
// from a lost race.
func (r *SwapRepository) UpdateState(ctx context.Context, id string, expected, next domain.SwapState) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "state": expected}
	update := bson.M{"$set": bson.M{"state": next, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s domain.SwapRequest
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update swap state: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("check swap: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrSwapNotFound
	}
	return nil, domain.ErrConflict
}

func (r *SwapRepository) List(ctx context.Context, f ports.SwapFilter) ([]domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.UserID != "" {
		filter["$or"] = bson.A{bson.M{"user_a_id": f.UserID}, bson.M{"user_b_id": f.UserID}}
	}
	if f.State != "" {
		filter["state"] = f.State
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find swaps: %w", err)
	}
	swaps := []domain.SwapRequest{}
	if err := cur.All(ctx, &swaps); err != nil {
		return nil, fmt.Errorf("decode swaps: %w", err)
	}
	return swaps, nil
}

func (r *SwapRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete swap: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSwapNotFound
	}
	return nil
}

func (r *SwapRepository) CountByState(ctx context.Context) (map[domain.SwapState]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$state"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate swaps: %w", err)
	}

	var rows []struct {
		State domain.SwapState `bson:"_id"`
		Count int64            `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode swap counts: %w", err)
	}

	out := make(map[domain.SwapState]int64, len(rows))
	for _, row := range rows {
		out[row.State] = row.Count
	}
	return out, nil
}

func (r *SwapRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since.UTC()}})
}
