package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

const collectionSkills = "skills"

type SkillRepository struct {
	col *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) *SkillRepository {
	return &SkillRepository{col: db.Collection(collectionSkills)}
}

func skillFilter(f ports.SkillFilter) bson.M {
	filter := bson.M{}
	switch {
	case f.UserID != "":
		filter["user_id"] = f.UserID
	case f.ExcludeUserID != "":
		filter["user_id"] = bson.M{"$ne": f.ExcludeUserID}
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	return filter
}

func (r *SkillRepository) List(ctx context.Context, f ports.SkillFilter) ([]domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if f.UserID != "" && f.UserID == f.ExcludeUserID {
		return []domain.Skill{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, skillFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find skills: %w", err)
	}
	skills := []domain.Skill{}
	if err := cur.All(ctx, &skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return skills, nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Skill
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, fmt.Errorf("find skill: %w", err)
	}
	return &s, nil
}

func (r *SkillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, skill); err != nil {
		return fmt.Errorf("insert skill: %w", err)
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepository) Count(ctx context.Context, f ports.SkillFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, skillFilter(f))
}
