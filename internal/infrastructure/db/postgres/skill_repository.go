package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

const (
	skillColumns = `id, user_id, skill_name, skill_category, skill_level, type, created_at`
	skillWhere   = ` WHERE ($1 = '' OR user_id = $1) AND ($2 = '' OR user_id <> $2) AND ($3 = '' OR type = $3)`
)

type SkillRepository struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{db: db}
}

func scanSkill(row pgx.Row) (*domain.Skill, error) {
	var s domain.Skill
	var level, typ string
	if err := row.Scan(&s.ID, &s.UserID, &s.SkillName, &s.SkillCategory, &level, &typ, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, fmt.Errorf("scan skill: %w", err)
	}
	s.SkillLevel = domain.SkillLevel(level)
	s.Type = domain.SkillType(typ)
	return &s, nil
}

func (r *SkillRepository) List(ctx context.Context, f ports.SkillFilter) ([]domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + skillColumns + ` FROM skills` + skillWhere + ` ORDER BY created_at DESC, id`
	rows, err := r.db.Query(ctx, query, f.UserID, f.ExcludeUserID, string(f.Type))
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *s)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
}

func (r *SkillRepository) Create(ctx context.Context, s *domain.Skill) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `INSERT INTO skills (` + skillColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query, s.ID, s.UserID, s.SkillName, s.SkillCategory,
		string(s.SkillLevel), string(s.Type), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert skill: %w", err)
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepository) Count(ctx context.Context, f ports.SkillFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM skills`+skillWhere, f.UserID, f.ExcludeUserID, string(f.Type)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count skills: %w", err)
	}
	return n, nil
}
