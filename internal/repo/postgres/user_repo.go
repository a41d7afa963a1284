package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wdhive/photo-gallery/internal/domain/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, name, email, role, avatar_sm, avatar_md, avatar_lg, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1
`, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.AvatarSm,
		&user.AvatarMd,
		&user.AvatarLg,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, id string, sm, md, lg *string) (*model.User, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
UPDATE users
SET avatar_sm = $2, avatar_md = $3, avatar_lg = $4, updated_at = NOW()
WHERE id = $1
RETURNING id, name, email, role, avatar_sm, avatar_md, avatar_lg, created_at, updated_at
`, id, sm, md, lg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.AvatarSm,
		&user.AvatarMd,
		&user.AvatarLg,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update user avatar: %w", err)
	}

	return &user, nil
}
