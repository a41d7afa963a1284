package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
	modlogsvc "github.com/wdhive/photo-gallery/internal/services/modlog"
)

type StatusLogRepo struct {
	pool *pgxpool.Pool
}

func NewStatusLogRepo(pool *pgxpool.Pool) *StatusLogRepo {
	return &StatusLogRepo{pool: pool}
}

func (r *StatusLogRepo) ListByMedia(ctx context.Context, mediaID string) ([]model.StatusChangeLog, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT l.id, l.media_id, l.user_id, l.message, l.created_at,
	u.name, u.role, u.avatar_sm, u.avatar_md, u.avatar_lg
FROM media_status_logs l
JOIN users u ON u.id = l.user_id
WHERE l.media_id = $1
ORDER BY l.created_at ASC, l.id ASC
`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("list status log: %w", err)
	}
	defer rows.Close()

	entries := make([]model.StatusChangeLog, 0)
	for rows.Next() {
		var entry model.StatusChangeLog
		if err := rows.Scan(
			&entry.ID,
			&entry.MediaID,
			&entry.UserID,
			&entry.Message,
			&entry.CreatedAt,
			&entry.User.Name,
			&entry.User.Role,
			&entry.User.AvatarSm,
			&entry.User.AvatarMd,
			&entry.User.AvatarLg,
		); err != nil {
			return nil, fmt.Errorf("scan status log entry: %w", err)
		}
		entry.User.ID = entry.UserID
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate status log: %w", rows.Err())
	}

	return entries, nil
}

// CreateMessage inserts the entry only while the owning media has not
// reached the terminal approved status. The status check lives inside
// the insert statement, so a concurrent approval cannot interleave
// between check and write.
func (r *StatusLogRepo) CreateMessage(ctx context.Context, mediaID, userID, message string) (*model.StatusChangeLog, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	var entry model.StatusChangeLog
	err := r.pool.QueryRow(ctx, `
INSERT INTO media_status_logs (id, media_id, user_id, message, created_at)
SELECT $1, m.id, $3, $4, NOW()
FROM media m
WHERE m.id = $2 AND m.status <> $5
RETURNING id, media_id, user_id, message, created_at
`, uuid.NewString(), mediaID, userID, message, string(enums.ContentStatusApproved)).Scan(
		&entry.ID,
		&entry.MediaID,
		&entry.UserID,
		&entry.Message,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, modlogsvc.ErrMediaApproved
		}
		return nil, fmt.Errorf("insert status log entry: %w", err)
	}

	if err := r.pool.QueryRow(ctx, `
SELECT name, role, avatar_sm, avatar_md, avatar_lg
FROM users
WHERE id = $1
`, userID).Scan(
		&entry.User.Name,
		&entry.User.Role,
		&entry.User.AvatarSm,
		&entry.User.AvatarMd,
		&entry.User.AvatarLg,
	); err != nil {
		return nil, fmt.Errorf("load message author: %w", err)
	}
	entry.User.ID = userID

	return &entry, nil
}

func (r *StatusLogRepo) SetStatus(ctx context.Context, mediaID string, status enums.ContentStatus) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE media
SET status = $2
WHERE id = $1
`, mediaID, string(status))
	if err != nil {
		return fmt.Errorf("update media status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update media status: %w", pgx.ErrNoRows)
	}

	return nil
}

// Reject flips the media to rejected and records the moderator's note in
// one transaction, so a failed note insert rolls the status back.
func (r *StatusLogRepo) Reject(ctx context.Context, mediaID, userID, note string) error {
	return WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE media
SET status = $2
WHERE id = $1
`, mediaID, string(enums.ContentStatusRejected))
		if err != nil {
			return fmt.Errorf("update media status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update media status: %w", pgx.ErrNoRows)
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO media_status_logs (id, media_id, user_id, message, created_at)
VALUES ($1, $2, $3, $4, NOW())
`, uuid.NewString(), mediaID, userID, note); err != nil {
			return fmt.Errorf("insert rejection note: %w", err)
		}

		return nil
	})
}

