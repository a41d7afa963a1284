package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wdhive/photo-gallery/internal/domain/model"
	mediasvc "github.com/wdhive/photo-gallery/internal/services/media"
)

const mediaSelectColumns = `
	m.id, m.title, m.description, m.tags, m.category_id, m.author_id, m.status, m.media_url, m.created_at,
	u.name, u.role, u.avatar_sm, u.avatar_md, u.avatar_lg,
	c.name, c.created_at`

type MediaRepo struct {
	pool *pgxpool.Pool
}

func NewMediaRepo(pool *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{pool: pool}
}

func (r *MediaRepo) FindByID(ctx context.Context, id string) (*model.MediaDetail, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+mediaSelectColumns+`
FROM media m
JOIN users u ON u.id = m.author_id
LEFT JOIN categories c ON c.id = m.category_id
WHERE m.id = $1
LIMIT 1
`, id)

	detail, err := scanMediaDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find media by id: %w", err)
	}

	return detail, nil
}

func (r *MediaRepo) FindMany(ctx context.Context, q mediasvc.ListQuery) ([]model.MediaDetail, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if q.Take <= 0 {
		q.Take = mediasvc.DefaultListLimit
	}

	args := make([]any, 0, 8)
	conds := make([]string, 0, 8)

	if q.Status != "" {
		args = append(args, string(q.Status))
		conds = append(conds, fmt.Sprintf("m.status = $%d", len(args)))
	}
	if q.AuthorID != "" {
		args = append(args, q.AuthorID)
		conds = append(conds, fmt.Sprintf("m.author_id = $%d", len(args)))
	}
	if q.CategoryID != "" {
		args = append(args, q.CategoryID)
		conds = append(conds, fmt.Sprintf("m.category_id = $%d", len(args)))
	}
	if len(q.ExcludeIDs) > 0 {
		args = append(args, q.ExcludeIDs)
		conds = append(conds, fmt.Sprintf("NOT (m.id = ANY($%d::text[]))", len(args)))
	}
	if len(q.Or) > 0 {
		ors := make([]string, 0, len(q.Or))
		for _, clause := range q.Or {
			ors = append(ors, clausePredicate(clause, &args))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if q.Match != nil {
		conds = append(conds, clausePredicate(*q.Match, &args))
	}
	if q.Cursor != "" {
		// Cursor row itself is skipped, forward pagination in creation
		// order descending.
		args = append(args, q.Cursor)
		conds = append(conds, fmt.Sprintf(
			"(m.created_at, m.id) < (SELECT created_at, id FROM media WHERE id = $%d)", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, q.Take)
	query := fmt.Sprintf(`
SELECT`+mediaSelectColumns+`
FROM media m
JOIN users u ON u.id = m.author_id
LEFT JOIN categories c ON c.id = m.category_id
%s
ORDER BY m.created_at DESC, m.id DESC
LIMIT $%d
`, where, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	items := make([]model.MediaDetail, 0, q.Take)
	for rows.Next() {
		detail, err := scanMediaDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		items = append(items, *detail)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate media rows: %w", rows.Err())
	}

	if q.IncludeUpdateRequest {
		if err := r.attachUpdateRequests(ctx, items); err != nil {
			return nil, err
		}
	}

	return items, nil
}

func (r *MediaRepo) FindBackup(ctx context.Context, cursor string, take int) ([]mediasvc.BackupRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if take <= 0 {
		take = mediasvc.DefaultBackupTake
	}

	args := []any{take}
	cursorCond := ""
	if cursor != "" {
		args = append(args, cursor)
		cursorCond = "WHERE (created_at, id) < (SELECT created_at, id FROM media WHERE id = $2)"
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT id, media_url
FROM media
%s
ORDER BY created_at DESC, id DESC
LIMIT $1
`, cursorCond), args...)
	if err != nil {
		return nil, fmt.Errorf("list media backup: %w", err)
	}
	defer rows.Close()

	records := make([]mediasvc.BackupRecord, 0)
	for rows.Next() {
		var rec mediasvc.BackupRecord
		if err := rows.Scan(&rec.ID, &rec.MediaURL); err != nil {
			return nil, fmt.Errorf("scan backup row: %w", err)
		}
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate backup rows: %w", rows.Err())
	}

	return records, nil
}

func (r *MediaRepo) attachUpdateRequests(ctx context.Context, items []model.MediaDetail) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, media_id, title, description, tags, category_id, created_at
FROM media_update_requests
WHERE media_id = ANY($1::text[])
`, ids)
	if err != nil {
		return fmt.Errorf("list update requests: %w", err)
	}
	defer rows.Close()

	byMedia := make(map[string]*model.UpdateRequest, len(items))
	for rows.Next() {
		var req model.UpdateRequest
		if err := rows.Scan(&req.ID, &req.MediaID, &req.Title, &req.Description,
			&req.Tags, &req.CategoryID, &req.CreatedAt); err != nil {
			return fmt.Errorf("scan update request: %w", err)
		}
		byMedia[req.MediaID] = &req
	}
	if rows.Err() != nil {
		return fmt.Errorf("iterate update requests: %w", rows.Err())
	}

	for i := range items {
		items[i].UpdateRequest = byMedia[items[i].ID]
	}

	return nil
}

// clausePredicate renders one search clause as SQL, appending its bind
// values to args.
func clausePredicate(c mediasvc.Clause, args *[]any) string {
	switch c.Kind {
	case mediasvc.ClauseTitleContains:
		*args = append(*args, "%"+escapeLike(c.Text)+"%")
		return fmt.Sprintf("m.title ILIKE $%d", len(*args))
	case mediasvc.ClauseDescriptionContains:
		*args = append(*args, "%"+escapeLike(c.Text)+"%")
		return fmt.Sprintf("m.description ILIKE $%d", len(*args))
	case mediasvc.ClauseTagsHasAll:
		*args = append(*args, c.Tags)
		return fmt.Sprintf("m.tags @> $%d::text[]", len(*args))
	case mediasvc.ClauseTagsHasAny:
		*args = append(*args, c.Tags)
		return fmt.Sprintf("m.tags && $%d::text[]", len(*args))
	case mediasvc.ClauseCategoryEquals:
		*args = append(*args, c.CategoryID)
		return fmt.Sprintf("m.category_id = $%d", len(*args))
	}
	return "FALSE"
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMediaDetail(row rowScanner) (*model.MediaDetail, error) {
	var (
		detail     model.MediaDetail
		catName    *string
		catCreated *time.Time
	)

	err := row.Scan(
		&detail.ID,
		&detail.Title,
		&detail.Description,
		&detail.Tags,
		&detail.CategoryID,
		&detail.AuthorID,
		&detail.Status,
		&detail.MediaURL,
		&detail.CreatedAt,
		&detail.Author.Name,
		&detail.Author.Role,
		&detail.Author.AvatarSm,
		&detail.Author.AvatarMd,
		&detail.Author.AvatarLg,
		&catName,
		&catCreated,
	)
	if err != nil {
		return nil, err
	}

	detail.Author.ID = detail.AuthorID
	if detail.CategoryID != nil && catName != nil {
		category := model.Category{ID: *detail.CategoryID, Name: *catName}
		if catCreated != nil {
			category.CreatedAt = *catCreated
		}
		detail.Category = &category
	}

	return &detail, nil
}

// StaleMedia is the projection the cleanup job works on.
type StaleMedia struct {
	ID       string
	MediaURL string
}

func (r *MediaRepo) ListRejectedOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]StaleMedia, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 500
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, media_url
		FROM media
		WHERE status = 'REJECTED' AND created_at < $1 AND media_url <> ''
		ORDER BY created_at ASC
		LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list rejected media: %w", err)
	}
	defer rows.Close()

	var stale []StaleMedia
	for rows.Next() {
		var item StaleMedia
		if err := rows.Scan(&item.ID, &item.MediaURL); err != nil {
			return nil, fmt.Errorf("scan rejected media: %w", err)
		}
		stale = append(stale, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rejected media: %w", err)
	}

	return stale, nil
}

// ClearMediaURL marks a media row as having no stored object. The row
// itself is never deleted.
func (r *MediaRepo) ClearMediaURL(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `UPDATE media SET media_url = '' WHERE id = $1`, id); err != nil {
		return fmt.Errorf("clear media url: %w", err)
	}

	return nil
}
