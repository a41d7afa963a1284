package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	pgrepo "github.com/wdhive/photo-gallery/internal/repo/postgres"
)

const defaultRetention = 90 * 24 * time.Hour

type mediaStore interface {
	ListRejectedOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]pgrepo.StaleMedia, error)
	ClearMediaURL(ctx context.Context, id string) error
}

type objectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Job reclaims object storage held by media that stayed rejected past
// the retention window. The media row and its moderation log are kept;
// only the stored object goes, and the row's media URL is cleared so the
// item is not visited again. A storage failure skips the item, leaving
// it for the next run.
type Job struct {
	media     mediaStore
	storage   objectDeleter
	retention time.Duration
	batchSize int
	now       func() time.Time
	logger    *zap.Logger
}

func New(media mediaStore, storage objectDeleter, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = defaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		media:     media,
		storage:   storage,
		retention: retention,
		batchSize: 500,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.media == nil || j.storage == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	stale, err := j.media.ListRejectedOlderThan(ctx, cutoff, j.batchSize)
	if err != nil {
		return fmt.Errorf("list stale rejected media: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	reclaimed := 0
	for _, item := range stale {
		if err := j.storage.Delete(ctx, item.MediaURL); err != nil {
			j.logger.Warn("failed to delete media object from storage",
				zap.Error(err), zap.String("object_key", item.MediaURL))
			continue
		}
		if err := j.media.ClearMediaURL(ctx, item.ID); err != nil {
			return fmt.Errorf("clear media url: %w", err)
		}
		reclaimed++
	}

	j.logger.Info("storage cleanup for stale rejected media completed",
		zap.Int("reclaimed", reclaimed), zap.Int("candidates", len(stale)))
	return nil
}
