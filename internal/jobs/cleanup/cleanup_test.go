package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	pgrepo "github.com/wdhive/photo-gallery/internal/repo/postgres"
)

type fakeMediaStore struct {
	stale      []pgrepo.StaleMedia
	lastCutoff time.Time
	cleared    []string
}

func (f *fakeMediaStore) ListRejectedOlderThan(_ context.Context, cutoff time.Time, _ int) ([]pgrepo.StaleMedia, error) {
	f.lastCutoff = cutoff
	return f.stale, nil
}

func (f *fakeMediaStore) ClearMediaURL(_ context.Context, id string) error {
	f.cleared = append(f.cleared, id)
	return nil
}

type fakeObjectDeleter struct {
	deleted []string
	failKey string
}

func (f *fakeObjectDeleter) Delete(_ context.Context, key string) error {
	if key == f.failKey {
		return errors.New("object storage unavailable")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func TestRunReclaimsStorageKeepingRows(t *testing.T) {
	media := &fakeMediaStore{stale: []pgrepo.StaleMedia{
		{ID: "m1", MediaURL: "media/m1.jpg"},
		{ID: "m2", MediaURL: "media/m2.jpg"},
	}}
	storage := &fakeObjectDeleter{}

	job := New(media, storage, 90*24*time.Hour, zap.NewNop())
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantCutoff := now.Add(-90 * 24 * time.Hour)
	if !media.lastCutoff.Equal(wantCutoff) {
		t.Fatalf("cutoff = %v, want %v", media.lastCutoff, wantCutoff)
	}
	if len(storage.deleted) != 2 {
		t.Fatalf("deleted objects = %v, want both", storage.deleted)
	}
	if len(media.cleared) != 2 || media.cleared[0] != "m1" || media.cleared[1] != "m2" {
		t.Fatalf("cleared urls = %v, want [m1 m2]", media.cleared)
	}
}

func TestRunSkipsItemOnStorageFailure(t *testing.T) {
	media := &fakeMediaStore{stale: []pgrepo.StaleMedia{
		{ID: "m1", MediaURL: "media/m1.jpg"},
		{ID: "m2", MediaURL: "media/m2.jpg"},
	}}
	storage := &fakeObjectDeleter{failKey: "media/m1.jpg"}

	job := New(media, storage, 0, zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// The failed item keeps its URL so the next run retries it.
	if len(media.cleared) != 1 || media.cleared[0] != "m2" {
		t.Fatalf("cleared urls = %v, want [m2]", media.cleared)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != "media/m2.jpg" {
		t.Fatalf("deleted objects = %v, want [media/m2.jpg]", storage.deleted)
	}
}

func TestRunNoopWithoutStorage(t *testing.T) {
	media := &fakeMediaStore{stale: []pgrepo.StaleMedia{{ID: "m1", MediaURL: "media/m1.jpg"}}}

	job := New(media, nil, 0, zap.NewNop())
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run without storage: %v", err)
	}
	if len(media.cleared) != 0 {
		t.Fatalf("no rows must be touched without storage, got %v", media.cleared)
	}

	job = New(nil, &fakeObjectDeleter{}, 0, zap.NewNop())
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run without media store: %v", err)
	}
}
