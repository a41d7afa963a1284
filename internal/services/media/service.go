package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/domain/rules"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
)

const (
	DefaultRelatedTake = 9
	DefaultListLimit   = 30
	MaxListLimit       = 100
	DefaultBackupTake  = 20000
)

// ErrMediaNotFound covers both a missing row and a row the actor may not
// see, so restricted media cannot be probed for existence.
var ErrMediaNotFound = reqerr.NotFound("Media not found")

// ListQuery is one store read. Or clauses are combined into a single
// disjunction; Match is a lone clause ANDed with the rest of the filter.
type ListQuery struct {
	Status               enums.ContentStatus
	AuthorID             string
	CategoryID           string
	Or                   []Clause
	Match                *Clause
	ExcludeIDs           []string
	Cursor               string
	Take                 int
	IncludeUpdateRequest bool
}

type BackupRecord struct {
	ID       string `json:"id"`
	MediaURL string `json:"media_url"`
}

type Store interface {
	// FindByID returns nil when no row exists.
	FindByID(ctx context.Context, id string) (*model.MediaDetail, error)
	FindMany(ctx context.Context, q ListQuery) ([]model.MediaDetail, error)
	FindBackup(ctx context.Context, cursor string, take int) ([]BackupRecord, error)
}

type ListOptions struct {
	Cursor        string
	Limit         int
	Category      string
	AuthorID      string
	Status        enums.ContentStatus
	Search        string
	UpdateRequest bool
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetMedia loads one media item with relations. Not-found and
// view-denied are indistinguishable to the caller.
func (s *Service) GetMedia(ctx context.Context, id string, actor *model.User) (*model.MediaDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMediaNotFound
	}
	if s.store == nil {
		return nil, fmt.Errorf("media store is not configured")
	}

	media, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if media == nil || !rules.MediaPermission(media.Media).View(actor) {
		return nil, ErrMediaNotFound
	}

	return media, nil
}

// GetLatestMediaList returns a createdAt-descending page. Actors who are
// neither the listed author nor moderator-level only ever see approved
// items regardless of the requested status filter.
func (s *Service) GetLatestMediaList(ctx context.Context, actor *model.User, opts ListOptions) ([]model.MediaDetail, error) {
	if s.store == nil {
		return nil, fmt.Errorf("media store is not configured")
	}

	isListedAuthor := actor != nil && opts.AuthorID != "" && opts.AuthorID == actor.ID
	isModerator := actor != nil && rules.UserPermission(*actor).IsModeratorLevel()

	if !isListedAuthor && !isModerator {
		opts.Status = enums.ContentStatusApproved
	}

	if opts.UpdateRequest && !(isListedAuthor || (opts.AuthorID != "" && isModerator)) {
		return nil, reqerr.Forbidden("Permission denied to get pending updates")
	}

	// Without an author filter an unset status must not leak every
	// status to the public listing.
	if opts.AuthorID == "" && opts.Status == "" {
		opts.Status = enums.ContentStatusApproved
	}

	take := opts.Limit
	if take <= 0 {
		take = DefaultListLimit
	}
	if take > MaxListLimit {
		take = MaxListLimit
	}

	return s.store.FindMany(ctx, ListQuery{
		Status:               opts.Status,
		AuthorID:             opts.AuthorID,
		CategoryID:           opts.Category,
		Or:                   SearchClausesOR(opts.Search),
		Cursor:               opts.Cursor,
		Take:                 take,
		IncludeUpdateRequest: opts.UpdateRequest,
	})
}

// GetRelatedMedia tries the clause sequence from relatedClauses one store
// query at a time, excluding everything already collected, until take
// items are gathered or the clauses run out. Only approved media is ever
// returned and the reference item itself never is.
func (s *Service) GetRelatedMedia(ctx context.Context, ref model.Media, take int) ([]model.MediaDetail, error) {
	if s.store == nil {
		return nil, fmt.Errorf("media store is not configured")
	}
	if take <= 0 {
		take = DefaultRelatedTake
	}

	related := make([]model.MediaDetail, 0, take)
	exclude := make([]string, 0, take+1)
	exclude = append(exclude, ref.ID)

	for _, clause := range relatedClauses(ref) {
		remaining := take - len(related)
		if remaining <= 0 {
			break
		}

		clause := clause
		matched, err := s.store.FindMany(ctx, ListQuery{
			Status:     enums.ContentStatusApproved,
			Match:      &clause,
			ExcludeIDs: append([]string(nil), exclude...),
			Take:       remaining,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range matched {
			related = append(related, item)
			exclude = append(exclude, item.ID)
		}
	}

	return related, nil
}

// GetBackup is the unrestricted export read. Callers are trusted; access
// control happens at the boundary.
func (s *Service) GetBackup(ctx context.Context, cursor string, take int) ([]BackupRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("media store is not configured")
	}
	if take <= 0 {
		take = DefaultBackupTake
	}

	return s.store.FindBackup(ctx, cursor, take)
}
