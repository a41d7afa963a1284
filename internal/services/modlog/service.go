package modlog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/domain/rules"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
	"github.com/wdhive/photo-gallery/internal/pkg/validate"
)

const MaxMessageLength = 2000

// ErrMediaApproved is returned by the store when a conditional insert
// finds the media already in the terminal approved status.
var ErrMediaApproved = errors.New("media is already approved")

type Store interface {
	ListByMedia(ctx context.Context, mediaID string) ([]model.StatusChangeLog, error)
	// CreateMessage inserts the entry only while the media is not yet
	// approved, in a single statement, and returns ErrMediaApproved
	// otherwise. The status check and the insert must not be separable,
	// so a racing approval cannot slip a message onto live media.
	CreateMessage(ctx context.Context, mediaID, userID, message string) (*model.StatusChangeLog, error)
	SetStatus(ctx context.Context, mediaID string, status enums.ContentStatus) error
	// Reject flips the media to rejected and records the note in the
	// same transaction. Neither write lands without the other.
	Reject(ctx context.Context, mediaID, userID, note string) error
}

type MessageLimiter interface {
	AllowMessage(ctx context.Context, userID string) (retryAfterSec int64, allowed bool, err error)
	// RetryAfterMessage peeks the windows without consuming an attempt.
	RetryAfterMessage(ctx context.Context, userID string) (int64, error)
}

// Service guards the moderation conversation attached to each media item
// and owns every status transition.
type Service struct {
	store   Store
	limiter MessageLimiter
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AttachLimiter enables per-user message rate limiting. Without it
// messages are unlimited.
func (s *Service) AttachLimiter(limiter MessageLimiter) {
	s.limiter = limiter
}

// GetMessages returns the ordered conversation log. Only the media's
// author and moderator-level users may read it.
func (s *Service) GetMessages(ctx context.Context, actor model.User, media model.Media) ([]model.StatusChangeLog, error) {
	if s.store == nil {
		return nil, fmt.Errorf("modlog store is not configured")
	}
	if !canAccess(actor, media) {
		return nil, reqerr.Forbidden("You cannot view the messages of this media")
	}

	return s.store.ListByMedia(ctx, media.ID)
}

// CreateMessage appends one entry to the conversation. Approved media is
// closed for messaging regardless of who asks.
func (s *Service) CreateMessage(ctx context.Context, actor model.User, media model.Media, message string) (*model.StatusChangeLog, error) {
	if s.store == nil {
		return nil, fmt.Errorf("modlog store is not configured")
	}
	if !canAccess(actor, media) {
		return nil, reqerr.Forbidden("You cannot message this media")
	}
	if media.Status == enums.ContentStatusApproved {
		return nil, reqerr.New("Cannot message approved media")
	}

	message = strings.TrimSpace(message)
	if !validate.Required(message) {
		return nil, reqerr.New("Message is required")
	}
	if !validate.MaxLen(message, MaxMessageLength) {
		return nil, reqerr.New("Message is too long")
	}

	if s.limiter != nil {
		retryAfter, allowed, err := s.limiter.AllowMessage(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("check message rate: %w", err)
		}
		if !allowed {
			return nil, reqerr.NewWithStatus(
				fmt.Sprintf("Too many messages, retry in %ds", retryAfter), 429)
		}
	}

	entry, err := s.store.CreateMessage(ctx, media.ID, actor.ID, message)
	if err != nil {
		if errors.Is(err, ErrMediaApproved) {
			return nil, reqerr.New("Cannot message approved media")
		}
		return nil, err
	}

	return entry, nil
}

// MessageCooldown reports how many seconds the actor must still wait
// before posting the next message. Zero means they may post now, or no
// limiter is attached.
func (s *Service) MessageCooldown(ctx context.Context, actor model.User) (int64, error) {
	if s.limiter == nil {
		return 0, nil
	}
	return s.limiter.RetryAfterMessage(ctx, actor.ID)
}

// Approve moves the media into the terminal approved status, closing the
// conversation for good.
func (s *Service) Approve(ctx context.Context, actor model.User, media model.Media) error {
	if s.store == nil {
		return fmt.Errorf("modlog store is not configured")
	}
	if !rules.UserPermission(actor).IsModeratorLevel() {
		return reqerr.Forbidden("You cannot moderate this media")
	}
	if media.Status == enums.ContentStatusApproved {
		return reqerr.New("Media is already approved")
	}

	return s.store.SetStatus(ctx, media.ID, enums.ContentStatusApproved)
}

// Reject marks the media rejected and records the moderator's note on the
// conversation log so the author can see what to fix.
func (s *Service) Reject(ctx context.Context, actor model.User, media model.Media, note string) error {
	if s.store == nil {
		return fmt.Errorf("modlog store is not configured")
	}
	if !rules.UserPermission(actor).IsModeratorLevel() {
		return reqerr.Forbidden("You cannot moderate this media")
	}
	if media.Status == enums.ContentStatusApproved {
		return reqerr.New("Cannot reject approved media")
	}

	note = strings.TrimSpace(note)
	if !validate.Required(note) {
		return reqerr.New("Rejection note is required")
	}

	return s.store.Reject(ctx, media.ID, actor.ID, note)
}

func canAccess(actor model.User, media model.Media) bool {
	if actor.ID == media.AuthorID {
		return true
	}
	return rules.UserPermission(actor).IsModeratorLevel()
}
