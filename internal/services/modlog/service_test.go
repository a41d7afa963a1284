package modlog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
)

type storeStub struct {
	entries    []model.StatusChangeLog
	created    []model.StatusChangeLog
	statuses   map[string]enums.ContentStatus
	approvedID string
	rejectErr  error
}

func (s *storeStub) ListByMedia(_ context.Context, mediaID string) ([]model.StatusChangeLog, error) {
	out := make([]model.StatusChangeLog, 0, len(s.entries))
	for _, e := range s.entries {
		if e.MediaID == mediaID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *storeStub) CreateMessage(_ context.Context, mediaID, userID, message string) (*model.StatusChangeLog, error) {
	if mediaID == s.approvedID {
		return nil, ErrMediaApproved
	}
	entry := model.StatusChangeLog{ID: "log1", MediaID: mediaID, UserID: userID, Message: message}
	s.created = append(s.created, entry)
	return &entry, nil
}

func (s *storeStub) SetStatus(_ context.Context, mediaID string, status enums.ContentStatus) error {
	if s.statuses == nil {
		s.statuses = map[string]enums.ContentStatus{}
	}
	s.statuses[mediaID] = status
	return nil
}

func (s *storeStub) Reject(_ context.Context, mediaID, userID, note string) error {
	if s.rejectErr != nil {
		return s.rejectErr
	}
	if s.statuses == nil {
		s.statuses = map[string]enums.ContentStatus{}
	}
	s.statuses[mediaID] = enums.ContentStatusRejected
	s.created = append(s.created, model.StatusChangeLog{MediaID: mediaID, UserID: userID, Message: note})
	return nil
}

type limiterStub struct {
	allowed    bool
	retryAfter int64
	calls      int
}

func (l *limiterStub) AllowMessage(context.Context, string) (int64, bool, error) {
	l.calls++
	return l.retryAfter, l.allowed, nil
}

func (l *limiterStub) RetryAfterMessage(context.Context, string) (int64, error) {
	return l.retryAfter, nil
}

var (
	author    = model.User{ID: "u1", Role: enums.RoleUser}
	moderator = model.User{ID: "u2", Role: enums.RoleModerator}
	stranger  = model.User{ID: "u3", Role: enums.RoleVerified}

	pendingMedia = model.Media{ID: "m1", AuthorID: "u1", Status: enums.ContentStatusPending}
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var domainErr *reqerr.Err
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	return domainErr.StatusCode
}

func TestGetMessagesPermission(t *testing.T) {
	svc := NewService(&storeStub{entries: []model.StatusChangeLog{
		{ID: "l1", MediaID: "m1", UserID: "u2", Message: "fix the title"},
	}})

	for _, actor := range []model.User{author, moderator} {
		entries, err := svc.GetMessages(context.Background(), actor, pendingMedia)
		if err != nil {
			t.Fatalf("actor %s: %v", actor.ID, err)
		}
		if len(entries) != 1 {
			t.Fatalf("actor %s: expected 1 entry, got %d", actor.ID, len(entries))
		}
	}

	_, err := svc.GetMessages(context.Background(), stranger, pendingMedia)
	if got := statusOf(t, err); got != http.StatusForbidden {
		t.Fatalf("stranger must get 403, got %d", got)
	}
}

func TestCreateMessagePermission(t *testing.T) {
	store := &storeStub{}
	svc := NewService(store)

	_, err := svc.CreateMessage(context.Background(), stranger, pendingMedia, "hello")
	if got := statusOf(t, err); got != http.StatusForbidden {
		t.Fatalf("stranger must get 403, got %d", got)
	}

	entry, err := svc.CreateMessage(context.Background(), moderator, pendingMedia, "please crop")
	if err != nil {
		t.Fatalf("moderator message: %v", err)
	}
	if entry.UserID != moderator.ID || entry.MediaID != pendingMedia.ID {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestCreateMessageOnApprovedMediaFailsForEveryone(t *testing.T) {
	svc := NewService(&storeStub{})
	approved := model.Media{ID: "m2", AuthorID: "u1", Status: enums.ContentStatusApproved}

	for _, actor := range []model.User{author, moderator} {
		_, err := svc.CreateMessage(context.Background(), actor, approved, "too late")
		if got := statusOf(t, err); got != http.StatusBadRequest {
			t.Fatalf("actor %s on approved media: want 400, got %d", actor.ID, got)
		}
	}
}

func TestCreateMessageRacingApproval(t *testing.T) {
	// The snapshot says pending but the store already sees the media
	// approved: the conditional insert closes the race.
	store := &storeStub{approvedID: "m1"}
	svc := NewService(store)

	_, err := svc.CreateMessage(context.Background(), author, pendingMedia, "one more thing")
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Fatalf("racing approval must surface as 400, got %d", got)
	}
}

func TestCreateMessageValidation(t *testing.T) {
	svc := NewService(&storeStub{})

	_, err := svc.CreateMessage(context.Background(), author, pendingMedia, "   ")
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Fatalf("empty message: want 400, got %d", got)
	}

	_, err = svc.CreateMessage(context.Background(), author, pendingMedia, strings.Repeat("x", MaxMessageLength+1))
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Fatalf("oversized message: want 400, got %d", got)
	}
}

func TestCreateMessageRateLimited(t *testing.T) {
	store := &storeStub{}
	svc := NewService(store)
	limiter := &limiterStub{allowed: false, retryAfter: 30}
	svc.AttachLimiter(limiter)

	_, err := svc.CreateMessage(context.Background(), author, pendingMedia, "spam")
	if got := statusOf(t, err); got != http.StatusTooManyRequests {
		t.Fatalf("limited message: want 429, got %d", got)
	}
	if limiter.calls != 1 {
		t.Fatalf("limiter must be consulted once, got %d", limiter.calls)
	}
	if len(store.created) != 0 {
		t.Fatalf("limited message must not be persisted")
	}
}

func TestMessageCooldown(t *testing.T) {
	svc := NewService(&storeStub{})

	retryAfter, err := svc.MessageCooldown(context.Background(), author)
	if err != nil || retryAfter != 0 {
		t.Fatalf("without a limiter cooldown must be zero, got %d (%v)", retryAfter, err)
	}

	svc.AttachLimiter(&limiterStub{retryAfter: 45})
	retryAfter, err = svc.MessageCooldown(context.Background(), author)
	if err != nil {
		t.Fatalf("cooldown: %v", err)
	}
	if retryAfter != 45 {
		t.Fatalf("cooldown = %d, want 45", retryAfter)
	}
}

func TestApprove(t *testing.T) {
	store := &storeStub{}
	svc := NewService(store)

	if err := svc.Approve(context.Background(), author, pendingMedia); err == nil {
		t.Fatalf("non-moderator approval must be denied")
	}

	if err := svc.Approve(context.Background(), moderator, pendingMedia); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if store.statuses["m1"] != enums.ContentStatusApproved {
		t.Fatalf("approve must set status, got %s", store.statuses["m1"])
	}

	approved := model.Media{ID: "m2", AuthorID: "u1", Status: enums.ContentStatusApproved}
	if err := svc.Approve(context.Background(), moderator, approved); err == nil {
		t.Fatalf("approving approved media must fail")
	}
}

func TestRejectRecordsNote(t *testing.T) {
	store := &storeStub{}
	svc := NewService(store)

	if err := svc.Reject(context.Background(), moderator, pendingMedia, ""); err == nil {
		t.Fatalf("rejection without a note must fail")
	}

	if err := svc.Reject(context.Background(), moderator, pendingMedia, "blurry photo"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if store.statuses["m1"] != enums.ContentStatusRejected {
		t.Fatalf("reject must set status, got %s", store.statuses["m1"])
	}
	if len(store.created) != 1 || store.created[0].Message != "blurry photo" {
		t.Fatalf("reject must record the note, got %+v", store.created)
	}
}

func TestRejectFailureLeavesNoPartialState(t *testing.T) {
	// The status flip and the note insert share one transaction, so a
	// failing rejection must leave the media untouched.
	store := &storeStub{rejectErr: errors.New("insert failed")}
	svc := NewService(store)

	err := svc.Reject(context.Background(), moderator, pendingMedia, "blurry photo")
	if err == nil {
		t.Fatalf("reject must surface the store failure")
	}
	if got, ok := store.statuses["m1"]; ok {
		t.Fatalf("failed reject must not change status, got %s", got)
	}
	if len(store.created) != 0 {
		t.Fatalf("failed reject must not record a note, got %+v", store.created)
	}
}
