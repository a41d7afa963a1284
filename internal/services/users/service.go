package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
)

const signedURLTTL = 15 * time.Minute

var ErrUserNotFound = reqerr.NotFound("User not found")

type Store interface {
	// FindByID returns nil when no user exists.
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id string, sm, md, lg *string) (*model.User, error)
}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// AvatarUpdate carries the three stored avatar sizes. All-nil clears the
// avatar.
type AvatarUpdate struct {
	Sm *string
	Md *string
	Lg *string
}

type Service struct {
	store  Store
	signer URLSigner
}

func NewService(store Store, signer URLSigner) *Service {
	return &Service{store: store, signer: signer}
}

func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("user store is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// GetPublicProfile returns the public projection with avatar keys
// exchanged for presigned URLs.
func (s *Service) GetPublicProfile(ctx context.Context, id string) (*model.PublicUser, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	if err := s.signAvatars(ctx, &public); err != nil {
		return nil, err
	}

	return &public, nil
}

func (s *Service) UpdateAvatar(ctx context.Context, userID string, update AvatarUpdate) (*model.User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("user store is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.store.UpdateAvatar(ctx, userID, update.Sm, update.Md, update.Lg)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *Service) signAvatars(ctx context.Context, public *model.PublicUser) error {
	if s.signer == nil {
		return nil
	}

	for _, key := range []**string{&public.AvatarSm, &public.AvatarMd, &public.AvatarLg} {
		if *key == nil || strings.TrimSpace(**key) == "" {
			continue
		}
		url, err := s.signer.PresignGet(ctx, **key, signedURLTTL)
		if err != nil {
			return fmt.Errorf("sign avatar key: %w", err)
		}
		signed := url
		*key = &signed
	}

	return nil
}
