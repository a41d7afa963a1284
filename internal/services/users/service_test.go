package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
)

type storeStub struct {
	users map[string]*model.User
}

func (s *storeStub) FindByID(_ context.Context, id string) (*model.User, error) {
	return s.users[id], nil
}

func (s *storeStub) UpdateAvatar(_ context.Context, id string, sm, md, lg *string) (*model.User, error) {
	user := s.users[id]
	if user == nil {
		return nil, nil
	}
	user.AvatarSm, user.AvatarMd, user.AvatarLg = sm, md, lg
	return user, nil
}

type signerStub struct {
	calls int
}

func (s *signerStub) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	s.calls++
	return "https://cdn.example.com/" + key, nil
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewService(&storeStub{users: map[string]*model.User{}}, nil)

	_, err := svc.GetUser(context.Background(), "absent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetPublicProfileSignsAvatars(t *testing.T) {
	sm := "avatars/u1-sm.jpg"
	store := &storeStub{users: map[string]*model.User{
		"u1": {ID: "u1", Name: "Ann", Role: enums.RoleUser, AvatarSm: &sm},
	}}
	signer := &signerStub{}
	svc := NewService(store, signer)

	public, err := svc.GetPublicProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get public profile: %v", err)
	}
	if signer.calls != 1 {
		t.Fatalf("expected 1 presign call, got %d", signer.calls)
	}
	if public.AvatarSm == nil || *public.AvatarSm != "https://cdn.example.com/avatars/u1-sm.jpg" {
		t.Fatalf("avatar was not signed: %v", public.AvatarSm)
	}
	if public.AvatarMd != nil {
		t.Fatalf("missing avatar size must stay nil")
	}
}

func TestUpdateAvatarClear(t *testing.T) {
	sm := "avatars/u1-sm.jpg"
	store := &storeStub{users: map[string]*model.User{
		"u1": {ID: "u1", Name: "Ann", Role: enums.RoleUser, AvatarSm: &sm},
	}}
	svc := NewService(store, nil)

	user, err := svc.UpdateAvatar(context.Background(), "u1", AvatarUpdate{})
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if user.AvatarSm != nil || user.AvatarMd != nil || user.AvatarLg != nil {
		t.Fatalf("all-nil update must clear the avatar: %+v", user)
	}
}
