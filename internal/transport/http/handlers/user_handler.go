package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
	authsvc "github.com/wdhive/photo-gallery/internal/services/auth"
	userssvc "github.com/wdhive/photo-gallery/internal/services/users"
	"github.com/wdhive/photo-gallery/internal/transport/http/dto"
	httperrors "github.com/wdhive/photo-gallery/internal/transport/http/errors"
)

type UserHandler struct {
	service  *userssvc.Service
	classify *reqerr.Classifier
}

func NewUserHandler(service *userssvc.Service, classify *reqerr.Classifier) *UserHandler {
	return &UserHandler{service: service, classify: classify}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "user service is unavailable")
		return
	}

	public, err := h.service.GetPublicProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusOK, publicUserResponse(*public))
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	httperrors.Write(w, http.StatusOK, userResponse(*user))
}

// UpdateAvatar replaces the caller's avatar keys. All-null input clears
// the avatar entirely.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "user service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	var req dto.AvatarUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.UpdateAvatar(r.Context(), identity.UserID, userssvc.AvatarUpdate{
		Sm: req.Sm,
		Md: req.Md,
		Lg: req.Lg,
	})
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusOK, userResponse(*user))
}

func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	if h.service == nil {
		writeInternal(w, "user service is unavailable")
		return nil, false
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return nil, false
	}

	user, err := h.service.GetUser(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return nil, false
	}
	return user, true
}

func userResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		AvatarSm:  u.AvatarSm,
		AvatarMd:  u.AvatarMd,
		AvatarLg:  u.AvatarLg,
		CreatedAt: u.CreatedAt,
	}
}
