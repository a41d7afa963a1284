package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
	authsvc "github.com/wdhive/photo-gallery/internal/services/auth"
	mediasvc "github.com/wdhive/photo-gallery/internal/services/media"
	modlogsvc "github.com/wdhive/photo-gallery/internal/services/modlog"
	"github.com/wdhive/photo-gallery/internal/transport/http/dto"
	httperrors "github.com/wdhive/photo-gallery/internal/transport/http/errors"
)

// ModLogHandler serves the moderation conversation and the status
// transitions of a media item. Every route requires authentication; the
// media is resolved through the media service first so a hidden item
// still reads as not found.
type ModLogHandler struct {
	service  *modlogsvc.Service
	media    *mediasvc.Service
	classify *reqerr.Classifier
}

func NewModLogHandler(service *modlogsvc.Service, media *mediasvc.Service, classify *reqerr.Classifier) *ModLogHandler {
	return &ModLogHandler{service: service, media: media, classify: classify}
}

func (h *ModLogHandler) Messages(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.resolve(w, r)
	if !ok {
		return
	}

	entries, err := h.service.GetMessages(r.Context(), actor, item.Media)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	retryAfter, err := h.service.MessageCooldown(r.Context(), actor)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	items := make([]dto.MessageResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, messageResponse(entry))
	}
	httperrors.Write(w, http.StatusOK, dto.MessagesListResponse{Items: items, RetryAfterSec: retryAfter})
}

func (h *ModLogHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.CreateMessage(r.Context(), actor, item.Media, req.Message)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, messageResponse(*entry))
}

func (h *ModLogHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := h.service.Approve(r.Context(), actor, item.Media); err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StatusChangeResponse{ID: item.ID, Status: "APPROVED"})
}

func (h *ModLogHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Reject(r.Context(), actor, item.Media, req.Note); err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StatusChangeResponse{ID: item.ID, Status: "REJECTED"})
}

func (h *ModLogHandler) resolve(w http.ResponseWriter, r *http.Request) (model.User, *model.MediaDetail, bool) {
	if h.service == nil || h.media == nil {
		writeInternal(w, "moderation service is unavailable")
		return model.User{}, nil, false
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return model.User{}, nil, false
	}
	actor := identity.Actor()

	item, err := h.media.GetMedia(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return model.User{}, nil, false
	}

	return *actor, item, true
}

func messageResponse(entry model.StatusChangeLog) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        entry.ID,
		MediaID:   entry.MediaID,
		Message:   entry.Message,
		CreatedAt: entry.CreatedAt,
		User:      publicUserResponse(entry.User),
	}
}
