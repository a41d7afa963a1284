package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
	authsvc "github.com/wdhive/photo-gallery/internal/services/auth"
	mediasvc "github.com/wdhive/photo-gallery/internal/services/media"
	"github.com/wdhive/photo-gallery/internal/transport/http/dto"
	httperrors "github.com/wdhive/photo-gallery/internal/transport/http/errors"
)

type MediaHandler struct {
	service  *mediasvc.Service
	classify *reqerr.Classifier
}

func NewMediaHandler(service *mediasvc.Service, classify *reqerr.Classifier) *MediaHandler {
	return &MediaHandler{service: service, classify: classify}
}

// List serves the latest-first media page. Works for anonymous callers;
// an authenticated actor widens what status filters are honored.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "media service is unavailable")
		return
	}

	query := r.URL.Query()
	opts := mediasvc.ListOptions{
		Cursor:        strings.TrimSpace(query.Get("cursor")),
		Limit:         parseIntOrDefault(query.Get("limit"), 0),
		Category:      strings.TrimSpace(query.Get("category")),
		AuthorID:      strings.TrimSpace(query.Get("author_id")),
		Status:        enums.ContentStatus(strings.ToUpper(strings.TrimSpace(query.Get("status")))),
		Search:        strings.TrimSpace(query.Get("search")),
		UpdateRequest: parseBool(query.Get("update_request")),
	}
	if opts.Status != "" && !opts.Status.Valid() {
		httperrors.WriteError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	items, err := h.service.GetLatestMediaList(r.Context(), authsvc.ActorFromContext(r.Context()), opts)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mediaListResponse(items))
}

func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "media service is unavailable")
		return
	}

	item, err := h.service.GetMedia(r.Context(), chi.URLParam(r, "id"), authsvc.ActorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mediaDetailResponse(*item))
}

// Related looks up the reference item first so hidden media cannot be
// used as a pivot, then collects look-alike approved items.
func (h *MediaHandler) Related(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "media service is unavailable")
		return
	}

	ref, err := h.service.GetMedia(r.Context(), chi.URLParam(r, "id"), authsvc.ActorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	take := parseIntOrDefault(r.URL.Query().Get("take"), mediasvc.DefaultRelatedTake)
	items, err := h.service.GetRelatedMedia(r.Context(), ref.Media, take)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	httperrors.Write(w, http.StatusOK, mediaListResponse(items))
}

// Backup streams the id/url export page by page. Access is restricted at
// the route level to moderator roles and above.
func (h *MediaHandler) Backup(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "media service is unavailable")
		return
	}

	cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))
	take := parseIntOrDefault(r.URL.Query().Get("take"), mediasvc.DefaultBackupTake)

	records, err := h.service.GetBackup(r.Context(), cursor, take)
	if err != nil {
		writeServiceError(w, h.classify, err)
		return
	}

	items := make([]dto.BackupItemResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.BackupItemResponse{ID: record.ID, MediaURL: record.MediaURL})
	}

	resp := dto.BackupResponse{Items: items}
	if len(records) == take {
		resp.NextCursor = records[len(records)-1].ID
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func mediaListResponse(items []model.MediaDetail) dto.MediaListResponse {
	out := make([]dto.MediaDetailResponse, 0, len(items))
	for _, item := range items {
		out = append(out, mediaDetailResponse(item))
	}
	resp := dto.MediaListResponse{Items: out}
	if len(items) > 0 {
		resp.NextCursor = items[len(items)-1].ID
	}
	return resp
}
