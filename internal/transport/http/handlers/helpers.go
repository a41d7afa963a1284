package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/wdhive/photo-gallery/internal/domain/model"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
	"github.com/wdhive/photo-gallery/internal/transport/http/dto"
	httperrors "github.com/wdhive/photo-gallery/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	httperrors.WriteError(w, http.StatusUnauthorized, message)
}

func writeInternal(w http.ResponseWriter, message string) {
	httperrors.WriteError(w, http.StatusInternalServerError, message)
}

func writeServiceError(w http.ResponseWriter, classifier *reqerr.Classifier, err error) {
	if classifier == nil {
		writeInternal(w, "Something went wrong!")
		return
	}
	message, status := classifier.Classify(err)
	httperrors.WriteError(w, status, message)
}

func parseIntOrDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

func publicUserResponse(u model.PublicUser) dto.PublicUserResponse {
	return dto.PublicUserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Role:     string(u.Role),
		AvatarSm: u.AvatarSm,
		AvatarMd: u.AvatarMd,
		AvatarLg: u.AvatarLg,
	}
}

func mediaDetailResponse(item model.MediaDetail) dto.MediaDetailResponse {
	resp := dto.MediaDetailResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Tags:        item.Tags,
		Status:      string(item.Status),
		MediaURL:    item.MediaURL,
		CreatedAt:   item.CreatedAt,
		Author:      publicUserResponse(item.Author),
	}
	if item.Category != nil {
		resp.Category = &dto.CategoryResponse{
			ID:   item.Category.ID,
			Name: item.Category.Name,
		}
	}
	if item.UpdateRequest != nil {
		resp.UpdateRequest = &dto.UpdateRequestResponse{
			ID:          item.UpdateRequest.ID,
			Title:       item.UpdateRequest.Title,
			Description: item.UpdateRequest.Description,
			Tags:        item.UpdateRequest.Tags,
			CategoryID:  item.UpdateRequest.CategoryID,
			CreatedAt:   item.UpdateRequest.CreatedAt,
		}
	}
	return resp
}
